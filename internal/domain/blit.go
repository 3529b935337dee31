package domain

// BlendMode selects how a source pixel is written during a blit.
type BlendMode int

const (
	// BlendCopy writes every source pixel.
	BlendCopy BlendMode = iota
	// BlendKeyed skips source pixels equal to the color key.
	BlendKeyed
	// BlendKeyedTinted skips keyed pixels and scales R, G and B of the rest
	// by the tint color: channel * tint >> 8. Alpha is carried through.
	BlendKeyedTinted
)

// String returns the mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendCopy:
		return "copy"
	case BlendKeyed:
		return "keyed"
	case BlendKeyedTinted:
		return "keyed-tinted"
	default:
		return "unknown"
	}
}

// TextKey is the color key used for glyph atlases: fully transparent black.
const TextKey uint32 = 0x00000000

// Blit copies the whole of src onto b with its top-left corner at (x, y).
func (b *Bitmap) Blit(src *Bitmap, x, y int) {
	b.blitRegion(src, x, y, 0, 0, src.width, src.height, BlendCopy, 0, Pixel{})
}

// BlitKeyed copies src onto b, leaving b unchanged wherever the source pixel
// equals key.
func (b *Bitmap) BlitKeyed(src *Bitmap, x, y int, key Pixel) {
	b.blitRegion(src, x, y, 0, 0, src.width, src.height, BlendKeyed, key.Packed(), Pixel{})
}

// BlitRegion copies the srcW x srcH region of src at (srcX, srcY) onto b at
// (x, y). A region that does not fit inside src returns a *RegionError and
// nothing is drawn.
func (b *Bitmap) BlitRegion(src *Bitmap, x, y, srcX, srcY, srcW, srcH int) error {
	if err := checkRegion(src, srcX, srcY, srcW, srcH); err != nil {
		return err
	}
	b.blitRegion(src, x, y, srcX, srcY, srcW, srcH, BlendCopy, 0, Pixel{})
	return nil
}

// BlitRegionKeyed is BlitRegion with a color key.
func (b *Bitmap) BlitRegionKeyed(src *Bitmap, x, y, srcX, srcY, srcW, srcH int, key Pixel) error {
	if err := checkRegion(src, srcX, srcY, srcW, srcH); err != nil {
		return err
	}
	b.blitRegion(src, x, y, srcX, srcY, srcW, srcH, BlendKeyed, key.Packed(), Pixel{})
	return nil
}

// BlitRegionKeyedTinted is BlitRegionKeyed that also multiplies the color
// channels of every drawn pixel by tint.
func (b *Bitmap) BlitRegionKeyedTinted(src *Bitmap, x, y, srcX, srcY, srcW, srcH int, key uint32, tint Pixel) error {
	if err := checkRegion(src, srcX, srcY, srcW, srcH); err != nil {
		return err
	}
	b.blitRegion(src, x, y, srcX, srcY, srcW, srcH, BlendKeyedTinted, key, tint)
	return nil
}

func checkRegion(src *Bitmap, srcX, srcY, srcW, srcH int) error {
	if srcX < 0 || srcY < 0 || srcW > src.width-srcX || srcH > src.height-srcY {
		return &RegionError{
			X: srcX, Y: srcY,
			Width: srcW, Height: srcH,
			SrcWidth: src.width, SrcHeight: src.height,
		}
	}
	return nil
}

// blitRegion is the single row walk behind every blit form. The source region
// must already lie inside src; only the destination side is clipped here.
func (b *Bitmap) blitRegion(src *Bitmap, x, y, srcX, srcY, w, h int, mode BlendMode, key uint32, tint Pixel) {
	if w <= 0 || h <= 0 {
		return
	}
	r, ok := clip(b.width, b.height, x, y, srcX, srcY, w, h)
	if !ok {
		return
	}

	tr, tg, tb := uint32(tint.R), uint32(tint.G), uint32(tint.B)
	for row := 0; row < r.height; row++ {
		d := (r.dstY+row)*b.width + r.dstX
		s := (r.srcY+row)*src.width + r.srcX
		dstRow := b.pixels[d : d+r.width]
		srcRow := src.pixels[s : s+r.width]

		switch mode {
		case BlendCopy:
			copy(dstRow, srcRow)
		case BlendKeyed:
			for i, c := range srcRow {
				if c != key {
					dstRow[i] = c
				}
			}
		case BlendKeyedTinted:
			for i, c := range srcRow {
				if c == key {
					continue
				}
				cr := (c >> 16 & 0xff) * tr >> 8
				cg := (c >> 8 & 0xff) * tg >> 8
				cb := (c & 0xff) * tb >> 8
				dstRow[i] = c&0xff000000 | cr<<16 | cg<<8 | cb
			}
		}
	}
}
