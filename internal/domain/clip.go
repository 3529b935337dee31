package domain

// clipRect is a rectangle placed at a destination origin, reduced to the part
// that lies inside the destination. srcX and srcY advance together with any
// left/top clamp so source and destination scans stay aligned.
type clipRect struct {
	dstX, dstY int
	srcX, srcY int
	width      int
	height     int
}

// clip places a w x h rectangle at (x, y) on a dstW x dstH buffer. It reports
// false when the rectangle misses the buffer entirely. w and h must be
// positive; edges are compared against sizes so huge extents cannot overflow.
func clip(dstW, dstH, x, y, srcX, srcY, w, h int) (clipRect, bool) {
	if x >= dstW || y >= dstH || (x < 0 && x+w <= 0) || (y < 0 && y+h <= 0) {
		return clipRect{}, false
	}

	if x < 0 {
		srcX -= x
		w += x
		x = 0
	}
	if y < 0 {
		srcY -= y
		h += y
		y = 0
	}
	if w > dstW-x {
		w = dstW - x
	}
	if h > dstH-y {
		h = dstH - y
	}

	return clipRect{
		dstX:   x,
		dstY:   y,
		srcX:   srcX,
		srcY:   srcY,
		width:  w,
		height: h,
	}, true
}

// Rectangle fills a w x h rectangle at (x, y), clipped to the bitmap.
// Degenerate sizes are a no-op.
func (b *Bitmap) Rectangle(x, y, w, h int, color Pixel) {
	if w <= 0 || h <= 0 {
		return
	}
	r, ok := clip(b.width, b.height, x, y, 0, 0, w, h)
	if !ok {
		return
	}

	v := color.Packed()
	for row := 0; row < r.height; row++ {
		start := (r.dstY+row)*b.width + r.dstX
		span := b.pixels[start : start+r.width]
		for i := range span {
			span[i] = v
		}
	}
}
