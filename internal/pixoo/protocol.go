// Package pixoo presents bitmaps on a Pixoo LED matrix.
//
// The Pixoo has a local HTTP API at port 80.
// Endpoint: POST http://<ip>/post
//
// Frame format:
// - square, 16, 32 or 64 pixels per side
// - RGB (3 bytes per pixel, alpha dropped)
// - Base64 encoded
package pixoo

import (
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/jwulff/basil-go/internal/domain"
)

// BytesPerPixel is the size of one pixel on the wire.
const BytesPerPixel = 3

// DefaultSpeed is the frame duration in milliseconds sent with still frames.
const DefaultSpeed = 1000

// Sizes lists the frame edge lengths the device accepts.
var Sizes = []int{16, 32, 64}

const (
	cmdSendGif    = "Draw/SendHttpGif"
	cmdResetGifID = "Draw/ResetHttpGifId"
	cmdDeviceTime = "Device/GetDeviceTime"
	cmdBrightness = "Channel/SetBrightness"
)

type command struct {
	Command string `json:"Command"`
}

// FrameCommand is the Draw/SendHttpGif request body for a one-frame animation.
type FrameCommand struct {
	Command   string `json:"Command"`
	PicNum    int    `json:"PicNum"`
	PicWidth  int    `json:"PicWidth"`
	PicOffset int    `json:"PicOffset"`
	PicID     int    `json:"PicID"`
	PicSpeed  int    `json:"PicSpeed"`
	PicData   string `json:"PicData"`
}

type brightnessCommand struct {
	command
	Brightness int `json:"Brightness"`
}

// CheckSize reports whether the device can show a bitmap of this size.
func CheckSize(b *domain.Bitmap) error {
	w, h := b.Width(), b.Height()
	if w != h || !slices.Contains(Sizes, w) {
		return fmt.Errorf("unsupported frame size %dx%d: want 16x16, 32x32 or 64x64", w, h)
	}
	return nil
}

// PackRGB converts packed pixels to row-major RGB bytes.
func PackRGB(b *domain.Bitmap) []byte {
	out := make([]byte, len(b.Pixels())*BytesPerPixel)
	for i, v := range b.Pixels() {
		o := i * BytesPerPixel
		out[o] = uint8(v >> 16)
		out[o+1] = uint8(v >> 8)
		out[o+2] = uint8(v)
	}
	return out
}

// UnpackRGB builds an opaque bitmap from row-major RGB bytes.
func UnpackRGB(data []byte, width, height int) (*domain.Bitmap, error) {
	b, err := domain.NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	if want := width * height * BytesPerPixel; len(data) != want {
		b.Destroy()
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", want, len(data))
	}
	px := b.Pixels()
	for i := range px {
		o := i * BytesPerPixel
		px[i] = domain.Pack(data[o], data[o+1], data[o+2], 0xFF)
	}
	return b, nil
}

// NewFrameCommand wraps a bitmap as a single-frame animation with the given id.
func NewFrameCommand(b *domain.Bitmap, picID, speed int) FrameCommand {
	return FrameCommand{
		Command:  cmdSendGif,
		PicNum:   1,
		PicWidth: b.Width(),
		PicID:    picID,
		PicSpeed: speed,
		PicData:  base64.StdEncoding.EncodeToString(PackRGB(b)),
	}
}

// Bitmap decodes the frame carried by the command.
func (f FrameCommand) Bitmap() (*domain.Bitmap, error) {
	data, err := base64.StdEncoding.DecodeString(f.PicData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return UnpackRGB(data, f.PicWidth, f.PicWidth)
}

func newBrightnessCommand(percent int) brightnessCommand {
	return brightnessCommand{
		command:    command{Command: cmdBrightness},
		Brightness: min(max(percent, 0), 100),
	}
}
