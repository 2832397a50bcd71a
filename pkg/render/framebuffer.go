// Package render implements the tiny software rasterizer: a pixel buffer,
// line and triangle drawing, flat shading and the mesh renderer that
// drives them.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Framebuffer is the pixel grid every draw call writes into.
//
// Coordinates are Cartesian: row 0 is the bottom of the picture. Call
// FlipVertical before encoding to get conventional top-down images.
type Framebuffer struct {
	Width    int          // Width in pixels
	Height   int          // Height in pixels
	Channels int          // 3 (RGB) or 4 (RGBA)
	Pixels   []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates an RGB framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return NewFramebufferChannels(width, height, 3)
}

// NewFramebufferChannels creates a framebuffer with 3 (RGB) or 4 (RGBA)
// channels. Any other channel count is treated as 4.
func NewFramebufferChannels(width, height, channels int) *Framebuffer {
	if channels != 3 {
		channels = 4
	}
	width = max(width, 0)
	height = max(height, 0)
	fb := &Framebuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   make([]color.RGBA, width*height),
	}
	if channels == 3 {
		fb.Clear(color.RGBA{})
	}
	return fb
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	c = fb.store(c)
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
//
// This is the only clipped write: coordinates outside the buffer are
// dropped without error. The line and triangle routines rely on it for
// their off-canvas candidates.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = fb.store(c)
}

// GetPixel returns the color at (x, y).
// Returns the zero color if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.InBounds(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// store drops the alpha channel on RGB buffers.
func (fb *Framebuffer) store(c color.RGBA) color.RGBA {
	if fb.Channels == 3 {
		c.A = 255
	}
	return c
}

// FlipVertical mirrors the buffer top to bottom in place.
func (fb *Framebuffer) FlipVertical() {
	for y := 0; y < fb.Height/2; y++ {
		top := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		bot := fb.Pixels[(fb.Height-1-y)*fb.Width : (fb.Height-y)*fb.Width]
		for x := range top {
			top[x], bot[x] = bot[x], top[x]
		}
	}
}

// FlipHorizontal mirrors the buffer left to right in place.
func (fb *Framebuffer) FlipHorizontal() {
	for y := 0; y < fb.Height; y++ {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// ToImage converts the framebuffer to a standard Go image, row 0 of the
// buffer becoming row 0 of the image. Stored colors are straight (not
// premultiplied) alpha, so the result is an image.NRGBA.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.copyPix(img.Pix)
	return img
}

// copyPix writes the raw channel bytes of every pixel into pix.
func (fb *Framebuffer) copyPix(pix []uint8) {
	for i, c := range fb.Pixels {
		pix[i*4+0] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
}

// Scaled returns a copy enlarged by an integer factor with
// nearest-neighbor sampling, so every source pixel becomes a
// factor×factor block. Factors below 2 return an unscaled copy.
func (fb *Framebuffer) Scaled(factor int) *Framebuffer {
	factor = max(factor, 1)
	out := NewFramebufferChannels(fb.Width*factor, fb.Height*factor, fb.Channels)

	// Raw bytes ride in image.RGBA so the scaler copies them untouched.
	src := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.copyPix(src.Pix)
	dst := image.NewRGBA(image.Rect(0, 0, out.Width, out.Height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	for i := range out.Pixels {
		p := dst.Pix[i*4 : i*4+4 : i*4+4]
		out.Pixels[i] = color.RGBA{p[0], p[1], p[2], p[3]}
	}
	return out
}
