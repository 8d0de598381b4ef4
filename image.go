// Package hshex reads, transforms and writes HSHEX images: a plain-text dump
// of 16-bit RGB pixels behind a five byte magic header.
//
// The typical pipeline is
//
//	img, err := hshex.Load("in.hshex")
//	noisy, err := hshex.ApplyNoise(img, 100, hshex.NewRand(seed))
//	hist := hshex.ComputeHistogram(noisy)
//	err = hshex.Save("out.hshex", noisy)
//
// Images are always fully materialized in memory; nothing is shared between
// two Image values.
package hshex

import "fmt"

// MaxPixels bounds the number of pixels a single Image may hold.
const MaxPixels = 1 << 28

// Pixel holds the three 16-bit channels of one pixel.
type Pixel struct {
	R, G, B uint16
}

// Image is a row-major grid of pixels. The pixel slice always has exactly
// PixelCount(width, height) elements.
type Image struct {
	width  int
	height int
	pix    []Pixel
}

// PixelCount returns the number of pixels an image of the given dimensions
// holds. Non-positive dimensions describe an empty image.
func PixelCount(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height
}

func checkedPixelCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, nil
	}
	if width > MaxPixels/height {
		return 0, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}
	return width * height, nil
}

// NewImage allocates a zeroed image.
func NewImage(width, height int) (*Image, error) {
	n, err := checkedPixelCount(width, height)
	if err != nil {
		return nil, err
	}
	return &Image{width: width, height: height, pix: make([]Pixel, n)}, nil
}

// FromPixels builds an image from a copy of pix, which must hold exactly
// PixelCount(width, height) pixels in row-major order.
func FromPixels(width, height int, pix []Pixel) (*Image, error) {
	n, err := checkedPixelCount(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != n {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d image", ErrInvalidArgument, len(pix), width, height)
	}
	img := &Image{width: width, height: height, pix: make([]Pixel, n)}
	copy(img.pix, pix)
	return img, nil
}

// Width returns the number of columns.
func (img *Image) Width() int { return img.width }

// Height returns the number of rows.
func (img *Image) Height() int { return img.height }

// Len returns the number of pixels.
func (img *Image) Len() int { return len(img.pix) }

// Pixel returns the i-th pixel in row-major order.
func (img *Image) Pixel(i int) Pixel { return img.pix[i] }

// SetPixel replaces the i-th pixel in row-major order.
func (img *Image) SetPixel(i int, p Pixel) { img.pix[i] = p }

// At returns the pixel at column x, row y. Out of range coordinates return
// the zero Pixel.
func (img *Image) At(x, y int) Pixel {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return Pixel{}
	}
	return img.pix[y*img.width+x]
}

// Set sets the pixel at column x, row y. Out of range coordinates are ignored.
func (img *Image) Set(x, y int, p Pixel) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	img.pix[y*img.width+x] = p
}

// Pixels returns a copy of the pixel data in row-major order.
func (img *Image) Pixels() []Pixel {
	out := make([]Pixel, len(img.pix))
	copy(out, img.pix)
	return out
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() (*Image, error) {
	clone, err := NewImage(img.width, img.height)
	if err != nil {
		return nil, err
	}
	copy(clone.pix, img.pix)
	return clone, nil
}
