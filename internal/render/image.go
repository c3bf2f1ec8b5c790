package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"

	"tickertape/internal/bitmap"
)

// imageBitmap adapts a two-colour paletted image to the Bitmap
// interface. colorMap[i] is the bit value of palette index i.
type imageBitmap struct {
	image    *image.Paletted
	colorMap [2]byte
}

func (b *imageBitmap) Width() int {
	return b.image.Rect.Dx()
}

func (b *imageBitmap) Height() int {
	return b.image.Rect.Dy()
}

func (b *imageBitmap) GetBit(x int, y int) byte {
	return b.colorMap[b.image.ColorIndexAt(x, y)]
}

func fromPaletted(i *image.Paletted) (*imageBitmap, error) {
	if len(i.Palette) != 2 {
		return nil, fmt.Errorf("Image must have exactly 2 colours in palette, got %v", len(i.Palette))
	}

	var colorMap [2]byte
	if i.Palette.Index(color.White) == 0 {
		colorMap = [2]byte{0, 1}
	} else {
		colorMap = [2]byte{1, 0}
	}

	return &imageBitmap{image: i, colorMap: colorMap}, nil
}

// ForDevice prepares an arbitrary image for printing: scale to the
// device width, gamma-correct, then dither down to black and white.
// Text never goes through this path; it is thresholded instead.
func ForDevice(i image.Image, deviceWidth int) (bitmap.Bitmap, error) {
	if i.Bounds().Dx() < 1 || i.Bounds().Dy() < 1 {
		return nil, fmt.Errorf("Image is empty: %v", i.Bounds())
	}

	// Bitmaps narrower than the device width make the hardware act
	// unpredictably, so always scale to the full width.
	scaledBounds := image.Rect(0, 0, deviceWidth, i.Bounds().Dy()*deviceWidth/i.Bounds().Dx())
	if scaledBounds.Dy() < 1 {
		scaledBounds.Max.Y = 1
	}
	scaledImage := image.NewRGBA(scaledBounds)
	draw.CatmullRom.Scale(scaledImage, scaledBounds, i, i.Bounds(), draw.Over, nil)

	// Gamma correction of 0.5, otherwise output appears too dark on
	// thermal paper. Picked empirically.
	monochromeImage := image.NewGray16(scaledBounds)
	for y := scaledBounds.Min.Y; y < scaledBounds.Max.Y; y++ {
		for x := scaledBounds.Min.X; x < scaledBounds.Max.X; x++ {
			grayColor := color.Gray16Model.Convert(scaledImage.At(x, y)).(color.Gray16)
			grayValue := float64(grayColor.Y) / float64(0xFFFF)
			scaledGrayValue := math.Pow(grayValue, 0.5)
			monochromeImage.Set(x, y, color.Gray16{Y: uint16(scaledGrayValue * float64(0xFFFF))})
		}
	}

	palette := []color.Color{color.Black, color.White}
	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true
	ditheredImage := ditherer.DitherPaletted(monochromeImage)

	return fromPaletted(ditheredImage)
}
