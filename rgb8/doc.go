// Package rgb8 provides the 24-bit RGB color and strip image used by the
// ws2812timer driver.
//
// WS2812 LEDs have three 8-bit channels and no alpha. Pixels are stored in
// packed R, G, B byte triplets; the driver reorders them to the G, R, B wire
// order itself, so images stay in the natural channel order.
//
// Memory layout example for a 2-pixel strip:
//
//	Pixels: 0               1
//	Values: {R:1 G:2 B:3}   {R:4 G:5 B:6}
//	Bytes:  0x01 0x02 0x03  0x04 0x05 0x06
//
// This package provides:
//
// - RGB8: A color type with three 8-bit channels
// - Model: A color model converting standard Go colors to RGB8
// - Strip: An image.Image implementation backed by packed RGB bytes
//
// Example usage:
//
//	// A 60 LED strip
//	img := rgb8.NewStrip(image.Rect(0, 0, 60, 1))
//
//	// Light the first LED red
//	img.SetRGB8(0, 0, rgb8.RGB8{R: 0xFF})
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package rgb8
