// Package ws2812timer controls WS2812 addressable LEDs by bit-banging a GPIO
// pin against a periodic timer.
//
// No PWM, SPI or DMA peripheral is involved and no interrupt is taken. The
// only timing reference is a timer ticking at 3MHz, so one tick lasts
// 333.33ns and one WS2812 bit (about 1.25µs) is exactly three ticks. The
// driver busy-waits on the ticks and flips the pin in between.
//
// # Protocol
//
// A strip reads one bit per period from the ratio of high to low time:
//
//	bit   ticks   waveform
//	"1"   2:1     ‾‾‾‾‾‾‾‾|____
//	"0"   1:2     ‾‾‾‾|________
//
// Each LED takes 24 bits, most significant bit first, in green, red, blue
// order; the driver reorders channels so callers keep the usual R, G, B
// layout. After the last LED the line is held low for 900 ticks (300µs)
// and the strip latches the frame.
//
// # Hardware Connection
//
//	LED Pin → System Pin
//	GND     → GND
//	5V      → 5V supply (share GND with the host)
//	DIN     → GPIO (any output; a 3.3V to 5V level shifter is recommended)
//
// # Timer
//
// The Ticker must already run at 3MHz when handed to New; the driver never
// configures it. On microcontrollers this is a hardware countdown timer in
// periodic mode. Elsewhere, package softtimer provides one in software.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image/color"
//		"slices"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/ws2812timer"
//		"periph.io/x/devices/v3/ws2812timer/rgb8"
//		"periph.io/x/devices/v3/ws2812timer/softtimer"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		t, _ := softtimer.New(ws2812timer.Frequency)
//		t.Start()
//		defer t.Stop()
//
//		dev, _ := ws2812timer.New(t, gpioreg.ByName("GPIO18"), &ws2812timer.Opts{
//			NumPixels: 8,
//		})
//		defer dev.Halt()
//
//		colors := []rgb8.RGB8{{R: 0xFF}, {G: 0xFF}, {B: 0xFF}}
//		ws2812timer.Stream(dev, slices.Values(colors))
//	}
//
// Raw bytes work too, through io.Writer:
//
//	dev.Write([]byte{0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00}) // red, green
//
// and so does any image, through display.Drawer:
//
//	img := rgb8.NewStrip(dev.Bounds())
//	img.SetRGB8(3, 0, rgb8.RGB8{B: 0x40})
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Timing Variants
//
// Between "the timer ticked" and "the pin changed level" there is a delay
// that depends on the platform. With TimingStandard a slow toggle stretches
// the short "0" pulse until the strip reads it as a "1"; LEDs then show up
// white or in the wrong color. TimingDegraded drops the line one tick
// earlier for a "0" so the pulse is only as long as the toggle delay.
//
// The variant is picked once per Dev. Build with the ws2812slow tag to make
// TimingDegraded the default:
//
//	go build -tags ws2812slow
//
// or set Opts.Timing explicitly.
//
// # Errors
//
// Pin and timer errors are ignored by default and the frame goes out
// regardless; the write methods then always return nil. Set Opts.Strict to
// get a *FaultError matching ErrFault instead; the frame is cut at the
// current LED and the reset gap is sent.
//
// A WS2812 strip has no way to report anything back. A wrong timing
// variant, a timer not at 3MHz or a missed tick only ever show as wrong
// colors.
//
// # Concurrency
//
// A call blocks for the whole frame, about 30µs per LED plus 300µs, and must
// not be preempted for more than a few microseconds: a pause longer than
// the reset gap ends the frame early and the rest of the data lands on the
// wrong LEDs. Lock the calling goroutine to its thread and keep other work
// off that core where possible.
//
// # Datasheet
//
// https://github.com/cpldcpu/light_ws2812/tree/master/Datasheets
package ws2812timer
