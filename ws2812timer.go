// Package ws2812timer drives WS2812 LEDs by toggling a GPIO pin on the
// ticks of a 3MHz periodic timer.
//
// See doc.go for wiring and usage.
package ws2812timer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"iter"
	"sync"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"periph.io/x/devices/v3/ws2812timer/rgb8"
)

const (
	// Frequency is the tick rate the Ticker must already run at.
	Frequency = 3 * physic.MegaHertz
	// TicksPerBit is the length of one bit symbol.
	TicksPerBit = 3
	// ResetTicks is how long the line is held low after the last pixel so
	// the strip latches the frame. 900 ticks at 3MHz is 300µs.
	ResetTicks = 900
)

// Ticker is a periodic countdown timer already running at Frequency.
//
// Wait blocks until the next tick after it is called. The driver never
// configures, starts or stops it.
type Ticker interface {
	Wait() error
}

// Pin is a digital output. gpio.PinOut satisfies it.
type Pin interface {
	Out(l gpio.Level) error
}

// ErrFault is matched by every error returned in strict mode.
var ErrFault = errors.New("ws2812timer: pin or timer fault")

// FaultError is a pin or timer failure seen during a transaction.
type FaultError struct {
	Op  string // "wait" or "out"
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("ws2812timer: %s fault: %v", e.Op, e.Err)
}

// Unwrap makes both ErrFault and the underlying error match errors.Is.
func (e *FaultError) Unwrap() []error {
	return []error{ErrFault, e.Err}
}

var errLength = errors.New("ws2812timer: invalid RGB stream length")

// Opts is the configuration for the driver.
type Opts struct {
	// Timing picks the bit encoding. TimingDefault uses DefaultTiming.
	Timing Timing
	// Strict surfaces pin and timer errors as *FaultError and aborts the
	// frame on the first one. By default they are ignored; the strip has
	// no feedback channel, so a dropped tick only shows as wrong colors.
	Strict bool
	// NumPixels is the strip length used by Bounds, Draw and Halt. Write
	// and WriteColors accept any length.
	NumPixels int
	// Logger receives fault reports. Nothing is logged while bits are
	// being sent. Nil disables logging.
	Logger *zerolog.Logger
}

// Dev is a handle to a WS2812 strip.
//
// The Ticker and Pin are owned by Dev for its lifetime. Transactions are
// serialized: a frame is never interleaved with another.
type Dev struct {
	mu     sync.Mutex
	t      Ticker
	p      Pin
	timing Timing
	strict bool
	rect   image.Rectangle
	log    zerolog.Logger

	// encode is bound once in New to the selected Timing.
	encode func(v byte)

	// Per transaction.
	err    error
	faults int
	align  bool
}

// New returns a driver sending on p, paced by t.
//
// t must already tick at Frequency. p is driven low right away.
//
// opts can be nil to use defaults.
func New(t Ticker, p Pin, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if t == nil {
		return nil, errors.New("ws2812timer: ticker is required")
	}
	if p == nil {
		return nil, errors.New("ws2812timer: pin is required")
	}
	if opts.NumPixels < 0 {
		return nil, errors.New("ws2812timer: NumPixels must be >= 0")
	}
	d := &Dev{
		t:      t,
		p:      p,
		timing: opts.Timing,
		strict: opts.Strict,
		rect:   image.Rect(0, 0, opts.NumPixels, 1),
		log:    zerolog.Nop(),
	}
	if opts.Logger != nil {
		d.log = *opts.Logger
	}
	if d.timing == TimingDefault {
		d.timing = DefaultTiming
	}
	switch d.timing {
	case TimingStandard:
		d.encode = d.encodeStandard
	case TimingDegraded:
		d.encode = d.encodeDegraded
	default:
		return nil, fmt.Errorf("ws2812timer: unknown timing %s", d.timing)
	}

	d.out(gpio.Low)
	if err := d.settle(); err != nil {
		return nil, err
	}
	d.log.Debug().
		Str("timing", d.timing.String()).
		Int("pixels", opts.NumPixels).
		Bool("strict", d.strict).
		Msg("ws2812timer: ready")
	return d, nil
}

// WriteColors sends every color of seq, then holds the line low for
// ResetTicks.
//
// seq is consumed once, lazily. Each color is converted with rgb8.Convert
// and sent green, red, blue. An empty seq only sends the reset gap.
//
// The call blocks for about 30µs per color plus 300µs. Unless Opts.Strict
// is set it always returns nil.
func (d *Dev) WriteColors(seq iter.Seq[color.Color]) error {
	return Stream(d, seq)
}

// Stream is WriteColors for sequences of any color type.
func Stream[C color.Color](d *Dev, seq iter.Seq[C]) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err, d.faults, d.align = nil, 0, true

	for c := range seq {
		v := rgb8.Convert(c)
		d.encode(v.G)
		d.encode(v.R)
		d.encode(v.B)
		if d.strict && d.err != nil {
			return d.abort()
		}
	}
	d.latch()
	return d.settle()
}

// Write accepts a stream of packed R, G, B bytes and sends it as one frame.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels)%3 != 0 {
		return 0, errLength
	}
	if err := Stream(d, packed(pixels)); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb8.Model
}

// Bounds implements display.Drawer. It is Opts.NumPixels wide and 1 high.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// The whole strip is sent on every call: pixels outside r are sent black.
// Nothing is buffered, src is read while the bits go out, so a slow
// src.At stretches the gap between pixels. Prefer *rgb8.Strip or
// *image.NRGBA as src.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	return Stream(d, strip(d.rect, r, src, sp))
}

// Halt implements conn.Resource. It turns every LED off.
func (d *Dev) Halt() error {
	return Stream(d, black(d.rect.Dx()))
}

// String implements conn.Resource.
func (d *Dev) String() string {
	name := "pin"
	if s, ok := d.p.(fmt.Stringer); ok {
		name = s.String()
	}
	return fmt.Sprintf("ws2812timer.Dev{%s, %d, %s}", name, d.rect.Dx(), d.timing)
}

// latch holds the line low long enough for the strip to latch the frame.
func (d *Dev) latch() {
	for i := 0; i < ResetTicks; i++ {
		d.tick()
	}
}

// abort ends a strict transaction at a color boundary. The line goes low
// and the reset gap follows, so the next frame starts clean.
func (d *Dev) abort() error {
	err := d.err
	d.out(gpio.Low)
	d.latch()
	d.log.Warn().Err(err).Int("faults", d.faults).Msg("ws2812timer: frame aborted")
	return err
}

// settle closes a transaction. In the default mode the faults collected
// so far are dropped here on purpose.
func (d *Dev) settle() error {
	if d.faults == 0 {
		return nil
	}
	err := d.err
	n := d.faults
	d.err, d.faults = nil, 0
	if d.strict {
		d.log.Warn().Err(err).Int("faults", n).Msg("ws2812timer: frame failed")
		return err
	}
	d.log.Warn().Err(err).Int("faults", n).Msg("ws2812timer: faults ignored")
	return nil
}

// packed yields the pixels of a packed R, G, B byte stream.
func packed(p []byte) iter.Seq[rgb8.RGB8] {
	return func(yield func(rgb8.RGB8) bool) {
		for i := 0; i+2 < len(p); i += 3 {
			if !yield(rgb8.RGB8{R: p[i], G: p[i+1], B: p[i+2]}) {
				return
			}
		}
	}
}

// black yields n unlit pixels.
func black(n int) iter.Seq[rgb8.RGB8] {
	return func(yield func(rgb8.RGB8) bool) {
		for i := 0; i < n; i++ {
			if !yield(rgb8.RGB8{}) {
				return
			}
		}
	}
}

// strip yields the pixels of bounds, reading src where r covers them.
// A point p of r maps to p-r.Min+sp in src.
func strip(bounds, r image.Rectangle, src image.Image, sp image.Point) iter.Seq[rgb8.RGB8] {
	r = r.Intersect(bounds)
	return func(yield func(rgb8.RGB8) bool) {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				var c rgb8.RGB8
				if p := (image.Point{X: x, Y: y}); p.In(r) {
					s := p.Sub(r.Min).Add(sp)
					if img, ok := src.(*rgb8.Strip); ok {
						c = img.RGB8At(s.X, s.Y)
					} else {
						c = rgb8.Convert(src.At(s.X, s.Y))
					}
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

var _ display.Drawer = &Dev{}
var _ io.Writer = &Dev{}
