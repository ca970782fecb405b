package ws2812timer

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Timing selects how a bit is laid out over its three ticks.
type Timing uint8

const (
	// TimingDefault resolves to DefaultTiming, which the ws2812slow build
	// tag switches to TimingDegraded.
	TimingDefault Timing = iota
	// TimingStandard sends a "1" as 2 ticks high then 1 low, and a "0" as
	// 1 tick high then 2 low.
	TimingStandard
	// TimingDegraded drives the line low one tick earlier for a "0": the
	// high pulse then only lasts as long as the pin takes to toggle. Try it
	// when LEDs show white or wrong colors with TimingStandard; slow GPIO
	// toggles stretch the short pulse until it reads as a "1".
	TimingDegraded
)

func (t Timing) String() string {
	switch t {
	case TimingDefault:
		return "default"
	case TimingStandard:
		return "standard"
	case TimingDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("Timing(%d)", uint8(t))
	}
}

// ParseTiming parses the String form of a Timing.
func ParseTiming(s string) (Timing, error) {
	switch s {
	case "", "default":
		return TimingDefault, nil
	case "standard":
		return TimingStandard, nil
	case "degraded", "slow":
		return TimingDegraded, nil
	}
	return 0, fmt.Errorf("ws2812timer: unknown timing %q", s)
}

// encodeStandard sends v MSB first using TimingStandard.
func (d *Dev) encodeStandard(v byte) {
	for i := 0; i < 8; i++ {
		d.tick()
		d.out(gpio.High)
		d.tick()
		if v&0x80 != 0 {
			d.tick()
			d.out(gpio.Low)
		} else {
			d.out(gpio.Low)
			d.tick()
		}
		v <<= 1
	}
}

// encodeDegraded sends v MSB first using TimingDegraded.
func (d *Dev) encodeDegraded(v byte) {
	for i := 0; i < 8; i++ {
		d.tick()
		d.out(gpio.High)
		if v&0x80 != 0 {
			d.tick()
			d.tick()
			d.out(gpio.Low)
		} else {
			d.out(gpio.Low)
			d.tick()
			d.tick()
		}
		v <<= 1
	}
}

// tick waits for the next timer tick.
//
// The first tick of a transaction only lines the frame up with the timer.
// No edge precedes it, so a late or overrun report there is not a fault.
func (d *Dev) tick() {
	err := d.t.Wait()
	if d.align {
		d.align = false
		return
	}
	if err != nil {
		d.fault("wait", err)
	}
}

// out drives the data line.
func (d *Dev) out(l gpio.Level) {
	if err := d.p.Out(l); err != nil {
		d.fault("out", err)
	}
}

// fault records a pin or timer error and carries on with the bitstream.
// Whether it ever reaches the caller is decided once per frame, see
// Opts.Strict.
func (d *Dev) fault(op string, err error) {
	d.faults++
	if d.err == nil {
		d.err = &FaultError{Op: op, Err: err}
	}
}
