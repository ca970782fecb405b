package softtimer

import (
	"bytes"
	"image/color"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"periph.io/x/devices/v3/ws2812timer"
)

func frame() []color.Color {
	return []color.Color{
		color.NRGBA{R: 0xFF, A: 0xFF},
		color.NRGBA{G: 0xFF, A: 0xFF},
		color.NRGBA{B: 0xFF, A: 0xFF},
	}
}

func TestDriverIdleBetweenFrames(t *testing.T) {
	for _, strict := range []bool{false, true} {
		tm, c := newFake(t, ws2812timer.Frequency)
		var buf bytes.Buffer
		log := zerolog.New(&buf).Level(zerolog.InfoLevel)
		pin := &gpiotest.Pin{N: "GPIO18", Num: 18}
		tm.Start()
		d, err := ws2812timer.New(tm, pin, &ws2812timer.Opts{Strict: strict, NumPixels: 3, Logger: &log})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			c.t = c.t.Add(20 * time.Millisecond)
			start := c.t
			require.NoError(t, ws2812timer.Stream(d, slices.Values(frame())), "strict=%t frame %d", strict, i)

			// The whole frame went out on the tick grid.
			ticks := 3*24*ws2812timer.TicksPerBit + ws2812timer.ResetTicks
			assert.Equal(t, start.Add(time.Duration(ticks-1)*tm.Period()), c.t, "strict=%t frame %d", strict, i)
			assert.Equal(t, gpio.Low, pin.Read())
		}
		c.t = c.t.Add(20 * time.Millisecond)
		assert.NoError(t, d.Halt())
		assert.Empty(t, buf.String(), "strict=%t", strict)
	}
}

func TestDriverMissedTickMidFrame(t *testing.T) {
	tm, c := newFake(t, ws2812timer.Frequency)
	n := 0
	tm.spin = func(d time.Duration) {
		c.spin(d)
		if n++; n == 10 {
			c.t = c.t.Add(time.Millisecond)
		}
	}
	tm.Start()
	d, err := ws2812timer.New(tm, &gpiotest.Pin{N: "GPIO18", Num: 18}, &ws2812timer.Opts{Strict: true})
	require.NoError(t, err)

	err = ws2812timer.Stream(d, slices.Values(frame()))
	assert.ErrorIs(t, err, ws2812timer.ErrFault)
	assert.ErrorIs(t, err, ErrOverrun)
}
