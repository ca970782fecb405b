//go:build !ws2812slow

package ws2812timer

// DefaultTiming is the Timing used when Opts.Timing is TimingDefault.
const DefaultTiming = TimingStandard
