//go:build ws2812slow

package ws2812timer

// DefaultTiming is the Timing used when Opts.Timing is TimingDefault.
//
// This build was made with the ws2812slow tag.
const DefaultTiming = TimingDegraded
