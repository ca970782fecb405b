//go:build !ws2812slow

package ws2812timer

const buildTiming = TimingStandard
