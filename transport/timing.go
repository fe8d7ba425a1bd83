// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"fmt"
	"math"
)

// Advance moves the playhead forward by frames while playing or recording and
// returns the new position. With looping enabled on a valid range, crossing
// the loop end wraps back into [start, end).
func (c *Clock) Advance(frames int64) int64 {
	if frames <= 0 || (c.state != Playing && c.state != Recording) {
		return c.playhead
	}

	prev := c.playhead
	c.playhead += frames

	if c.loop && c.loopEnd > c.loopStart && prev < c.loopEnd && c.playhead >= c.loopEnd {
		span := c.loopEnd - c.loopStart
		c.playhead = c.loopStart + (c.playhead-c.loopEnd)%span
	}
	return c.playhead
}

// SamplesPerTick at the current tempo and sample rate.
func (c *Clock) SamplesPerTick() float64 {
	return float64(c.sampleRate) * 60 / (c.tempo * PPQ)
}

// SamplesToTicks converts a frame position to ticks, rounding down.
func (c *Clock) SamplesToTicks(samples int64) int64 {
	return int64(math.Floor(float64(samples) / c.SamplesPerTick()))
}

// TicksToSamples converts ticks to the nearest frame position.
func (c *Clock) TicksToSamples(ticks int64) int64 {
	return int64(math.Round(float64(ticks) * c.SamplesPerTick()))
}

// CurrentTick is the playhead expressed in ticks.
func (c *Clock) CurrentTick() int64 {
	return c.SamplesToTicks(c.playhead)
}

// TicksPerBeat is the length of one beat of the time signature; a quarter
// note is PPQ ticks, an eighth note beat half of that.
func (c *Clock) TicksPerBeat() int64 {
	return int64(PPQ * 4 / c.denom)
}

// Position is a musical bar/beat/tick location. Bar and Beat are 1-based.
type Position struct {
	Bar  int64
	Beat int64
	Tick int64
}

func (p Position) String() string {
	return fmt.Sprintf("%d.%d.%03d", p.Bar, p.Beat, p.Tick)
}

// Position returns the playhead as bar/beat/tick in the current time signature.
func (c *Clock) Position() Position {
	return c.PositionAt(c.CurrentTick())
}

// PositionAt converts an absolute tick to bar/beat/tick.
func (c *Clock) PositionAt(tick int64) Position {
	tpb := c.TicksPerBeat()
	if tpb <= 0 {
		tpb = PPQ
	}
	beats := tick / tpb
	return Position{
		Bar:  beats/int64(c.numerator) + 1,
		Beat: beats%int64(c.numerator) + 1,
		Tick: tick % tpb,
	}
}
