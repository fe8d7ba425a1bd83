// SPDX-License-Identifier: EPL-2.0

package transport

import "testing"

func TestClock_Advance(t *testing.T) {
	t.Parallel()

	c := NewClock()
	if got := c.Advance(100); got != 0 {
		t.Errorf("Advance() while stopped = %d, want 0", got)
	}

	c.Play()
	c.Advance(100)
	c.Advance(-50)
	if c.Playhead() != 100 {
		t.Errorf("Playhead() = %d, want 100", c.Playhead())
	}

	c.Record()
	if got := c.Advance(20); got != 120 {
		t.Errorf("Advance() while recording = %d, want 120", got)
	}
}

func TestClock_AdvanceLoops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		start   int64
		advance int64
		want    int64
	}{
		{"inside loop", 100, 50, 150},
		{"exactly at end wraps to start", 100, 100, 100},
		{"overshoot keeps remainder", 150, 70, 120},
		{"multiple spans", 100, 350, 150},
		{"already past loop end runs on", 250, 10, 260},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClock()
			c.SetLoopRange(100, 200)
			c.SetLoopEnabled(true)
			c.SetPlayhead(tt.start)
			c.Play()

			if got := c.Advance(tt.advance); got != tt.want {
				t.Errorf("Advance(%d) from %d = %d, want %d", tt.advance, tt.start, got, tt.want)
			}
		})
	}
}

func TestClock_AdvanceLoopDisabled(t *testing.T) {
	t.Parallel()

	c := NewClock()
	c.SetLoopRange(0, 10)
	c.Play()

	if got := c.Advance(25); got != 25 {
		t.Errorf("Advance() = %d, want 25 with loop disabled", got)
	}
}

func TestClock_TickConversion(t *testing.T) {
	t.Parallel()

	c := NewClock() // 120 BPM, 44100 Hz: one quarter = 22050 frames

	if got := c.TicksToSamples(PPQ); got != 22050 {
		t.Errorf("TicksToSamples(PPQ) = %d, want 22050", got)
	}
	if got := c.SamplesToTicks(22050); got != PPQ {
		t.Errorf("SamplesToTicks(22050) = %d, want %d", got, PPQ)
	}
	if got := c.SamplesToTicks(44100 * 2); got != 4*PPQ {
		t.Errorf("SamplesToTicks(2s) = %d, want %d", got, 4*PPQ)
	}

	c.SetTempo(60)
	c.SetPlayhead(44100)
	if got := c.CurrentTick(); got != PPQ {
		t.Errorf("CurrentTick() at 60 BPM after 1s = %d, want %d", got, PPQ)
	}
}

func TestClock_Position(t *testing.T) {
	t.Parallel()

	tests := []struct {
		num, den int
		tick     int64
		want     Position
	}{
		{4, 4, 0, Position{1, 1, 0}},
		{4, 4, 479, Position{1, 1, 479}},
		{4, 4, 480, Position{1, 2, 0}},
		{4, 4, 1920, Position{2, 1, 0}},
		{4, 4, 2000, Position{2, 1, 80}},
		{3, 4, 1440, Position{2, 1, 0}},
		{6, 8, 240 * 7, Position{2, 2, 0}},
	}

	for _, tt := range tests {
		c := NewClock()
		c.SetTimeSignature(tt.num, tt.den)

		if got := c.PositionAt(tt.tick); got != tt.want {
			t.Errorf("%d/%d PositionAt(%d) = %v, want %v", tt.num, tt.den, tt.tick, got, tt.want)
		}
	}

	if s := (Position{Bar: 3, Beat: 2, Tick: 5}).String(); s != "3.2.005" {
		t.Errorf("Position.String() = %q", s)
	}
}

func TestClock_PositionFollowsPlayhead(t *testing.T) {
	t.Parallel()

	c := NewClock()
	c.SetPlayhead(c.TicksToSamples(PPQ*5 + 16))

	want := Position{Bar: 2, Beat: 2, Tick: 16}
	if got := c.Position(); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}
