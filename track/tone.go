// SPDX-License-Identifier: EPL-2.0

package track

import (
	"math"

	"github.com/ik5/dawcore/audio"
)

// Tone describes the sine wave a track falls back to when a file cannot be
// decoded. The same value is written to every channel, with a linear fade in
// and out.
type Tone struct {
	SampleRate int
	Channels   int
	Seconds    float64
	Frequency  float64
	Amplitude  float32
	Fade       float64 // seconds
}

// DefaultTone is 5 s of 440 Hz stereo at 44.1 kHz with 0.1 s fades.
var DefaultTone = Tone{
	SampleRate: 44100,
	Channels:   2,
	Seconds:    5,
	Frequency:  440,
	Amplitude:  0.5,
	Fade:       0.1,
}

// Render synthesizes the tone. Invalid fields fall back to DefaultTone's.
func (t Tone) Render() *audio.Buffer {
	if t.SampleRate <= 0 {
		t.SampleRate = DefaultTone.SampleRate
	}
	if t.Channels < 1 {
		t.Channels = DefaultTone.Channels
	}
	if t.Seconds <= 0 {
		t.Seconds = DefaultTone.Seconds
	}

	frames := int(float64(t.SampleRate) * t.Seconds)
	fade := int(float64(t.SampleRate) * t.Fade)
	samples := make([]float32, frames*t.Channels)

	for i := range frames {
		at := float64(i) / float64(t.SampleRate)
		v := t.Amplitude * float32(math.Sin(2*math.Pi*t.Frequency*at))

		env := float32(1)
		switch {
		case fade > 0 && i < fade:
			env = float32(i) / float32(fade)
		case fade > 0 && i > frames-fade:
			env = float32(frames-i) / float32(fade)
		}

		for c := range t.Channels {
			samples[i*t.Channels+c] = v * env
		}
	}

	return &audio.Buffer{
		Samples:    samples,
		SampleRate: t.SampleRate,
		Channels:   t.Channels,
		BitDepth:   16,
	}
}
