// SPDX-License-Identifier: EPL-2.0

// Package transport implements the playback clock: a small state machine
// (stopped, playing, paused, recording) plus tempo, time signature, loop
// region and a sample-accurate playhead. No audio device is involved; the
// playhead only moves through SetPlayhead and Advance.
//
// Musical time is measured in ticks at PPQ (480) ticks per quarter note.
// Conversions between ticks and sample frames use the clock's tempo and
// sample rate:
//
//	c := transport.NewClock()
//	c.Play()
//	c.Advance(22050)
//	fmt.Println(c.CurrentTick(), c.Position()) // 480 1.2.000
package transport
