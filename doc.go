// SPDX-License-Identifier: EPL-2.0

// Package dawcore is the non-UI core of a small digital audio workstation.
//
// The subpackages each own one concern:
//   - formats/wav decodes RIFF/WAVE files into float32 buffers and writes them back
//   - track wraps a decoded buffer with its statistics and mix parameters
//   - transport is the playback clock: state machine, tempo, meter, loop, ticks
//   - sequencer is the note timeline with quantization and MIDI file support
//   - player simulates playback of a track as an audio.Source
//   - channel keeps mixer channels addressable by id
//   - config loads the settings above from YAML
//
// # Quick Start
//
// A Session wires a clock, a timeline and a channel registry together:
//
//	cfg, _ := config.Load("dawcore.yaml")
//	s, _ := dawcore.NewSession(cfg, slog.Default())
//
//	drums, err := s.AddAudioChannel("drums", "drums.wav")
//	if err != nil {
//	    // the channel still plays the fallback tone
//	}
//	mins, maxs, _ := s.Envelope(drums.ID(), 0)
//
//	s.Clock.Play()
//	s.Clock.Advance(4410)
//	s.SyncTimeline()
//
// # Mono Bounce
//
// MixToMono16 drains any audio.Source, such as a playing player, into mono
// 16-bit PCM:
//
//	p := drums.Player()
//	p.Play()
//	pcm16, rate, err := dawcore.MixToMono16(p, 4096)
//
// The core is synchronous and single threaded. Nothing talks to an audio
// device; callers serialize access to a Session.
package dawcore
