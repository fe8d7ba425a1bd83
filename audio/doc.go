// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample buffer and streaming primitives shared by
// the decoders, tracks and players.
//
// # Buffer
//
// Buffer holds interleaved float32 samples in [-1,1] together with the sample
// rate, channel count and the bit depth of the data it was decoded from:
//
//	buf, err := audio.NewBuffer(samples, 44100, 2, 16)
//	fmt.Println(buf.Frames(), buf.Duration(), buf.Peak(), buf.RMS())
//
// Peak and RMS use vectorised reductions from github.com/viterin/vek.
//
// # Source Interface
//
// Source is the streaming view used by anything that produces samples
// incrementally (a Buffer reader, a MonoMixer, a player):
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Mono Mixing
//
// MonoMixer averages every frame across channels. MixDown drains a source
// through a MonoMixer and is what waveform envelopes are built on:
//
//	mono, err := audio.MixDown(buf.Reader())
//
// # Decoder Registry
//
// Registry maps a format key, usually a file extension, to a Decoder:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.ForPath("drums/kick.wav")
package audio
