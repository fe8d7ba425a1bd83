// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ik5/dawcore/audio"
	"github.com/ik5/dawcore/formats/wav"
	"github.com/ik5/dawcore/utils"
)

// DefaultRegistry returns a registry with the WAV decoder under "wav" and "wave".
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	return reg
}

// AudioTrack owns one decoded sample buffer and the mix parameters applied to it.
//
// The buffer is replaced as a whole by the Load methods and is never shared:
// accessors hand out copies. An AudioTrack is not safe for concurrent use.
type AudioTrack struct {
	name string
	path string

	buf         *audio.Buffer
	synthesized bool

	volume float32
	pan    float32
	muted  bool
	soloed bool

	registry *audio.Registry
	tone     Tone
	logger   *slog.Logger
}

type Option func(*AudioTrack)

func WithLogger(l *slog.Logger) Option {
	return func(t *AudioTrack) { t.logger = l }
}

// WithRegistry selects the decoders LoadFromFile may use.
func WithRegistry(r *audio.Registry) Option {
	return func(t *AudioTrack) { t.registry = r }
}

// WithFallbackTone replaces DefaultTone as the decode failure fallback.
func WithFallbackTone(tone Tone) Option {
	return func(t *AudioTrack) { t.tone = tone }
}

// New returns an empty track at full volume, centered.
func New(opts ...Option) *AudioTrack {
	t := &AudioTrack{
		buf:    &audio.Buffer{SampleRate: 44100, Channels: 2, BitDepth: 16},
		volume: 1,
		tone:   DefaultTone,
	}
	for _, o := range opts {
		o(t)
	}
	if t.registry == nil {
		t.registry = DefaultRegistry()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// LoadFromFile decodes path with the decoder registered for its extension.
// Files with any other extension, or none, go through the WAV decoder, whose
// container check rejects non-WAV data.
//
// When decoding fails the track is loaded with the synthesized fallback tone
// instead and the decode error is returned, so the track is always usable.
// Synthesized reports which of the two happened.
func (t *AudioTrack) LoadFromFile(path string) error {
	t.path = path
	t.name = nameFromPath(path)

	buf, err := t.decodeFile(path)
	return t.adopt(buf, err)
}

// LoadFromReader decodes a WAV stream with the same fallback policy as LoadFromFile.
func (t *AudioTrack) LoadFromReader(r io.Reader, name string) error {
	t.path = ""
	t.name = name

	buf, err := wav.Decoder{}.Decode(r)
	return t.adopt(buf, err)
}

func (t *AudioTrack) decodeFile(path string) (*audio.Buffer, error) {
	dec, ok := t.registry.ForPath(path)
	if !ok {
		dec = wav.Decoder{}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return dec.Decode(f)
}

func (t *AudioTrack) adopt(buf *audio.Buffer, err error) error {
	if err == nil && buf != nil {
		t.buf = buf
		t.synthesized = false

		t.logger.Debug("decoded audio track",
			"name", t.name,
			"path", t.path,
			"sampleRate", buf.SampleRate,
			"channels", buf.Channels,
			"bitDepth", buf.BitDepth,
			"frames", buf.Frames(),
		)
		return nil
	}

	t.logger.Warn("decode failed, using fallback tone", "name", t.name, "path", t.path, "err", err)
	t.buf = t.tone.Render()
	t.synthesized = true

	if err == nil {
		err = fmt.Errorf("%w: decoder returned no buffer", wav.ErrFormat)
	}
	return fmt.Errorf("loading %q: %w", t.name, err)
}

// LoadFromMemory copies frames*channels samples into the track and tags the
// buffer as 32-bit float. Invalid parameters leave the track unchanged.
func (t *AudioTrack) LoadFromMemory(samples []float32, frames, sampleRate, channels int) error {
	if frames < 0 || sampleRate <= 0 || channels < 1 || len(samples) < frames*channels {
		return fmt.Errorf("%w: %d frames, %d Hz, %d channels, %d samples",
			ErrInvalidParameter, frames, sampleRate, channels, len(samples))
	}

	data := make([]float32, frames*channels)
	copy(data, samples)

	t.buf = &audio.Buffer{
		Samples:    data,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   32,
	}
	t.synthesized = false
	return nil
}

// Clear drops the samples and the file identity; the format is kept.
func (t *AudioTrack) Clear() {
	t.buf = &audio.Buffer{
		SampleRate: t.buf.SampleRate,
		Channels:   t.buf.Channels,
		BitDepth:   t.buf.BitDepth,
	}
	t.synthesized = false
	t.path = ""
	t.name = ""
}

func nameFromPath(path string) string {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func (t *AudioTrack) Name() string      { return t.name }
func (t *AudioTrack) Path() string      { return t.path }
func (t *AudioTrack) SampleRate() int   { return t.buf.SampleRate }
func (t *AudioTrack) Channels() int     { return t.buf.Channels }
func (t *AudioTrack) BitDepth() int     { return t.buf.BitDepth }
func (t *AudioTrack) Frames() int       { return t.buf.Frames() }
func (t *AudioTrack) IsEmpty() bool     { return t.buf.Len() == 0 }
func (t *AudioTrack) Synthesized() bool { return t.synthesized }

func (t *AudioTrack) Duration() time.Duration { return t.buf.Duration() }

func (t *AudioTrack) DurationSeconds() float64 {
	if t.buf.SampleRate <= 0 {
		return 0
	}
	return float64(t.buf.Frames()) / float64(t.buf.SampleRate)
}

// Sample returns the sample at frame index on channel; anything out of range reads as 0.
func (t *AudioTrack) Sample(index, channel int) float32 {
	return t.buf.At(index, channel)
}

// Samples returns a copy of the interleaved samples.
func (t *AudioTrack) Samples() []float32 {
	return append([]float32(nil), t.buf.Samples...)
}

// Buffer returns a copy of the whole sample buffer.
func (t *AudioTrack) Buffer() *audio.Buffer {
	return t.buf.Clone()
}

// PeakAmplitude is the largest absolute sample over all channels.
func (t *AudioTrack) PeakAmplitude() float32 { return t.buf.Peak() }

// RMSAmplitude is the RMS over all interleaved samples, 0 when empty.
func (t *AudioTrack) RMSAmplitude() float32 { return t.buf.RMS() }

// PeakAmplitudes builds a mono min/max envelope of numPoints spans.
//
// Each span covers max(1, frames/numPoints) frames. Frames are first averaged
// across channels, then the span reports the minimum and maximum of those
// means. Both start at 0, and spans past the end of the data stay 0.
func (t *AudioTrack) PeakAmplitudes(numPoints int) (mins, maxs []float32) {
	if t.buf.Len() == 0 || numPoints <= 0 {
		return nil, nil
	}

	mono, err := audio.MixDown(t.buf.Reader())
	if err != nil {
		t.logger.Error("mixing down for envelope", "name", t.name, "err", err)
		return nil, nil
	}

	mins = make([]float32, numPoints)
	maxs = make([]float32, numPoints)

	frames := len(mono)
	per := max(1, frames/numPoints)

	for i := range numPoints {
		start := i * per
		if start >= frames {
			break
		}
		end := min(start+per, frames)

		var lo, hi float32
		for _, v := range mono[start:end] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
		mins[i] = lo
		maxs[i] = hi
	}
	return mins, maxs
}

func (t *AudioTrack) Volume() float32 { return t.volume }

// SetVolume clamps to [0,1].
func (t *AudioTrack) SetVolume(v float32) { t.volume = utils.Clamp(v, 0, 1) }

func (t *AudioTrack) Pan() float32 { return t.pan }

// SetPan clamps to [-1,1].
func (t *AudioTrack) SetPan(p float32) { t.pan = utils.Clamp(p, -1, 1) }

func (t *AudioTrack) Muted() bool      { return t.muted }
func (t *AudioTrack) SetMuted(m bool)  { t.muted = m }
func (t *AudioTrack) Soloed() bool     { return t.soloed }
func (t *AudioTrack) SetSoloed(s bool) { t.soloed = s }

// Export writes the current buffer as a WAV file at bitDepth. 32-bit output
// is IEEE float.
func (t *AudioTrack) Export(w io.WriteSeeker, bitDepth int) error {
	return wav.Encode(w, t.buf, bitDepth)
}
