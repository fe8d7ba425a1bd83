// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/viterin/vek/vek32"
)

// Buffer is a decoded, interleaved float32 sample buffer.
//
// Samples are in [-1,1] and len(Samples) is always a multiple of Channels.
// BitDepth records the depth of the source data and is informational only.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
	BitDepth   int
}

// NewBuffer validates the layout and wraps samples without copying.
func NewBuffer(samples []float32, sampleRate, channels, bitDepth int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrInvalidBuffer, channels)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidBuffer, len(samples), channels)
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b == nil || b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Len returns the number of interleaved samples.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Samples)
}

func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// At returns the sample of frame index on channel ch, or 0 when either is out of range.
func (b *Buffer) At(index, ch int) float32 {
	if b == nil || ch < 0 || ch >= b.Channels || index < 0 {
		return 0
	}
	i := index*b.Channels + ch
	if i >= len(b.Samples) {
		return 0
	}
	return b.Samples[i]
}

// Peak is the largest absolute sample value, 0 for an empty buffer.
func (b *Buffer) Peak() float32 {
	if b.Len() == 0 {
		return 0
	}
	hi := vek32.Max(b.Samples)
	lo := vek32.Min(b.Samples)
	return max(hi, -lo)
}

// RMS is the root mean square over every interleaved sample, 0 for an empty buffer.
func (b *Buffer) RMS() float32 {
	if b.Len() == 0 {
		return 0
	}
	sum := vek32.Dot(b.Samples, b.Samples)
	return float32(math.Sqrt(float64(sum / float32(len(b.Samples)))))
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	c := *b
	c.Samples = append([]float32(nil), b.Samples...)
	return &c
}

// Reader streams the buffer as a Source starting at frame 0.
func (b *Buffer) Reader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.buf.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}
	return n, nil
}
