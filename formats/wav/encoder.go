// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/dawcore/audio"
	"github.com/ik5/dawcore/utils"
)

const (
	pcmFormat   = 1
	floatFormat = 3
)

// Encode writes buf as a WAV file at bitDepth (8, 16, 24 or 32).
// 8, 16 and 24 bits are integer PCM; 32 bits is IEEE float so Decode reads it
// back as float. Samples outside [-1,1] are clamped. The header sizes are
// patched on close, hence the io.WriteSeeker.
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}
	if buf == nil || buf.Channels < 1 || buf.SampleRate <= 0 {
		return audio.ErrInvalidBuffer
	}

	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, len(buf.Samples)),
		SourceBitDepth: bitDepth,
	}
	format := pcmFormat
	if bitDepth == 32 {
		format = floatFormat
	}
	for i, s := range buf.Samples {
		if format == floatFormat {
			intBuf.Data[i] = floatBits(s)
			continue
		}
		intBuf.Data[i] = utils.FloatToPCM(s, bitDepth)
	}

	enc := gowav.NewEncoder(w, buf.SampleRate, bitDepth, buf.Channels, format)
	if err := enc.Write(intBuf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}

// floatBits carries the IEEE bits of the clamped sample through go-audio's
// int32 writer. NaN is written as silence.
func floatBits(s float32) int {
	if math.IsNaN(float64(s)) {
		s = 0
	}
	return int(int32(math.Float32bits(utils.Clamp(s, -1, 1))))
}
