// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ik5/dawcore/audio"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	fmtCanonSize    = 16
)

// Header holds the fields of the "fmt " chunk.
type Header struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int
}

// ParseHeader validates the RIFF/WAVE container in data and returns the
// format header together with the payload of the first "data" chunk.
//
// The "fmt " chunk must directly follow the 12-byte RIFF header. Bytes past
// the canonical 16 are skipped, and any chunk between "fmt " and "data" is
// skipped by its declared size. Every size is checked against len(data), so
// a corrupt file fails instead of reading past the end.
func ParseHeader(data []byte) (Header, []byte, error) {
	var h Header

	if len(data) < riffHeaderSize {
		return h, nil, fmt.Errorf("%w: %d byte header", ErrNotWavFile, len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return h, nil, ErrNotWavFile
	}

	pos := int64(riffHeaderSize)
	end := int64(len(data))

	if end-pos < chunkHeaderSize || !bytes.Equal(data[pos:pos+4], []byte("fmt ")) {
		return h, nil, ErrMissingFmtChunk
	}
	fmtSize := int64(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
	body := pos + chunkHeaderSize
	if fmtSize < fmtCanonSize {
		return h, nil, fmt.Errorf("%w: fmt chunk is %d bytes", ErrInvalidFormat, fmtSize)
	}
	if body+fmtSize > end {
		return h, nil, fmt.Errorf("%w: fmt chunk", ErrChunkOverrun)
	}

	f := data[body : body+fmtCanonSize]
	h = Header{
		AudioFormat:   binary.LittleEndian.Uint16(f[0:2]),
		Channels:      int(binary.LittleEndian.Uint16(f[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(f[4:8])),
		ByteRate:      int(binary.LittleEndian.Uint32(f[8:12])),
		BlockAlign:    int(binary.LittleEndian.Uint16(f[12:14])),
		BitsPerSample: int(binary.LittleEndian.Uint16(f[14:16])),
	}
	if h.Channels == 0 {
		return h, nil, fmt.Errorf("%w: zero channels", ErrInvalidFormat)
	}
	if h.SampleRate == 0 {
		return h, nil, fmt.Errorf("%w: zero sample rate", ErrInvalidFormat)
	}

	pos = body + fmtSize

	for end-pos >= chunkHeaderSize {
		id := data[pos : pos+4]
		size := int64(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body = pos + chunkHeaderSize

		if body+size > end {
			return h, nil, fmt.Errorf("%w: %q chunk declares %d bytes", ErrChunkOverrun, id, size)
		}
		if bytes.Equal(id, []byte("data")) {
			return h, data[body : body+size], nil
		}

		pos = body + size
	}

	return h, nil, ErrMissingDataChunk
}

// Decoder decodes a whole RIFF/WAVE stream into memory.
type Decoder struct{}

// Decode reads r to the end and converts the data chunk to normalized samples.
// An unsupported bit depth yields an empty buffer carrying the header fields
// along with ErrUnsupportedBitDepth.
func (Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	h, raw, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	samples, err := Convert(raw, h.BitsPerSample)
	if err != nil {
		return &audio.Buffer{
			Samples:    []float32{},
			SampleRate: h.SampleRate,
			Channels:   h.Channels,
			BitDepth:   h.BitsPerSample,
		}, err
	}

	// drop a trailing partial frame
	samples = samples[:len(samples)-len(samples)%h.Channels]

	return audio.NewBuffer(samples, h.SampleRate, h.Channels, h.BitsPerSample)
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return Decoder{}.Decode(f)
}
