// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Chunk is an extra RIFF sub-chunk placed between "fmt " and "data".
type Chunk struct {
	ID   string
	Data []byte
}

// WAV describes a RIFF/WAVE file to build for tests.
// It deliberately allows malformed layouts so decoders can be exercised.
type WAV struct {
	Format        uint16 // 1 = PCM, 3 = IEEE float; defaults to 1
	Channels      int
	SampleRate    int
	BitsPerSample int
	FmtExtra      []byte  // appended after the canonical 16 fmt bytes
	Chunks        []Chunk // written before the data chunk
	Data          []byte
	DataSize      uint32 // declared data size; 0 means len(Data)
	OmitData      bool
}

// Bytes encodes the description.
func (w WAV) Bytes() []byte {
	format := w.Format
	if format == 0 {
		format = 1
	}
	blockAlign := w.Channels * w.BitsPerSample / 8

	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, uint32(16+len(w.FmtExtra)))
	binary.Write(body, binary.LittleEndian, format)
	binary.Write(body, binary.LittleEndian, uint16(w.Channels))
	binary.Write(body, binary.LittleEndian, uint32(w.SampleRate))
	binary.Write(body, binary.LittleEndian, uint32(w.SampleRate*blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(w.BitsPerSample))
	body.Write(w.FmtExtra)

	for _, c := range w.Chunks {
		body.WriteString(c.ID)
		binary.Write(body, binary.LittleEndian, uint32(len(c.Data)))
		body.Write(c.Data)
	}

	if !w.OmitData {
		size := w.DataSize
		if size == 0 {
			size = uint32(len(w.Data))
		}
		body.WriteString("data")
		binary.Write(body, binary.LittleEndian, size)
		body.Write(w.Data)
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// WriteFile writes the encoded file into a per-test temporary directory and returns its path.
func (w WAV) WriteFile(t testing.TB, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, w.Bytes(), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// PCM16 encodes little-endian signed 16-bit samples.
func PCM16(samples ...int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	return buf
}

// PCM24 encodes the low 24 bits of each value, little-endian.
func PCM24(samples ...int32) []byte {
	buf := make([]byte, 3*len(samples))
	for i, s := range samples {
		u := uint32(s)
		buf[3*i] = byte(u)
		buf[3*i+1] = byte(u >> 8)
		buf[3*i+2] = byte(u >> 16)
	}
	return buf
}

// PCM32 encodes little-endian signed 32-bit samples.
func PCM32(samples ...int32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(s))
	}
	return buf
}

// Float32 encodes little-endian IEEE float samples.
func Float32(samples ...float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	return buf
}

// Sine generates frames of an interleaved sine wave with the same value on every channel.
func Sine(sampleRate, channels, frames int, frequency float64, amplitude float32) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		v := amplitude * float32(math.Sin(2*math.Pi*frequency*t))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// Constant generates frames*channels copies of value.
func Constant(channels, frames int, value float32) []float32 {
	out := make([]float32, frames*channels)
	for i := range out {
		out[i] = value
	}
	return out
}
