// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// # Decoding
//
// Decoder reads an entire stream and converts the first "data" chunk to
// normalized float32 samples:
//
//	buf, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrFormat) {
//	    // malformed, truncated or unsupported container
//	}
//
// Supported sample formats:
//   - 8-bit unsigned PCM
//   - 16-bit and 24-bit signed PCM
//   - 32-bit, as IEEE float or signed PCM (see Convert for how it is told apart)
//
// The container is walked chunk by chunk. The "fmt " chunk must directly
// follow the RIFF header; extension bytes after the canonical 16 and any
// chunks before "data" are skipped using their declared sizes. A size that
// would run past the end of the input fails with ErrChunkOverrun, so decoding
// a corrupt file is bounded by its length.
//
// ParseHeader and Convert expose the two halves of decoding separately.
//
// # Error Handling
//
// Every container error wraps ErrFormat:
//   - ErrNotWavFile: missing "RIFF"/"WAVE" tags
//   - ErrMissingFmtChunk: no "fmt " chunk after the header
//   - ErrInvalidFormat: fmt chunk too short, zero channels or zero sample rate
//   - ErrMissingDataChunk: end of input before a "data" chunk
//   - ErrChunkOverrun: a declared chunk size exceeds the input
//   - ErrUnsupportedBitDepth: bit depth other than 8, 16, 24 or 32
//
// # Encoding
//
// Encode writes an audio.Buffer as PCM through github.com/go-audio/wav:
//
//	f, _ := os.Create("bounce.wav")
//	err := wav.Encode(f, buf, 24)
package wav
