// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

// ErrFormat is wrapped by every error caused by a malformed, truncated or
// unsupported container, so callers can test for the whole class at once.
var ErrFormat = errors.New("wav format error")

var (
	ErrNotWavFile          = fmt.Errorf("%w: not a RIFF/WAVE file", ErrFormat)
	ErrMissingFmtChunk     = fmt.Errorf("%w: missing fmt chunk", ErrFormat)
	ErrInvalidFormat       = fmt.Errorf("%w: invalid fmt chunk", ErrFormat)
	ErrMissingDataChunk    = fmt.Errorf("%w: no data chunk", ErrFormat)
	ErrChunkOverrun        = fmt.Errorf("%w: chunk size exceeds stream length", ErrFormat)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported bit depth", ErrFormat)
)
