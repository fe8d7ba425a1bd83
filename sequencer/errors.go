// SPDX-License-Identifier: EPL-2.0

package sequencer

import "errors"

var (
	ErrUnknownQuantize   = errors.New("unknown quantize value")
	ErrUnsupportedTiming = errors.New("unsupported SMF time format")
	ErrTimelineRequired  = errors.New("timeline is nil")
	ErrInvalidSongInfo   = errors.New("tempo or meter not representable in SMF")
)
