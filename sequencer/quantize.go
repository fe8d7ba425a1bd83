// SPDX-License-Identifier: EPL-2.0

package sequencer

import (
	"fmt"
	"strings"

	"github.com/ik5/dawcore/transport"
)

// Quantize selects the grid notes snap to.
type Quantize int

const (
	QuantizeOff Quantize = iota
	QuantizeBeat
	QuantizeHalf
	QuantizeQuarter
	QuantizeEighth
	QuantizeTriplet
)

var quantizeNames = [...]string{
	QuantizeOff:     "off",
	QuantizeBeat:    "beat",
	QuantizeHalf:    "half",
	QuantizeQuarter: "quarter",
	QuantizeEighth:  "eighth",
	QuantizeTriplet: "triplet",
}

func (q Quantize) String() string {
	if q < 0 || int(q) >= len(quantizeNames) {
		return fmt.Sprintf("Quantize(%d)", int(q))
	}
	return quantizeNames[q]
}

// Grid returns the grid spacing in ticks, 0 for QuantizeOff.
//
// The names count subdivisions of a quarter note: Half is an eighth note
// (240), Quarter a sixteenth (120), Eighth a thirty-second (60).
func (q Quantize) Grid() int64 {
	switch q {
	case QuantizeBeat:
		return transport.PPQ
	case QuantizeHalf:
		return transport.PPQ / 2
	case QuantizeQuarter:
		return transport.PPQ / 4
	case QuantizeEighth:
		return transport.PPQ / 8
	case QuantizeTriplet:
		return transport.PPQ / 3
	default:
		return 0
	}
}

// Snap rounds tick to the nearest grid line, halfway values going up.
// QuantizeOff returns tick unchanged; on any grid negative ticks snap to 0.
func (q Quantize) Snap(tick int64) int64 {
	grid := q.Grid()
	if grid == 0 {
		return tick
	}
	if tick < 0 {
		return 0
	}
	return ((tick + grid/2) / grid) * grid
}

// ParseQuantize accepts the names returned by String, case-insensitively.
func ParseQuantize(name string) (Quantize, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range quantizeNames {
		if n == name {
			return Quantize(i), nil
		}
	}
	return QuantizeOff, fmt.Errorf("%w: %q", ErrUnknownQuantize, name)
}

func (q Quantize) MarshalText() ([]byte, error) {
	if q < 0 || int(q) >= len(quantizeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownQuantize, int(q))
	}
	return []byte(q.String()), nil
}

func (q *Quantize) UnmarshalText(text []byte) error {
	v, err := ParseQuantize(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}
