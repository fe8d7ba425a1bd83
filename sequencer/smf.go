// SPDX-License-Identifier: EPL-2.0

package sequencer

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/dawcore/transport"
)

// SongInfo is the conductor data of a MIDI file.
type SongInfo struct {
	BPM         float64
	Numerator   int
	Denominator int
}

// DefaultSongInfo is 120 BPM in 4/4, what a file without tempo or meter
// events implies.
var DefaultSongInfo = SongInfo{BPM: 120, Numerator: 4, Denominator: 4}

// SongInfoFrom reads tempo and meter off a clock.
func SongInfoFrom(c *transport.Clock) SongInfo {
	num, denom := c.TimeSignature()
	return SongInfo{BPM: c.Tempo(), Numerator: num, Denominator: denom}
}

// Apply sets the clock's tempo and time signature; invalid values are
// rejected by the clock and leave it unchanged.
func (s SongInfo) Apply(c *transport.Clock) {
	c.SetTempo(s.BPM)
	c.SetTimeSignature(s.Numerator, s.Denominator)
}

type smfEvent struct {
	tick int64
	off  bool
	msg  midi.Message
}

// Validate reports whether s fits the SMF conductor events: a positive
// tempo, a numerator in 1..255 and a power-of-two denominator up to 128.
func (s SongInfo) Validate() error {
	d := s.Denominator
	switch {
	case !(s.BPM > 0):
		return fmt.Errorf("%w: tempo %v", ErrInvalidSongInfo, s.BPM)
	case s.Numerator < 1 || s.Numerator > 255:
		return fmt.Errorf("%w: numerator %d", ErrInvalidSongInfo, s.Numerator)
	case d < 1 || d > 128 || d&(d-1) != 0:
		return fmt.Errorf("%w: denominator %d", ErrInvalidSongInfo, d)
	}
	return nil
}

// WriteSMF writes tl as a format 1 Standard MIDI File at transport.PPQ ticks
// per quarter note. Track 0 carries meter and tempo from info, then every
// timeline track follows with its name and notes on MIDI channel index%16.
func WriteSMF(w io.Writer, tl *Timeline, info SongInfo) error {
	if tl == nil {
		return ErrTimelineRequired
	}
	if err := info.Validate(); err != nil {
		return err
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(transport.PPQ)

	var conductor smf.Track
	conductor.Add(0, smf.MetaMeter(uint8(info.Numerator), uint8(info.Denominator))) //nolint:gosec // checked by Validate
	conductor.Add(0, smf.MetaTempo(info.BPM))
	conductor.Close(0)
	if err := sm.Add(conductor); err != nil {
		return fmt.Errorf("adding conductor track: %w", err)
	}

	for i, t := range tl.tracks {
		ch := uint8(i % 16) //nolint:gosec // bounded by 16

		events := make([]smfEvent, 0, len(t.Notes)*2)
		for _, n := range t.Notes {
			key := uint8(n.Pitch) //nolint:gosec // validated by AddNote
			// a note on with velocity 0 would read back as a note off
			vel := uint8(max(n.Velocity, 1)) //nolint:gosec // validated by AddNote
			events = append(events,
				smfEvent{tick: n.Start, msg: midi.NoteOn(ch, key, vel)},
				smfEvent{tick: n.End(), off: true, msg: midi.NoteOff(ch, key)},
			)
		}
		slices.SortStableFunc(events, func(a, b smfEvent) int {
			if c := cmp.Compare(a.tick, b.tick); c != 0 {
				return c
			}
			switch {
			case a.off && !b.off:
				return -1
			case !a.off && b.off:
				return 1
			}
			return 0
		})

		var track smf.Track
		track.Add(0, smf.MetaTrackSequenceName(t.Name))

		var last int64
		for _, ev := range events {
			track.Add(uint32(ev.tick-last), ev.msg) //nolint:gosec // ticks are non-negative and ordered
			last = ev.tick
		}
		track.Close(0)

		if err := sm.Add(track); err != nil {
			return fmt.Errorf("adding track %d: %w", i, err)
		}
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("writing SMF: %w", err)
	}
	return nil
}

// ReadSMF builds a timeline from a Standard MIDI File. Ticks are rescaled from
// the file's resolution to transport.PPQ. Every file track holding at least
// one note becomes a timeline track; tracks with only meta events are
// skipped. A note left sounding at the end of its track ends at the track's
// last tick.
func ReadSMF(r io.Reader) (*Timeline, SongInfo, error) {
	info := DefaultSongInfo

	sm, err := smf.ReadFrom(r)
	if err != nil {
		return nil, info, fmt.Errorf("reading SMF: %w", err)
	}

	ticks, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok || ticks.Resolution() == 0 {
		return nil, info, fmt.Errorf("%w: %v", ErrUnsupportedTiming, sm.TimeFormat)
	}
	res := int64(ticks.Resolution())
	scale := func(t int64) int64 {
		return (t*transport.PPQ + res/2) / res
	}

	if tc := sm.TempoChanges(); len(tc) > 0 && tc[0].BPM > 0 {
		info.BPM = tc[0].BPM
	}

	tl := New()
	meterSeen := false

	for _, track := range sm.Tracks {
		var (
			name    string
			abs     int64
			notes   []Note
			pending = map[uint16][]Note{}
		)

		for _, ev := range track {
			abs += int64(ev.Delta)

			var num, denom uint8
			if !meterSeen && ev.Message.GetMetaMeter(&num, &denom) && num > 0 && denom > 0 {
				info.Numerator, info.Denominator = int(num), int(denom)
				meterSeen = true
				continue
			}

			var text string
			if name == "" && ev.Message.GetMetaTrackName(&text) {
				name = text
				continue
			}

			var ch, key, vel uint8
			msg := midi.Message(ev.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				id := uint16(ch)<<8 | uint16(key)
				pending[id] = append(pending[id], Note{
					Pitch:    int(key),
					Velocity: int(vel),
					Start:    scale(abs),
				})
			case msg.GetNoteEnd(&ch, &key):
				id := uint16(ch)<<8 | uint16(key)
				open := pending[id]
				if len(open) == 0 {
					continue
				}
				n := open[0]
				pending[id] = open[1:]
				n.Duration = max(1, scale(abs)-n.Start)
				notes = append(notes, n)
			}
		}

		end := scale(abs)
		for _, open := range pending {
			for _, n := range open {
				if end > n.Start {
					n.Duration = end - n.Start
					notes = append(notes, n)
				}
			}
		}

		if len(notes) == 0 {
			continue
		}

		slices.SortStableFunc(notes, func(a, b Note) int {
			return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.Pitch, b.Pitch))
		})
		idx := tl.AddTrack(name)
		tl.tracks[idx].Notes = notes
	}

	return tl, info, nil
}
