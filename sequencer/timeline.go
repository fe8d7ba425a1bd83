// SPDX-License-Identifier: EPL-2.0

package sequencer

import (
	"cmp"
	"slices"

	"github.com/ik5/dawcore/transport"
)

const (
	MaxPitch    = 127
	MaxVelocity = 127
	MaxVolume   = 127

	DefaultVelocity = 100
	DefaultDuration = transport.PPQ
	DefaultVolume   = 100
	DefaultColor    = 0xFF5588FF
)

// Note is a timed MIDI note. Start and Duration are in ticks at transport.PPQ.
type Note struct {
	Pitch    int
	Velocity int
	Start    int64
	Duration int64
	Selected bool
}

// NewNote returns a quarter note at the default velocity.
func NewNote(pitch int, start int64) Note {
	return Note{
		Pitch:    pitch,
		Velocity: DefaultVelocity,
		Start:    start,
		Duration: DefaultDuration,
	}
}

// Valid reports whether the note can be stored in a track.
func (n Note) Valid() bool {
	return n.Pitch >= 0 && n.Pitch <= MaxPitch &&
		n.Velocity >= 0 && n.Velocity <= MaxVelocity &&
		n.Start >= 0 && n.Duration > 0
}

// End is the tick the note stops sounding at.
func (n Note) End() int64 { return n.Start + n.Duration }

// Track is a named row of notes, kept sorted by start tick.
type Track struct {
	Name   string
	Volume int
	Muted  bool
	Soloed bool
	Color  uint32
	Notes  []Note
}

func (t Track) clone() Track {
	t.Notes = slices.Clone(t.Notes)
	return t
}

// Timeline owns the sequencer tracks and their notes, the quantize setting,
// the loop region and the playhead, all in ticks.
//
// Index-based operations ignore out of range indexes and report it through
// their bool result. Read access goes through copies, so callers never hold
// references into the note storage.
//
// A Timeline is not safe for concurrent use.
type Timeline struct {
	tracks []*Track

	quantize  Quantize
	playhead  int64
	loop      bool
	loopStart int64
	loopEnd   int64
}

// New returns an empty timeline with quantize off and a one bar loop region.
func New() *Timeline {
	return &Timeline{
		loopEnd: 4 * transport.PPQ,
	}
}

// AddTrack appends a track and returns its index.
func (tl *Timeline) AddTrack(name string) int {
	tl.tracks = append(tl.tracks, &Track{
		Name:   name,
		Volume: DefaultVolume,
		Color:  DefaultColor,
	})
	return len(tl.tracks) - 1
}

func (tl *Timeline) RemoveTrack(index int) bool {
	if !tl.validTrack(index) {
		return false
	}
	tl.tracks = slices.Delete(tl.tracks, index, index+1)
	return true
}

func (tl *Timeline) ClearTracks() {
	tl.tracks = nil
}

func (tl *Timeline) TrackCount() int { return len(tl.tracks) }

// Tracks returns a deep copy of every track in display order.
func (tl *Timeline) Tracks() []Track {
	out := make([]Track, len(tl.tracks))
	for i, t := range tl.tracks {
		out[i] = t.clone()
	}
	return out
}

// Track returns a copy of the track at index.
func (tl *Timeline) Track(index int) (Track, bool) {
	if !tl.validTrack(index) {
		return Track{}, false
	}
	return tl.tracks[index].clone(), true
}

func (tl *Timeline) RenameTrack(index int, name string) bool {
	if !tl.validTrack(index) {
		return false
	}
	tl.tracks[index].Name = name
	return true
}

func (tl *Timeline) SetTrackMute(index int, muted bool) bool {
	if !tl.validTrack(index) {
		return false
	}
	tl.tracks[index].Muted = muted
	return true
}

func (tl *Timeline) SetTrackSolo(index int, soloed bool) bool {
	if !tl.validTrack(index) {
		return false
	}
	tl.tracks[index].Soloed = soloed
	return true
}

// SetTrackVolume accepts 0..127.
func (tl *Timeline) SetTrackVolume(index, volume int) bool {
	if !tl.validTrack(index) || volume < 0 || volume > MaxVolume {
		return false
	}
	tl.tracks[index].Volume = volume
	return true
}

func (tl *Timeline) SetTrackColor(index int, color uint32) bool {
	if !tl.validTrack(index) {
		return false
	}
	tl.tracks[index].Color = color
	return true
}

// AddNote inserts note into the track, keeping the notes ordered by start
// tick. Notes with equal starts keep their insertion order.
func (tl *Timeline) AddNote(trackIndex int, note Note) bool {
	if !tl.validTrack(trackIndex) || !note.Valid() {
		return false
	}
	t := tl.tracks[trackIndex]
	t.Notes = append(t.Notes, note)
	sortNotes(t.Notes)
	return true
}

func (tl *Timeline) RemoveNote(trackIndex, noteIndex int) bool {
	if !tl.validNote(trackIndex, noteIndex) {
		return false
	}
	t := tl.tracks[trackIndex]
	t.Notes = slices.Delete(t.Notes, noteIndex, noteIndex+1)
	return true
}

func (tl *Timeline) ClearNotes(trackIndex int) bool {
	if !tl.validTrack(trackIndex) {
		return false
	}
	tl.tracks[trackIndex].Notes = nil
	return true
}

// Notes returns a copy of the track's notes, nil for an unknown track.
func (tl *Timeline) Notes(trackIndex int) []Note {
	if !tl.validTrack(trackIndex) {
		return nil
	}
	return slices.Clone(tl.tracks[trackIndex].Notes)
}

// SelectNote sets the selection flag of a single note.
func (tl *Timeline) SelectNote(trackIndex, noteIndex int, selected bool) bool {
	if !tl.validNote(trackIndex, noteIndex) {
		return false
	}
	tl.tracks[trackIndex].Notes[noteIndex].Selected = selected
	return true
}

// SelectAll selects every note of one track.
func (tl *Timeline) SelectAll(trackIndex int) bool {
	if !tl.validTrack(trackIndex) {
		return false
	}
	notes := tl.tracks[trackIndex].Notes
	for i := range notes {
		notes[i].Selected = true
	}
	return true
}

// DeselectAll clears the selection on every track.
func (tl *Timeline) DeselectAll() {
	for _, t := range tl.tracks {
		for i := range t.Notes {
			t.Notes[i].Selected = false
		}
	}
}

// DeleteSelected removes every selected note of every track and returns how
// many were removed.
func (tl *Timeline) DeleteSelected() int {
	removed := 0
	for _, t := range tl.tracks {
		before := len(t.Notes)
		t.Notes = slices.DeleteFunc(t.Notes, func(n Note) bool { return n.Selected })
		removed += before - len(t.Notes)
	}
	return removed
}

// QuantizeSelected snaps the start of every selected note to the current grid
// and returns how many notes were visited. Duration and pitch are untouched.
func (tl *Timeline) QuantizeSelected() int {
	count := 0
	for _, t := range tl.tracks {
		moved := false
		for i := range t.Notes {
			n := &t.Notes[i]
			if !n.Selected {
				continue
			}
			count++
			if q := tl.QuantizeNote(n.Start); q != n.Start {
				n.Start = q
				moved = true
			}
		}
		if moved {
			sortNotes(t.Notes)
		}
	}
	return count
}

func (tl *Timeline) Quantize() Quantize { return tl.quantize }

func (tl *Timeline) SetQuantize(q Quantize) { tl.quantize = q }

// QuantizeNote snaps tick to the current grid; QuantizeOff returns it as is.
func (tl *Timeline) QuantizeNote(tick int64) int64 {
	return tl.quantize.Snap(tick)
}

func (tl *Timeline) Playhead() int64 { return tl.playhead }

// SetPlayhead rejects negative ticks.
func (tl *Timeline) SetPlayhead(tick int64) bool {
	if tick < 0 {
		return false
	}
	tl.playhead = tick
	return true
}

// SyncPlayhead copies the clock's current tick into the timeline.
func (tl *Timeline) SyncPlayhead(c *transport.Clock) {
	tl.playhead = c.CurrentTick()
}

func (tl *Timeline) LoopEnabled() bool { return tl.loop }

func (tl *Timeline) SetLoopEnabled(enabled bool) { tl.loop = enabled }

// LoopRange returns the half-open loop region in ticks.
func (tl *Timeline) LoopRange() (start, end int64) {
	return tl.loopStart, tl.loopEnd
}

// SetLoopRange rejects start >= end and negative starts.
func (tl *Timeline) SetLoopRange(start, end int64) bool {
	if start < 0 || start >= end {
		return false
	}
	tl.loopStart = start
	tl.loopEnd = end
	return true
}

// Length is the end tick of the last sounding note over all tracks.
func (tl *Timeline) Length() int64 {
	var end int64
	for _, t := range tl.tracks {
		for _, n := range t.Notes {
			end = max(end, n.End())
		}
	}
	return end
}

func (tl *Timeline) validTrack(i int) bool {
	return i >= 0 && i < len(tl.tracks)
}

func (tl *Timeline) validNote(trackIndex, noteIndex int) bool {
	return tl.validTrack(trackIndex) && noteIndex >= 0 && noteIndex < len(tl.tracks[trackIndex].Notes)
}

func sortNotes(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return cmp.Compare(a.Start, b.Start)
	})
}
