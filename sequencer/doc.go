// SPDX-License-Identifier: EPL-2.0

// Package sequencer implements the note timeline of the sequencer view.
//
// A Timeline holds tracks in display order; each track keeps its notes sorted
// by start tick. Ticks use transport.PPQ (480) per quarter note. Notes can be
// selected, deleted and snapped to a quantize grid:
//
//	tl := sequencer.New()
//	lead := tl.AddTrack("lead")
//	tl.AddNote(lead, sequencer.NewNote(60, 250))
//	tl.SetQuantize(sequencer.QuantizeBeat)
//	tl.SelectAll(lead)
//	tl.QuantizeSelected() // note now starts at 480
//
// # Quantize grids
//
//	off      no snapping
//	beat     480 ticks
//	half     240 ticks
//	quarter  120 ticks
//	eighth    60 ticks
//	triplet  160 ticks
//
// # Standard MIDI Files
//
// WriteSMF and ReadSMF convert a timeline to and from a format 1 SMF using
// gitlab.com/gomidi/midi/v2/smf.
package sequencer
