// SPDX-License-Identifier: EPL-2.0

// Package track holds decoded audio clips.
//
// An AudioTrack owns one sample buffer plus its mix parameters (volume, pan,
// mute, solo). Loading never leaves a track unusable: when a file cannot be
// decoded the track is filled with a synthesized tone and the decode error is
// still returned to the caller.
//
//	tr := track.New(track.WithLogger(logger))
//	if err := tr.LoadFromFile("drums.wav"); err != nil {
//	    logger.Warn("using fallback tone", "err", err)
//	}
//	mins, maxs := tr.PeakAmplitudes(512)
//
// Visualizer renders zoomable per-pixel min/max columns from a snapshot of a
// track's buffer.
package track
