// SPDX-License-Identifier: EPL-2.0

package track

import "github.com/ik5/dawcore/audio"

// Point is one column of a rendered waveform.
type Point struct {
	X   float32
	Min float32
	Max float32
}

// Visualizer turns a snapshot of a track's samples into per-pixel min/max
// columns. Unlike PeakAmplitudes it works on the raw interleaved samples and
// supports zooming.
type Visualizer struct {
	buf    *audio.Buffer
	zoom   float32
	stereo bool
}

func NewVisualizer() *Visualizer {
	return &Visualizer{zoom: 1, stereo: true}
}

// Visualizer returns a visualizer over a copy of the track's current buffer.
func (t *AudioTrack) Visualizer() *Visualizer {
	v := NewVisualizer()
	v.SetBuffer(t.buf)
	return v
}

// SetBuffer takes a private copy of buf.
func (v *Visualizer) SetBuffer(buf *audio.Buffer) {
	v.buf = buf.Clone()
}

func (v *Visualizer) Clear() {
	v.buf = nil
}

// Points returns pixelWidth columns. Each column spans
// max(1, samples/(pixelWidth*zoom)) interleaved samples; columns past the end
// of the data are flat at 0.
func (v *Visualizer) Points(pixelWidth int) []Point {
	if v.buf.Len() == 0 || pixelWidth <= 0 {
		return nil
	}

	samples := v.buf.Samples
	per := max(1, int(float32(len(samples))/(float32(pixelWidth)*v.zoom)))

	points := make([]Point, pixelWidth)
	for x := range pixelWidth {
		p := Point{X: float32(x)}

		start := x * per
		end := min(start+per, len(samples))
		for i := start; i < end; i++ {
			p.Min = min(p.Min, samples[i])
			p.Max = max(p.Max, samples[i])
		}
		points[x] = p
	}
	return points
}

func (v *Visualizer) Peak() float32 { return v.buf.Peak() }
func (v *Visualizer) RMS() float32  { return v.buf.RMS() }

func (v *Visualizer) Zoom() float32 { return v.zoom }

// SetZoom rejects non-positive factors.
func (v *Visualizer) SetZoom(factor float32) bool {
	if !(factor > 0) {
		return false
	}
	v.zoom = factor
	return true
}

func (v *Visualizer) Stereo() bool     { return v.stereo }
func (v *Visualizer) SetStereo(s bool) { v.stereo = s }
