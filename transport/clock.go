// SPDX-License-Identifier: EPL-2.0

package transport

// PPQ is the tick resolution: pulses per quarter note.
const PPQ = 480

// State of the transport.
type State int

const (
	Stopped State = iota
	Playing
	Paused
	Recording
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Recording:
		return "recording"
	default:
		return "unknown"
	}
}

// Clock tracks playback state, tempo, meter, loop region and playhead,
// independently of any audio device. Positions are in sample frames.
//
// Setters validate at the boundary: invalid input leaves the previous value in
// place and the setter returns false.
//
// A Clock is not safe for concurrent use.
type Clock struct {
	state      State
	playhead   int64
	duration   int64
	tempo      float64
	numerator  int
	denom      int
	loop       bool
	loopStart  int64
	loopEnd    int64
	sampleRate int

	onState func(State)
}

// NewClock returns a stopped clock at 120 BPM, 4/4, 44.1 kHz.
func NewClock() *Clock {
	return &Clock{
		state:      Stopped,
		tempo:      120,
		numerator:  4,
		denom:      4,
		sampleRate: 44100,
	}
}

// OnStateChange registers the single state callback, replacing any previous
// one. It is called synchronously, on the caller's goroutine, after every
// transition that changes the state. Pass nil to clear it.
func (c *Clock) OnStateChange(fn func(State)) {
	c.onState = fn
}

func (c *Clock) setState(s State) {
	if c.state == s {
		return
	}
	c.state = s
	if c.onState != nil {
		c.onState(s)
	}
}

// Play starts or resumes playback from the playhead. When a duration is known
// and the playhead is at or past it, playback restarts from 0.
func (c *Clock) Play() {
	if c.duration > 0 && c.playhead >= c.duration {
		c.playhead = 0
	}
	c.setState(Playing)
}

// Stop halts the transport and rewinds the playhead to 0.
func (c *Clock) Stop() {
	c.playhead = 0
	c.setState(Stopped)
}

// Pause only acts while playing.
func (c *Clock) Pause() {
	if c.state == Playing {
		c.setState(Paused)
	}
}

// Resume only acts while paused.
func (c *Clock) Resume() {
	if c.state == Paused {
		c.setState(Playing)
	}
}

// Record enters the recording state from any state.
func (c *Clock) Record() {
	c.setState(Recording)
}

func (c *Clock) State() State      { return c.state }
func (c *Clock) IsPlaying() bool   { return c.state == Playing }
func (c *Clock) IsPaused() bool    { return c.state == Paused }
func (c *Clock) IsRecording() bool { return c.state == Recording }
func (c *Clock) IsStopped() bool   { return c.state == Stopped }

func (c *Clock) Playhead() int64 { return c.playhead }

// SetPlayhead moves the playhead. Negative positions are rejected.
func (c *Clock) SetPlayhead(sample int64) bool {
	if sample < 0 {
		return false
	}
	c.playhead = sample
	return true
}

func (c *Clock) Duration() int64 { return c.duration }

// SetDuration sets the length, in frames, of the material being played.
// Zero means unknown and disables restart-on-end.
func (c *Clock) SetDuration(frames int64) bool {
	if frames < 0 {
		return false
	}
	c.duration = frames
	return true
}

func (c *Clock) Tempo() float64 { return c.tempo }

// SetTempo rejects non-positive BPM.
func (c *Clock) SetTempo(bpm float64) bool {
	if !(bpm > 0) {
		return false
	}
	c.tempo = bpm
	return true
}

func (c *Clock) TimeSignature() (numerator, denominator int) {
	return c.numerator, c.denom
}

// SetTimeSignature rejects a non-positive numerator or denominator.
func (c *Clock) SetTimeSignature(numerator, denominator int) bool {
	if numerator <= 0 || denominator <= 0 {
		return false
	}
	c.numerator = numerator
	c.denom = denominator
	return true
}

func (c *Clock) LoopEnabled() bool { return c.loop }

func (c *Clock) SetLoopEnabled(enabled bool) { c.loop = enabled }

// LoopRange returns the half-open loop region [start, end).
func (c *Clock) LoopRange() (start, end int64) {
	return c.loopStart, c.loopEnd
}

// SetLoopRange rejects start >= end and negative starts.
func (c *Clock) SetLoopRange(start, end int64) bool {
	if start < 0 || start >= end {
		return false
	}
	c.loopStart = start
	c.loopEnd = end
	return true
}

func (c *Clock) SampleRate() int { return c.sampleRate }

// SetSampleRate rejects zero and negative rates.
func (c *Clock) SetSampleRate(rate int) bool {
	if rate <= 0 {
		return false
	}
	c.sampleRate = rate
	return true
}
