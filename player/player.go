// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/dawcore/audio"
	"github.com/ik5/dawcore/track"
	"github.com/ik5/dawcore/transport"
	"github.com/ik5/dawcore/utils"
)

const defaultBufSize = 4096

// Player simulates playback of one AudioTrack. It owns a transport.Clock
// whose duration is the track length and renders the track through the
// audio.Source interface with volume, mute and pan applied. Nothing is sent
// to an audio device.
//
// A Player is not safe for concurrent use.
type Player struct {
	track  *track.AudioTrack
	clock  *transport.Clock
	volume float32
	logger *slog.Logger
}

var _ audio.Source = (*Player)(nil)

type Option func(*Player)

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithTrack plays an existing track instead of a new empty one.
func WithTrack(t *track.AudioTrack) Option {
	return func(p *Player) { p.track = t }
}

func New(opts ...Option) *Player {
	p := &Player{
		clock:  transport.NewClock(),
		volume: 1,
	}
	for _, o := range opts {
		o(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.track == nil {
		p.track = track.New(track.WithLogger(p.logger))
	}
	p.sync()
	return p
}

// Load decodes path into the player's track and rewinds. On a decode error
// the track holds the fallback tone, the player stays usable and the error is
// returned.
func (p *Player) Load(path string) error {
	err := p.track.LoadFromFile(path)
	p.sync()
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	return nil
}

// sync stops the clock and matches it to the track's length and rate.
func (p *Player) sync() {
	p.clock.Stop()
	p.clock.SetDuration(int64(p.track.Frames()))
	p.clock.SetSampleRate(p.track.SampleRate())

	p.logger.Debug("player ready",
		"track", p.track.Name(),
		"frames", p.track.Frames(),
		"sampleRate", p.track.SampleRate(),
	)
}

func (p *Player) Track() *track.AudioTrack { return p.track }

// Play starts playback; at the end of the track it restarts from frame 0.
func (p *Player) Play()   { p.clock.Play() }
func (p *Player) Stop()   { p.clock.Stop() }
func (p *Player) Pause()  { p.clock.Pause() }
func (p *Player) Resume() { p.clock.Resume() }

func (p *Player) State() transport.State { return p.clock.State() }

// OnStateChange registers the state callback of the player's clock.
func (p *Player) OnStateChange(fn func(transport.State)) {
	p.clock.OnStateChange(fn)
}

// Position is the playhead in frames.
func (p *Player) Position() int64 { return p.clock.Playhead() }

// SetPosition moves the playhead; frames past the end of the track are rejected.
func (p *Player) SetPosition(frame int64) bool {
	if frame > p.Duration() {
		return false
	}
	return p.clock.SetPlayhead(frame)
}

// Duration is the track length in frames.
func (p *Player) Duration() int64 { return int64(p.track.Frames()) }

func (p *Player) Volume() float32 { return p.volume }

// SetVolume clamps to [0,1]. The track's own volume is applied on top.
func (p *Player) SetVolume(v float32) { p.volume = utils.Clamp(v, 0, 1) }

// SetLoop enables looping over [start, end) frames; an invalid range is rejected.
func (p *Player) SetLoop(start, end int64) bool {
	if end > p.Duration() || !p.clock.SetLoopRange(start, end) {
		return false
	}
	p.clock.SetLoopEnabled(true)
	return true
}

func (p *Player) ClearLoop() { p.clock.SetLoopEnabled(false) }

func (p *Player) SampleRate() int { return p.track.SampleRate() }
func (p *Player) Channels() int   { return p.track.Channels() }
func (p *Player) BufSize() int    { return defaultBufSize }

// Close stops playback.
func (p *Player) Close() error {
	p.clock.Stop()
	return nil
}

// ReadSamples renders interleaved frames from the playhead into dst and
// advances the playhead by the frames written. It fails with ErrNotPlaying
// unless the player is playing, and returns io.EOF once the end of the track
// is reached without a loop to wrap on.
func (p *Player) ReadSamples(dst []float32) (int, error) {
	ch := p.track.Channels()
	if ch < 1 || len(dst)%ch != 0 {
		return 0, fmt.Errorf("%w: %d samples for %d channels", audio.ErrInvalidDstSize, len(dst), ch)
	}
	if !p.clock.IsPlaying() {
		return 0, ErrNotPlaying
	}

	left, right := p.gains()
	total := p.Duration()
	want := int64(len(dst) / ch)
	written := int64(0)

	for written < want {
		pos := p.clock.Playhead()

		end := total
		if start, loopEnd := p.clock.LoopRange(); p.clock.LoopEnabled() && pos < loopEnd && loopEnd > start {
			end = min(end, loopEnd)
		}
		n := min(want-written, end-pos)
		if n <= 0 {
			break
		}

		for f := range n {
			frame := int(pos + f)
			out := dst[int(written+f)*ch:]
			for c := range ch {
				g := left
				if ch == 2 && c == 1 {
					g = right
				}
				out[c] = p.track.Sample(frame, c) * g
			}
		}

		written += n
		p.clock.Advance(n)
	}

	if written < want && p.clock.Playhead() >= total {
		return int(written) * ch, io.EOF
	}
	return int(written) * ch, nil
}

// gains returns the per-channel gain. Pan only applies to stereo material:
// panning right attenuates the left channel linearly and vice versa.
func (p *Player) gains() (left, right float32) {
	if p.track.Muted() {
		return 0, 0
	}
	g := p.volume * p.track.Volume()
	if p.track.Channels() != 2 {
		return g, g
	}
	pan := p.track.Pan()
	return g * min(1, 1-pan), g * min(1, 1+pan)
}
