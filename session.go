// SPDX-License-Identifier: EPL-2.0

package dawcore

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/dawcore/channel"
	"github.com/ik5/dawcore/config"
	"github.com/ik5/dawcore/player"
	"github.com/ik5/dawcore/sequencer"
	"github.com/ik5/dawcore/track"
	"github.com/ik5/dawcore/transport"
)

// Session ties one transport clock, one sequencer timeline and one channel
// registry together, configured from a config.Config.
//
// A Session is not safe for concurrent use; the UI layer owns it.
type Session struct {
	Clock    *transport.Clock
	Timeline *sequencer.Timeline
	Channels *channel.Registry

	cfg    *config.Config
	logger *slog.Logger
}

// NewSession builds a session. A nil cfg uses config.Default and a nil logger
// uses slog.Default.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	clock := transport.NewClock()
	clock.SetSampleRate(cfg.Audio.SampleRate)
	clock.SetTempo(cfg.Transport.Tempo)
	clock.SetTimeSignature(cfg.Transport.Numerator, cfg.Transport.Denominator)

	tl := sequencer.New()
	tl.SetQuantize(cfg.Transport.Quantize)

	s := &Session{
		Clock:    clock,
		Timeline: tl,
		Channels: channel.NewRegistry(channel.WithLogger(logger)),
		cfg:      cfg,
		logger:   logger,
	}

	clock.OnStateChange(func(st transport.State) {
		logger.Debug("transport state changed", "state", st, "playhead", clock.Playhead())
	})

	logger.Info("session created",
		"sampleRate", cfg.Audio.SampleRate,
		"tempo", cfg.Transport.Tempo,
		"quantize", cfg.Transport.Quantize,
	)
	return s, nil
}

func (s *Session) Config() *config.Config { return s.cfg }

// NewTrack returns an empty track using the session's fallback tone and logger.
func (s *Session) NewTrack() *track.AudioTrack {
	return track.New(
		track.WithLogger(s.logger),
		track.WithFallbackTone(s.cfg.Tone()),
	)
}

// AddAudioChannel creates an audio channel called name and loads path into a
// player attached to it. When the file fails to decode the channel is still
// created, holding the fallback tone, and the decode error is returned with it.
func (s *Session) AddAudioChannel(name, path string) (*channel.Channel, error) {
	c := s.Channels.Create(name, channel.Audio)

	p := player.New(player.WithTrack(s.NewTrack()), player.WithLogger(s.logger))
	err := p.Load(path)
	c.AssignPlayer(p)

	if err != nil {
		return c, fmt.Errorf("channel %d: %w", c.ID(), err)
	}
	return c, nil
}

// Envelope returns the min/max waveform envelope of the track on channel id.
// points below 1 use the configured waveform resolution. It reports false
// when the channel does not exist or has no player.
func (s *Session) Envelope(id uint32, points int) (mins, maxs []float32, ok bool) {
	c, found := s.Channels.Channel(id)
	if !found || !c.HasPlayer() {
		return nil, nil, false
	}
	if points < 1 {
		points = s.cfg.Audio.WaveformPoints
	}
	mins, maxs = c.Player().Track().PeakAmplitudes(points)
	return mins, maxs, true
}

// SyncTimeline copies the clock's current tick into the timeline playhead.
func (s *Session) SyncTimeline() {
	s.Timeline.SyncPlayhead(s.Clock)
}

// ExportMIDI writes the timeline as a Standard MIDI File with the clock's
// tempo and meter.
func (s *Session) ExportMIDI(w io.Writer) error {
	return sequencer.WriteSMF(w, s.Timeline, sequencer.SongInfoFrom(s.Clock))
}

// ImportMIDI replaces the timeline with the contents of a Standard MIDI File
// and applies its tempo and meter to the clock. The quantize setting is kept.
func (s *Session) ImportMIDI(r io.Reader) error {
	tl, info, err := sequencer.ReadSMF(r)
	if err != nil {
		return fmt.Errorf("import midi: %w", err)
	}

	tl.SetQuantize(s.Timeline.Quantize())
	s.Timeline = tl
	info.Apply(s.Clock)

	s.logger.Info("midi imported", "tracks", tl.TrackCount(), "bpm", info.BPM)
	return nil
}
