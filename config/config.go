// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ik5/dawcore/sequencer"
	"github.com/ik5/dawcore/track"
)

var ErrInvalid = errors.New("invalid configuration")

// Audio holds engine-wide audio settings.
type Audio struct {
	SampleRate     int `yaml:"sample_rate"`
	WaveformPoints int `yaml:"waveform_points"`
}

// Transport holds the initial transport and sequencer settings.
type Transport struct {
	Tempo       float64            `yaml:"tempo"`
	Numerator   int                `yaml:"numerator"`
	Denominator int                `yaml:"denominator"`
	Quantize    sequencer.Quantize `yaml:"quantize"`
}

// Tone is the fallback tone a track loads when a file fails to decode.
type Tone struct {
	SampleRate int     `yaml:"sample_rate"`
	Channels   int     `yaml:"channels"`
	Seconds    float64 `yaml:"seconds"`
	Frequency  float64 `yaml:"frequency"`
	Amplitude  float32 `yaml:"amplitude"`
	Fade       float64 `yaml:"fade"`
}

type Log struct {
	Level slog.Level `yaml:"level"`
}

// Config is the main configuration structure.
type Config struct {
	Audio        Audio     `yaml:"audio"`
	Transport    Transport `yaml:"transport"`
	FallbackTone Tone      `yaml:"fallback_tone"`
	Log          Log       `yaml:"log"`
}

// Default returns a config with the engine defaults.
func Default() *Config {
	tone := track.DefaultTone
	return &Config{
		Audio: Audio{
			SampleRate:     44100,
			WaveformPoints: 512,
		},
		Transport: Transport{
			Tempo:       120,
			Numerator:   4,
			Denominator: 4,
			Quantize:    sequencer.QuantizeOff,
		},
		FallbackTone: Tone{
			SampleRate: tone.SampleRate,
			Channels:   tone.Channels,
			Seconds:    tone.Seconds,
			Frequency:  tone.Frequency,
			Amplitude:  tone.Amplitude,
			Fade:       tone.Fade,
		},
		Log: Log{Level: slog.LevelInfo},
	}
}

// Load reads path on top of the defaults. A missing file yields the
// defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine would refuse.
func (c *Config) Validate() error {
	switch {
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio.sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	case c.Audio.WaveformPoints <= 0:
		return fmt.Errorf("%w: audio.waveform_points %d", ErrInvalid, c.Audio.WaveformPoints)
	case !(c.Transport.Tempo > 0):
		return fmt.Errorf("%w: transport.tempo %v", ErrInvalid, c.Transport.Tempo)
	case c.Transport.Numerator <= 0 || c.Transport.Denominator <= 0:
		return fmt.Errorf("%w: time signature %d/%d", ErrInvalid, c.Transport.Numerator, c.Transport.Denominator)
	case c.Transport.Quantize.Grid() == 0 && c.Transport.Quantize != sequencer.QuantizeOff:
		return fmt.Errorf("%w: transport.quantize %v", ErrInvalid, c.Transport.Quantize)
	case c.FallbackTone.SampleRate <= 0 || c.FallbackTone.Channels < 1 || !(c.FallbackTone.Seconds > 0):
		return fmt.Errorf("%w: fallback_tone needs a positive rate, channel count and length", ErrInvalid)
	}
	return nil
}

// Tone converts the fallback tone settings for track.WithFallbackTone.
func (c *Config) Tone() track.Tone {
	t := c.FallbackTone
	return track.Tone{
		SampleRate: t.SampleRate,
		Channels:   t.Channels,
		Seconds:    t.Seconds,
		Frequency:  t.Frequency,
		Amplitude:  t.Amplitude,
		Fade:       t.Fade,
	}
}

// Save writes the config to path as YAML, creating its directory.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
