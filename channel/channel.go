// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"github.com/ik5/dawcore/player"
	"github.com/ik5/dawcore/utils"
)

// Type of a channel.
type Type int

const (
	Audio Type = iota
	MIDI
	Bus
)

func (t Type) String() string {
	switch t {
	case Audio:
		return "audio"
	case MIDI:
		return "midi"
	case Bus:
		return "bus"
	default:
		return "unknown"
	}
}

// Channel is a named mixer slot that can hold one player.
type Channel struct {
	id     uint32
	name   string
	typ    Type
	player *player.Player

	volume float32
	pan    float32
	muted  bool
	soloed bool
}

func newChannel(id uint32, name string, typ Type) *Channel {
	return &Channel{id: id, name: name, typ: typ, volume: 1}
}

func (c *Channel) ID() uint32          { return c.id }
func (c *Channel) Name() string        { return c.name }
func (c *Channel) SetName(name string) { c.name = name }
func (c *Channel) Type() Type          { return c.typ }

// AssignPlayer attaches p, replacing any previous player. A nil player is
// rejected.
func (c *Channel) AssignPlayer(p *player.Player) bool {
	if p == nil {
		return false
	}
	c.player = p
	return true
}

func (c *Channel) Player() *player.Player { return c.player }
func (c *Channel) HasPlayer() bool        { return c.player != nil }
func (c *Channel) RemovePlayer()          { c.player = nil }

func (c *Channel) Volume() float32 { return c.volume }

// SetVolume clamps to [0,1].
func (c *Channel) SetVolume(v float32) { c.volume = utils.Clamp(v, 0, 1) }

func (c *Channel) Pan() float32 { return c.pan }

// SetPan clamps to [-1,1], -1 being hard left.
func (c *Channel) SetPan(p float32) { c.pan = utils.Clamp(p, -1, 1) }

func (c *Channel) Muted() bool      { return c.muted }
func (c *Channel) SetMuted(m bool)  { c.muted = m }
func (c *Channel) Soloed() bool     { return c.soloed }
func (c *Channel) SetSoloed(s bool) { c.soloed = s }
