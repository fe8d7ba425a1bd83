// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"log/slog"
	"slices"

	"github.com/ik5/dawcore/player"
)

// Registry hands out channel ids and resolves them back to channels, so a UI
// can address channels by id instead of holding references.
//
// Ids start at 1 and are never reused, even after a delete. Lookups of unknown
// ids report false and never change the registry.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	channels []*Channel
	byID     map[uint32]*Channel
	nextID   uint32
	logger   *slog.Logger
}

type Option func(*Registry)

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[uint32]*Channel),
		nextID: 1,
	}
	for _, o := range opts {
		o(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Create adds a channel under the next id and returns it.
func (r *Registry) Create(name string, typ Type) *Channel {
	c := newChannel(r.nextID, name, typ)
	r.nextID++

	r.channels = append(r.channels, c)
	r.byID[c.id] = c

	r.logger.Debug("channel created", "id", c.id, "name", name, "type", typ)
	return c
}

func (r *Registry) Channel(id uint32) (*Channel, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// ChannelByName returns the first channel, in creation order, called name.
func (r *Registry) ChannelByName(name string) (*Channel, bool) {
	for _, c := range r.channels {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Channels returns the channels in creation order.
func (r *Registry) Channels() []*Channel {
	return slices.Clone(r.channels)
}

func (r *Registry) Count() int { return len(r.channels) }

// NextID is the id the next Create will assign.
func (r *Registry) NextID() uint32 { return r.nextID }

func (r *Registry) Rename(id uint32, name string) bool {
	c, ok := r.byID[id]
	if !ok {
		return false
	}
	c.name = name
	return true
}

func (r *Registry) Delete(id uint32) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	r.channels = slices.DeleteFunc(r.channels, func(c *Channel) bool { return c.id == id })

	r.logger.Debug("channel deleted", "id", id)
	return true
}

// DeleteAll removes every channel. The id counter keeps counting.
func (r *Registry) DeleteAll() {
	r.channels = nil
	clear(r.byID)
}

// AssignPlayer attaches p to channel id. It fails without side effects when
// the channel does not exist or p is nil.
func (r *Registry) AssignPlayer(id uint32, p *player.Player) bool {
	c, ok := r.byID[id]
	if !ok || p == nil {
		return false
	}
	return c.AssignPlayer(p)
}

// LoadAudio loads path into a new player and attaches it to channel id. A
// file that fails to decode still yields a player holding the fallback tone,
// so only an unknown id returns false; nothing is loaded in that case.
func (r *Registry) LoadAudio(id uint32, path string) bool {
	c, ok := r.byID[id]
	if !ok {
		return false
	}

	p := player.New(player.WithLogger(r.logger))
	if err := p.Load(path); err != nil {
		r.logger.Warn("channel audio did not decode", "id", id, "path", path, "err", err)
	}
	return c.AssignPlayer(p)
}
