// SPDX-License-Identifier: EPL-2.0

// Package channel keeps the mixer channels of a session addressable by
// integer id.
//
//	reg := channel.NewRegistry()
//	drums := reg.Create("drums", channel.Audio)
//	reg.LoadAudio(drums.ID(), "drums.wav")
//	if c, ok := reg.ChannelByName("drums"); ok {
//	    c.SetVolume(0.8)
//	}
package channel
