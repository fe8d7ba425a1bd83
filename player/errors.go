// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var ErrNotPlaying = errors.New("player is not playing")
