// SPDX-License-Identifier: EPL-2.0

package track

import "errors"

// ErrInvalidParameter is returned when in-memory samples do not describe a valid buffer.
var ErrInvalidParameter = errors.New("invalid sample buffer parameters")
