// SPDX-License-Identifier: EPL-2.0

package dawcore

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/dawcore/audio"
	"github.com/ik5/dawcore/utils"
)

// MixToMono16 drains src through a MonoMixer and collects the result as
// 16-bit PCM. It returns the samples and the source sample rate.
//
// bufferSize is the number of mono frames read per call; values below 1 use
// the source's BufSize.
//
// A player source stops with io.EOF at its end, which is not reported as an
// error.
func MixToMono16(src audio.Source, bufferSize int) ([]int16, int, error) {
	if bufferSize < 1 {
		bufferSize = max(1, src.BufSize())
	}

	mono := audio.NewMonoMixer(src)
	pcm16 := make([]int16, 0, bufferSize)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for _, x := range buf[:n] {
			pcm16 = append(pcm16, int16(utils.FloatToPCM(x, 16))) //nolint:gosec // bounded by FloatToPCM
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, src.SampleRate(), fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm16, src.SampleRate(), nil
}
