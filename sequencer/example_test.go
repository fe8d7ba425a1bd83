// SPDX-License-Identifier: EPL-2.0

package sequencer_test

import (
	"fmt"

	"github.com/ik5/dawcore/sequencer"
)

func ExampleTimeline_QuantizeSelected() {
	tl := sequencer.New()
	lead := tl.AddTrack("lead")

	for _, start := range []int64{500, 100, 300} {
		tl.AddNote(lead, sequencer.NewNote(60, start))
	}

	tl.SetQuantize(sequencer.QuantizeHalf)
	tl.SelectAll(lead)
	tl.QuantizeSelected()

	for _, n := range tl.Notes(lead) {
		fmt.Println(n.Start)
	}
	// Output:
	// 0
	// 240
	// 480
}

func ExampleQuantize_Snap() {
	for _, tick := range []int64{239, 240, 719, 720} {
		fmt.Println(sequencer.QuantizeBeat.Snap(tick))
	}
	// Output:
	// 0
	// 480
	// 480
	// 960
}
