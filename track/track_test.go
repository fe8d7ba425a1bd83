// SPDX-License-Identifier: EPL-2.0

package track

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/dawcore/formats/wav"
	"github.com/ik5/dawcore/internal/audiotest"
)

func quietTrack() *AudioTrack {
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	tr := quietTrack()

	if !tr.IsEmpty() || tr.Frames() != 0 {
		t.Errorf("new track is not empty: %d frames", tr.Frames())
	}
	if tr.Volume() != 1 || tr.Pan() != 0 || tr.Muted() || tr.Soloed() {
		t.Errorf("mix defaults = vol %v pan %v muted %v solo %v", tr.Volume(), tr.Pan(), tr.Muted(), tr.Soloed())
	}
	if tr.PeakAmplitude() != 0 || tr.RMSAmplitude() != 0 {
		t.Errorf("empty stats = %v / %v, want 0 / 0", tr.PeakAmplitude(), tr.RMSAmplitude())
	}
	if tr.DurationSeconds() != 0 {
		t.Errorf("DurationSeconds() = %v, want 0", tr.DurationSeconds())
	}
	if mins, maxs := tr.PeakAmplitudes(10); mins != nil || maxs != nil {
		t.Error("PeakAmplitudes() on an empty track should return nil")
	}
}

func TestLoadFromFile_Decodes(t *testing.T) {
	t.Parallel()

	path := audiotest.WAV{
		Channels:      2,
		SampleRate:    48000,
		BitsPerSample: 16,
		Data:          audiotest.PCM16(16384, -16384, 0, 8192),
	}.WriteFile(t, "vocals.take3.wav")

	tr := quietTrack()
	if err := tr.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if tr.Synthesized() {
		t.Error("Synthesized() = true after a successful decode")
	}
	if tr.Name() != "vocals.take3" {
		t.Errorf("Name() = %q, want %q", tr.Name(), "vocals.take3")
	}
	if tr.Path() != path {
		t.Errorf("Path() = %q, want %q", tr.Path(), path)
	}
	if tr.SampleRate() != 48000 || tr.Channels() != 2 || tr.BitDepth() != 16 || tr.Frames() != 2 {
		t.Errorf("format = %d Hz %d ch %d bits %d frames", tr.SampleRate(), tr.Channels(), tr.BitDepth(), tr.Frames())
	}
	if tr.Sample(0, 1) != -0.5 {
		t.Errorf("Sample(0, 1) = %v, want -0.5", tr.Sample(0, 1))
	}
}

func TestLoadFromFile_FallbackTone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(bad, []byte("RIFX\x24\x00\x00\x00WAVEfmt "), 0o644); err != nil {
		t.Fatal(err)
	}
	notWav := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notWav, []byte("just some text, nothing audible"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := map[string]struct {
		path string
		want error
	}{
		"malformed header":    {bad, wav.ErrNotWavFile},
		"text under odd name": {notWav, wav.ErrNotWavFile},
		"missing file":        {filepath.Join(dir, "nope.wav"), os.ErrNotExist},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tr := quietTrack()
			err := tr.LoadFromFile(tc.path)
			if !errors.Is(err, tc.want) {
				t.Fatalf("LoadFromFile() error = %v, want %v", err, tc.want)
			}

			if !tr.Synthesized() {
				t.Error("Synthesized() = false after a failed decode")
			}
			if tr.SampleRate() != 44100 || tr.Channels() != 2 {
				t.Errorf("fallback format = %d Hz %d ch, want 44100 Hz 2 ch", tr.SampleRate(), tr.Channels())
			}
			if math.Abs(tr.DurationSeconds()-5.0) > 1.0/44100 {
				t.Errorf("fallback duration = %v s, want 5", tr.DurationSeconds())
			}
		})
	}
}

func TestLoadFromFile_AnyExtension(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV{Channels: 1, SampleRate: 48000, BitsPerSample: 16, Data: audiotest.PCM16(100, -100)}.Bytes()
	dir := t.TempDir()

	for _, name := range []string{"take.wav", "take", "take.bwf", "take.tmp", "TAKE.WAV"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}

		tr := quietTrack()
		if err := tr.LoadFromFile(path); err != nil {
			t.Errorf("%s: LoadFromFile() error = %v", name, err)
			continue
		}
		if tr.Synthesized() || tr.SampleRate() != 48000 || tr.Frames() != 2 {
			t.Errorf("%s: synthesized=%v rate=%d frames=%d, want decoded 48000 Hz 2 frames",
				name, tr.Synthesized(), tr.SampleRate(), tr.Frames())
		}
	}
}

func TestFallbackTone_Shape(t *testing.T) {
	t.Parallel()

	buf := DefaultTone.Render()

	if buf.Frames() != 44100*5 {
		t.Fatalf("Frames() = %d, want %d", buf.Frames(), 44100*5)
	}
	if buf.At(0, 0) != 0 {
		t.Errorf("first sample = %v, want 0 (fade in)", buf.At(0, 0))
	}

	for i := 0; i < buf.Frames(); i += 997 {
		if buf.At(i, 0) != buf.At(i, 1) {
			t.Fatalf("frame %d: channels differ", i)
		}
	}

	peak := buf.Peak()
	if peak > 0.5 || peak < 0.49 {
		t.Errorf("Peak() = %v, want about 0.5", peak)
	}

	// fade regions are quieter than the body
	var head, body float32
	for i := range 441 {
		head = max(head, abs(buf.At(i, 0)))
		body = max(body, abs(buf.At(44100+i, 0)))
	}
	if head >= body {
		t.Errorf("fade-in peak %v should be below body peak %v", head, body)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV{Channels: 1, SampleRate: 8000, BitsPerSample: 16, Data: audiotest.PCM16(1, 2, 3)}.Bytes()

	tr := quietTrack()
	if err := tr.LoadFromReader(bytes.NewReader(data), "memo"); err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if tr.Name() != "memo" || tr.Frames() != 3 {
		t.Errorf("Name() = %q, Frames() = %d", tr.Name(), tr.Frames())
	}

	if err := tr.LoadFromReader(bytes.NewReader(data[:20]), "cut"); !errors.Is(err, wav.ErrFormat) {
		t.Errorf("truncated LoadFromReader() error = %v, want ErrFormat", err)
	}
	if !tr.Synthesized() {
		t.Error("truncated stream should fall back to the tone")
	}
}

func TestLoadFromMemory_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	tr := quietTrack()

	if err := tr.LoadFromMemory(samples, 3, 22050, 2); err != nil {
		t.Fatalf("LoadFromMemory() error = %v", err)
	}

	if tr.BitDepth() != 32 {
		t.Errorf("BitDepth() = %d, want 32", tr.BitDepth())
	}
	for i := range 3 {
		for c := range 2 {
			if got := tr.Sample(i, c); got != samples[i*2+c] {
				t.Errorf("Sample(%d, %d) = %v, want %v", i, c, got, samples[i*2+c])
			}
		}
	}

	samples[0] = 0.9
	if tr.Sample(0, 0) != 0.1 {
		t.Error("track aliases the caller's slice")
	}
}

func TestLoadFromMemory_RejectsAndKeepsBuffer(t *testing.T) {
	t.Parallel()

	tr := quietTrack()
	if err := tr.LoadFromMemory([]float32{0.5, 0.5}, 2, 8000, 1); err != nil {
		t.Fatal(err)
	}

	bad := []struct {
		name                   string
		samples                []float32
		frames, rate, channels int
	}{
		{"zero rate", []float32{1}, 1, 0, 1},
		{"zero channels", []float32{1}, 1, 8000, 0},
		{"too few samples", []float32{1}, 2, 8000, 1},
		{"negative frames", []float32{1}, -1, 8000, 1},
	}

	for _, b := range bad {
		if err := tr.LoadFromMemory(b.samples, b.frames, b.rate, b.channels); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: error = %v, want ErrInvalidParameter", b.name, err)
		}
	}

	if tr.Frames() != 2 || tr.SampleRate() != 8000 || tr.Sample(1, 0) != 0.5 {
		t.Error("rejected LoadFromMemory() modified the track")
	}
}

func TestSample_OutOfRange(t *testing.T) {
	t.Parallel()

	tr := quietTrack()
	tr.LoadFromMemory([]float32{0.5, -0.5}, 1, 8000, 2)

	probes := [][2]int{{1, 0}, {0, 2}, {-1, 0}, {0, -1}, {1 << 30, 1}}
	for _, p := range probes {
		if got := tr.Sample(p[0], p[1]); got != 0 {
			t.Errorf("Sample(%d, %d) = %v, want 0", p[0], p[1], got)
		}
	}
}

func TestPeakAndRMS(t *testing.T) {
	t.Parallel()

	tr := quietTrack()
	tr.LoadFromMemory([]float32{0.5, -0.8, 0.1, 0.2}, 2, 8000, 2)

	if got := tr.PeakAmplitude(); got != 0.8 {
		t.Errorf("PeakAmplitude() = %v, want 0.8", got)
	}

	want := math.Sqrt((0.25 + 0.64 + 0.01 + 0.04) / 4)
	if got := tr.RMSAmplitude(); math.Abs(float64(got)-want) > 1e-5 {
		t.Errorf("RMSAmplitude() = %v, want %v", got, want)
	}
}

func TestPeakAmplitudes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		samples  []float32
		channels int
		points   int
		wantMins []float32
		wantMaxs []float32
	}{
		{
			name:     "mono two spans",
			samples:  []float32{0.5, -0.25, 0.75, 0.25},
			channels: 1,
			points:   2,
			wantMins: []float32{-0.25, 0},
			wantMaxs: []float32{0.5, 0.75},
		},
		{
			name:     "stereo averages before min/max",
			samples:  []float32{1, -1, 0.5, 0.25, -0.5, -0.25, 0, 0},
			channels: 2,
			points:   2,
			wantMins: []float32{0, -0.375},
			wantMaxs: []float32{0.375, 0},
		},
		{
			name:     "more points than frames",
			samples:  []float32{0.5, -0.5},
			channels: 1,
			points:   4,
			wantMins: []float32{0, -0.5, 0, 0},
			wantMaxs: []float32{0.5, 0, 0, 0},
		},
		{
			name:     "remainder frames are not covered",
			samples:  []float32{0.1, 0.2, 0.3, 0.4, 0.9},
			channels: 1,
			points:   2,
			wantMins: []float32{0, 0},
			wantMaxs: []float32{0.2, 0.4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := quietTrack()
			if err := tr.LoadFromMemory(tt.samples, len(tt.samples)/tt.channels, 8000, tt.channels); err != nil {
				t.Fatal(err)
			}

			mins, maxs := tr.PeakAmplitudes(tt.points)
			if len(mins) != tt.points || len(maxs) != tt.points {
				t.Fatalf("got %d/%d points, want %d", len(mins), len(maxs), tt.points)
			}
			for i := range tt.points {
				if mins[i] != tt.wantMins[i] || maxs[i] != tt.wantMaxs[i] {
					t.Errorf("point %d = [%v, %v], want [%v, %v]", i, mins[i], maxs[i], tt.wantMins[i], tt.wantMaxs[i])
				}
			}
		})
	}

	tr := quietTrack()
	tr.LoadFromMemory([]float32{1}, 1, 8000, 1)
	if mins, _ := tr.PeakAmplitudes(0); mins != nil {
		t.Error("PeakAmplitudes(0) should return nil")
	}
}

func TestMixParameters_Clamp(t *testing.T) {
	t.Parallel()

	tr := quietTrack()

	volumes := map[float32]float32{-1: 0, 0: 0, 0.3: 0.3, 1: 1, 7: 1}
	for in, want := range volumes {
		tr.SetVolume(in)
		if tr.Volume() != want {
			t.Errorf("SetVolume(%v) -> %v, want %v", in, tr.Volume(), want)
		}
	}

	pans := map[float32]float32{-3: -1, -0.5: -0.5, 0: 0, 1: 1, 2: 1}
	for in, want := range pans {
		tr.SetPan(in)
		if tr.Pan() != want {
			t.Errorf("SetPan(%v) -> %v, want %v", in, tr.Pan(), want)
		}
	}

	tr.SetMuted(true)
	tr.SetSoloed(true)
	if !tr.Muted() || !tr.Soloed() {
		t.Error("mute/solo flags not stored")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	path := audiotest.WAV{Channels: 1, SampleRate: 16000, BitsPerSample: 16, Data: audiotest.PCM16(5, 6)}.WriteFile(t, "a.wav")

	tr := quietTrack()
	tr.LoadFromFile(path)
	tr.Clear()

	if !tr.IsEmpty() || tr.Path() != "" || tr.Name() != "" {
		t.Errorf("after Clear(): empty=%v path=%q name=%q", tr.IsEmpty(), tr.Path(), tr.Name())
	}
	if tr.SampleRate() != 16000 {
		t.Errorf("Clear() reset the sample rate to %d", tr.SampleRate())
	}
	if tr.PeakAmplitude() != 0 || tr.RMSAmplitude() != 0 {
		t.Error("cleared track should report zero amplitude")
	}
}

func TestSamplesAndBufferAreCopies(t *testing.T) {
	t.Parallel()

	tr := quietTrack()
	tr.LoadFromMemory([]float32{0.25, 0.5}, 2, 8000, 1)

	s := tr.Samples()
	s[0] = 1
	b := tr.Buffer()
	b.Samples[1] = 1

	if tr.Sample(0, 0) != 0.25 || tr.Sample(1, 0) != 0.5 {
		t.Error("mutating a returned copy changed the track")
	}
}

func TestExport(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0, 0.5, -0.5, 0.25, -0.25}
	tests := []struct {
		bitDepth  int
		tolerance float64
	}{
		{8, 2.0 / 127},
		{16, 2.0 / 32768},
		{24, 2.0 / 8388608},
		{32, 0},
	}

	for _, tt := range tests {
		tr := quietTrack()
		tr.LoadFromMemory(samples, 3, 11025, 2)

		path := filepath.Join(t.TempDir(), "bounce.wav")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := tr.Export(f, tt.bitDepth); err != nil {
			t.Fatalf("%d-bit: Export() error = %v", tt.bitDepth, err)
		}
		f.Close()

		back := quietTrack()
		if err := back.LoadFromFile(path); err != nil {
			t.Fatalf("%d-bit: reloading export: %v", tt.bitDepth, err)
		}
		if back.Frames() != 3 || back.Channels() != 2 || back.SampleRate() != 11025 {
			t.Errorf("%d-bit: exported format = %d frames %d ch %d Hz",
				tt.bitDepth, back.Frames(), back.Channels(), back.SampleRate())
		}

		got := back.Samples()
		for i, w := range samples {
			diff := math.Abs(float64(got[i] - w))
			if diff > tt.tolerance {
				t.Errorf("%d-bit: sample %d = %v, want %v", tt.bitDepth, i, got[i], w)
			}
		}
		if p := back.PeakAmplitude(); p > 0.5 {
			t.Errorf("%d-bit: PeakAmplitude() = %v, want <= 0.5", tt.bitDepth, p)
		}
	}
}

func TestNameFromPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/a/b/kick.wav":        "kick",
		`C:\samples\snare.wav`: "snare",
		"take.01.wav":          "take.01",
		"noext":                "noext",
		"/dir/.hidden":         ".hidden",
	}
	for in, want := range tests {
		if got := nameFromPath(in); got != want {
			t.Errorf("nameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
