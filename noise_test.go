package hshex

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// edgeRand always draws the same end of the range.
type edgeRand struct{ high bool }

func (r edgeRand) IntN(n int) int {
	if r.high {
		return n - 1
	}
	return 0
}

func extremeImage(t *testing.T) *Image {
	t.Helper()
	img, err := FromPixels(3, 1, []Pixel{
		{0xFFFF, 0x0000, 0x8000},
		{0x0001, 0xFFFE, 0x7FFF},
		{0x0005, 0xFFFA, 0x1234},
	})
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	return img
}

func TestApplyNoise_ZeroStrength(t *testing.T) {
	src := makeTestImage(t, 16, 9)

	for _, rng := range []Rand{nil, NewRand(1)} {
		out, err := ApplyNoise(src, 0, rng)
		if err != nil {
			t.Fatalf("ApplyNoise: %v", err)
		}
		if out == src {
			t.Fatal("ApplyNoise returned its input")
		}
		if diff := cmp.Diff(src.Pixels(), out.Pixels()); diff != "" {
			t.Fatalf("strength 0 changed pixels (-want +got):\n%s", diff)
		}
	}
}

func TestApplyNoise_Saturates(t *testing.T) {
	src := extremeImage(t)

	for _, tc := range []struct {
		name string
		rng  Rand
		want []Pixel
	}{
		{
			name: "max_draw",
			rng:  edgeRand{high: true},
			want: []Pixel{{0xFFFF, 0x000A, 0x800A}, {0x000B, 0xFFFF, 0x8009}, {0x000F, 0xFFFF, 0x123E}},
		},
		{
			name: "min_draw",
			rng:  edgeRand{high: false},
			want: []Pixel{{0xFFF5, 0x0000, 0x7FF6}, {0x0000, 0xFFF4, 0x7FF5}, {0x0000, 0xFFF0, 0x122A}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ApplyNoise(src, 10, tc.rng)
			if err != nil {
				t.Fatalf("ApplyNoise: %v", err)
			}
			if diff := cmp.Diff(tc.want, out.Pixels()); diff != "" {
				t.Fatalf("pixels differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyNoise_Bounds(t *testing.T) {
	src := makeTestImage(t, 32, 32)
	const strength = 300

	out, err := ApplyNoise(src, strength, NewRand(42))
	if err != nil {
		t.Fatalf("ApplyNoise: %v", err)
	}
	if out.Width() != src.Width() || out.Height() != src.Height() {
		t.Fatalf("dimensions changed: %dx%d", out.Width(), out.Height())
	}
	for i := range src.Len() {
		in, got := src.Pixel(i), out.Pixel(i)
		for c, pair := range [][2]uint16{{in.R, got.R}, {in.G, got.G}, {in.B, got.B}} {
			d := int(pair[1]) - int(pair[0])
			if d < -strength || d > strength {
				t.Fatalf("pixel %d channel %d moved by %d, limit %d", i, c, d, strength)
			}
		}
	}

	// Huge strengths saturate instead of wrapping.
	if _, err := ApplyNoise(extremeImage(t), MaxStrength, NewRand(7)); err != nil {
		t.Fatalf("ApplyNoise(MaxStrength): %v", err)
	}
}

func TestApplyNoise_DoesNotMutateInput(t *testing.T) {
	src := makeTestImage(t, 10, 10)
	before := src.Pixels()

	if _, err := ApplyNoise(src, 1000, NewRand(3)); err != nil {
		t.Fatalf("ApplyNoise: %v", err)
	}
	if diff := cmp.Diff(before, src.Pixels()); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestApplyNoise_Deterministic(t *testing.T) {
	src := makeTestImage(t, 12, 7)

	a, err := ApplyNoise(src, 500, NewRand(99))
	if err != nil {
		t.Fatalf("ApplyNoise: %v", err)
	}
	b, err := ApplyNoise(src, 500, NewRand(99))
	if err != nil {
		t.Fatalf("ApplyNoise: %v", err)
	}
	if diff := cmp.Diff(a.Pixels(), b.Pixels()); diff != "" {
		t.Fatalf("same seed, different output (-a +b):\n%s", diff)
	}
}

func TestApplyNoise_InvalidArgument(t *testing.T) {
	src := makeTestImage(t, 2, 2)

	for _, tc := range []struct {
		name     string
		strength int
		rng      Rand
	}{
		{name: "negative", strength: -1, rng: NewRand(1)},
		{name: "too_strong", strength: MaxStrength + 1, rng: NewRand(1)},
		{name: "nil_rng", strength: 5, rng: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ApplyNoise(src, tc.strength, tc.rng)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
			if out != nil {
				t.Fatal("image returned alongside error")
			}
		})
	}
}
