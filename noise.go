package hshex

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// MaxStrength is the largest accepted noise strength; 2*MaxStrength+1 fits
// in an int on every platform.
const MaxStrength = math.MaxInt32 / 2

// Rand is the random source consumed by ApplyNoise. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewRand returns a PCG generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// ApplyNoise returns a copy of img in which every channel of every pixel is
// shifted by an independent uniform value in [-strength, strength], saturated
// to [0, 65535]. img itself is never modified.
func ApplyNoise(img *Image, strength int, rng Rand) (*Image, error) {
	if strength < 0 || strength > MaxStrength {
		return nil, fmt.Errorf("%w: noise strength %d outside [0, %d]", ErrInvalidArgument, strength, MaxStrength)
	}
	if rng == nil && strength > 0 {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}

	out, err := img.Clone()
	if err != nil {
		return nil, err
	}
	if strength == 0 {
		return out, nil
	}

	span := 2*strength + 1
	perturb := func(v uint16) uint16 {
		return clampChannel(int(v) + rng.IntN(span) - strength)
	}
	for i, p := range out.pix {
		out.pix[i] = Pixel{
			R: perturb(p.R),
			G: perturb(p.G),
			B: perturb(p.B),
		}
	}
	return out, nil
}
