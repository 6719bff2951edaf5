package heightfield

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseOptions controls procedural terrain generation.
type NoiseOptions struct {
	Seed      int64
	Amplitude float32 // peak height of the tallest features
	Frequency float32 // noise frequency in 1/world-units
	Octaves   int     // fractal octaves, minimum 1
}

// DefaultNoiseOptions returns gently rolling hills for a 64-unit chunk.
func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{
		Seed:      1,
		Amplitude: 6,
		Frequency: 0.04,
		Octaves:   4,
	}
}

// GenerateNoise fills the field with fractal simplex noise. Deterministic for
// a given seed. Existing samples are replaced and the field is marked dirty.
func (f *Field) GenerateNoise(opts NoiseOptions) {
	if opts.Octaves < 1 {
		opts.Octaves = 1
	}

	noise := opensimplex.New32(opts.Seed)
	spacing := f.Size / float32(f.Resolution-1)

	for gz := 0; gz < f.Resolution; gz++ {
		for gx := 0; gx < f.Resolution; gx++ {
			wx := float32(gx) * spacing
			wz := float32(gz) * spacing

			var sum, norm float32
			amp := float32(1)
			freq := opts.Frequency
			for o := 0; o < opts.Octaves; o++ {
				sum += noise.Eval2(wx*freq, wz*freq) * amp
				norm += amp
				amp *= 0.5
				freq *= 2
			}

			f.samples[gz*f.Resolution+gx] = sum / norm * opts.Amplitude
		}
	}

	f.dirty = true
}
