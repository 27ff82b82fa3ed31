// ABOUTME: Linear resampler for decoded units
// ABOUTME: Converts unit sample rates with interpolation that carries across unit boundaries
package resample

import (
	"github.com/Resonate-Protocol/mpegsync/pkg/audio"
)

// Resampler performs linear interpolation between sample rates. It keeps the
// last sample of each unit so consecutive units join without gaps.
type Resampler struct {
	inputRate  int
	outputRate int
	ratio      float64
	position   float64 // read position, 0 = last sample of the previous unit
	lastLeft   int16
	lastRight  int16
	primed     bool
}

// New creates a new resampler
func New(inputRate, outputRate int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Unit converts u to the output rate. The result may hold a sample more or
// less than the exact ratio suggests; the remainder carries to the next unit.
func (r *Resampler) Unit(u audio.Unit) audio.Unit {
	if r.inputRate == r.outputRate || u.Samples == 0 {
		return u
	}

	left := u.Left
	right := u.Right
	if r.primed {
		left = append([]int16{r.lastLeft}, left...)
		right = append([]int16{r.lastRight}, right...)
	}

	out := audio.Unit{
		Left:  make([]int16, 0, r.OutputSamplesNeeded(len(left))),
		Right: make([]int16, 0, r.OutputSamplesNeeded(len(left))),
	}
	for {
		idx := int(r.position)
		if idx+1 >= len(left) {
			break
		}
		frac := r.position - float64(idx)
		out.Left = append(out.Left, interpolate(left[idx], left[idx+1], frac))
		out.Right = append(out.Right, interpolate(right[idx], right[idx+1], frac))
		r.position += r.ratio
	}
	out.Samples = len(out.Left)

	// Rebase onto the last input sample, which leads the next unit
	r.position -= float64(len(left) - 1)
	r.lastLeft = left[len(left)-1]
	r.lastRight = right[len(right)-1]
	r.primed = true

	return out
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0
	r.lastLeft = 0
	r.lastRight = 0
	r.primed = false
}

// OutputSamplesNeeded estimates how many output samples n input samples produce
func (r *Resampler) OutputSamplesNeeded(n int) int {
	return int(float64(n)/r.ratio) + 1
}

func interpolate(a, b int16, frac float64) int16 {
	return int16(float64(a)*(1.0-frac) + float64(b)*frac)
}
