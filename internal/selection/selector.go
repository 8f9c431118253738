// Package selection picks the next exercise of a session by weighted
// random draw, biased toward exercises the learner gets wrong.
package selection

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ksalp/lernportal/internal/domain/learnset"
	"github.com/ksalp/lernportal/internal/domain/outcome"
)

const (
	unseenFactor   = 4.0
	unseenBase     = 1.0
	struggleFactor = 10.0
	minFactor      = 0.05
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Counters is the read side of an outcome tracker.
type Counters interface {
	Lookup(exerciseID string) (outcome.Counter, bool)
}

// NewSource returns a seeded PCG source.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Weight computes the relative chance of an exercise being drawn.
//
//	never answered:   4*f + 1
//	wrong > correct:  10*f
//	otherwise:        max(0.05, 3*wrong - 2*correct) * f
func Weight(e learnset.Exercise, c outcome.Counter, seen bool) float64 {
	freq := sanitize(e.Frequency)
	if !seen {
		return unseenFactor*freq + unseenBase
	}

	correct := max(c.Correct, 0)
	wrong := max(c.Wrong, 0)
	if wrong > correct {
		return struggleFactor * freq
	}
	return math.Max(minFactor, float64(3*wrong-2*correct)) * freq
}

// Weights computes the weight of every exercise, in the given order.
func Weights(exercises []learnset.Exercise, counters Counters) []float64 {
	weights := make([]float64, len(exercises))
	for i, e := range exercises {
		c, seen := counters.Lookup(e.ID)
		weights[i] = Weight(e, c, seen)
	}
	return weights
}

// Selector draws exercises. Weights are recomputed on every call.
type Selector struct {
	rnd Source
}

// New returns a Selector drawing from rnd, or from a time-seeded source if
// rnd is nil.
func New(rnd Source) *Selector {
	if rnd == nil {
		rnd = NewSource(uint64(time.Now().UnixNano()))
	}
	return &Selector{rnd: rnd}
}

// Next returns the id of the exercise to present. It reports false only for
// an empty slice.
func (s *Selector) Next(exercises []learnset.Exercise, counters Counters) (string, bool) {
	switch len(exercises) {
	case 0:
		return "", false
	case 1:
		return exercises[0].ID, true
	}

	weights := Weights(exercises, counters)
	total := 0.0
	for _, w := range weights {
		total += w
	}

	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		i := int(s.draw() * float64(len(exercises)))
		return exercises[min(i, len(exercises)-1)].ID, true
	}

	r := s.draw() * total
	running := 0.0
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		running += w
		last = i
		if running > r {
			return exercises[i].ID, true
		}
	}

	// Rounding can leave r at the very top of the wheel.
	return exercises[last].ID, true
}

// draw returns a value clamped to [0, 1).
func (s *Selector) draw() float64 {
	v := s.rnd.Float64()
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v >= 1:
		return math.Nextafter(1, 0)
	}
	return v
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
