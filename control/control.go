package control

import (
	"math"
	"math/rand/v2"

	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/population"
)

var (
	_ population.ControlStrategy = Unbounded{}
	_ population.ControlStrategy = (*WorstFitnessDeletion)(nil)
	_ population.ControlStrategy = (*RouletteDeletion)(nil)
)

// Unbounded never deletes anything.
type Unbounded struct{}

// ControlPopulation implements population.ControlStrategy.
func (Unbounded) ControlPopulation(*population.ClassifierSet) {}

// WorstFitnessDeletion deletes from the lowest-fitness entry until the total
// numerosity is at most Max. Ties go to the earliest entry.
type WorstFitnessDeletion struct {
	Max int
}

// ControlPopulation implements population.ControlStrategy.
func (w *WorstFitnessDeletion) ControlPopulation(set *population.ClassifierSet) {
	for set.TotalNumerosity() > w.Max && !set.IsEmpty() {
		worst := 0
		for i, m := range set.All() {
			if m.Classifier.Fitness < set.Classifier(worst).Fitness {
				worst = i
			}
		}
		set.DeleteClassifierAt(worst)
	}
}

// WeightFunc returns the deletion weight of one micro-classifier of c.
type WeightFunc func(c *classifier.Classifier) float64

// InverseFitness weights classifiers by 1/(fitness+eps), so weak rules are
// deleted more often.
func InverseFitness(c *classifier.Classifier) float64 {
	return 1 / (c.Fitness + 1e-9)
}

// RouletteDeletion deletes micro-classifiers by roulette-wheel selection
// until the total numerosity is at most Max. An entry's slice of the wheel
// is its numerosity times Weight. When the weights sum to zero, NaN or
// infinity the wheel falls back to numerosity alone.
type RouletteDeletion struct {
	Max    int
	Weight WeightFunc
	Rand   *rand.Rand

	weights []float64
}

// NewRouletteDeletion returns a roulette strategy with InverseFitness
// weighting seeded by seed.
func NewRouletteDeletion(max int, seed uint64) *RouletteDeletion {
	return &RouletteDeletion{
		Max:    max,
		Weight: InverseFitness,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// ControlPopulation implements population.ControlStrategy.
func (r *RouletteDeletion) ControlPopulation(set *population.ClassifierSet) {
	for set.TotalNumerosity() > r.Max && !set.IsEmpty() {
		set.DeleteClassifierAt(r.spin(set))
	}
}

func (r *RouletteDeletion) float64() float64 {
	if r.Rand == nil {
		return rand.Float64()
	}
	return r.Rand.Float64()
}

func (r *RouletteDeletion) spin(set *population.ClassifierSet) int {
	r.weights = r.weights[:0]
	sum := 0.0
	for _, m := range set.All() {
		w := float64(m.Numerosity)
		if r.Weight != nil {
			w *= r.Weight(m.Classifier)
		}
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		r.weights = append(r.weights, w)
		sum += w
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		sum = 0
		for i, m := range set.All() {
			r.weights[i] = float64(m.Numerosity)
			sum += r.weights[i]
		}
	}

	target := r.float64() * sum
	for i, w := range r.weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(r.weights) - 1
}
