package island

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/hupe1980/lcsgo/population"
	"golang.org/x/time/rate"
)

// EmigrantSelector picks up to n entries of set to send to the next island.
type EmigrantSelector func(set *population.ClassifierSet, n int) []*population.Macroclassifier

// BestFitness selects the n fittest entries. Ties keep set order.
func BestFitness(set *population.ClassifierSet, n int) []*population.Macroclassifier {
	if n <= 0 || set.IsEmpty() {
		return nil
	}
	macros := make([]*population.Macroclassifier, 0, set.Len())
	for _, m := range set.All() {
		macros = append(macros, m)
	}
	slices.SortStableFunc(macros, func(a, b *population.Macroclassifier) int {
		return cmp.Compare(b.Classifier.Fitness, a.Classifier.Fitness)
	})
	return macros[:min(n, len(macros))]
}

// Options configures an Archipelago.
type Options struct {
	// Epochs is the number of Trainer calls per island.
	// Default: 10
	Epochs int

	// MigrationInterval is the number of epochs between migrations.
	// Default: 1
	MigrationInterval int

	// Migrants is the number of rules sent per migration. Each migrant
	// carries a single micro-classifier. 0 disables migration.
	// DefaultOptions: 2
	Migrants int

	// MigrationRate limits migrations across all islands.
	// Default: rate.Inf
	MigrationRate rate.Limit

	// MigrationBurst is the limiter burst size.
	// Default: 1
	MigrationBurst int

	// MaxConcurrent bounds how many islands train at the same time.
	// 0 lets every island train concurrently.
	MaxConcurrent int64

	// Emigrants selects the rules to send.
	// Default: BestFitness
	Emigrants EmigrantSelector

	// Logger receives lifecycle and migration events.
	// Default: discard
	Logger *slog.Logger
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		Epochs:            10,
		MigrationInterval: 1,
		Migrants:          2,
		MigrationRate:     rate.Inf,
		MigrationBurst:    1,
		Emigrants:         BestFitness,
		Logger:            slog.New(slog.DiscardHandler),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Epochs <= 0 {
		o.Epochs = d.Epochs
	}
	if o.MigrationInterval <= 0 {
		o.MigrationInterval = d.MigrationInterval
	}
	if o.Migrants < 0 {
		o.Migrants = 0
	}
	if o.MigrationRate == 0 {
		o.MigrationRate = d.MigrationRate
	}
	if o.MigrationBurst <= 0 {
		o.MigrationBurst = d.MigrationBurst
	}
	if o.Emigrants == nil {
		o.Emigrants = d.Emigrants
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
