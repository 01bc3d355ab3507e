package island

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/population"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrNoIslands is returned by Run on an empty Archipelago.
var ErrNoIslands = errors.New("island: archipelago has no islands")

// Trainer advances one island by one epoch. It is called from the island's
// goroutine and may only touch that island.
type Trainer interface {
	Train(ctx context.Context, isl *Island, epoch int) error
}

// TrainerFunc adapts a function to Trainer.
type TrainerFunc func(ctx context.Context, isl *Island, epoch int) error

// Train implements Trainer.
func (f TrainerFunc) Train(ctx context.Context, isl *Island, epoch int) error {
	return f(ctx, isl, epoch)
}

// Island is one population in an Archipelago.
type Island struct {
	id      uuid.UUID
	index   int
	factory *classifier.Factory
	set     *population.ClassifierSet
	inbox   chan []Migrant

	sent     int
	received int
	dropped  int
}

// ID returns the random identity of the island.
func (isl *Island) ID() uuid.UUID { return isl.id }

// Index returns the ring position of the island.
func (isl *Island) Index() int { return isl.index }

// Factory returns the factory used to rebuild incoming migrants.
func (isl *Island) Factory() *classifier.Factory { return isl.factory }

// Population returns the island's classifier set.
func (isl *Island) Population() *population.ClassifierSet { return isl.set }

// Sent returns the number of migrants handed to the next island.
func (isl *Island) Sent() int { return isl.sent }

// Received returns the number of migrants absorbed.
func (isl *Island) Received() int { return isl.received }

// Dropped returns the number of migrants discarded because the next
// island had not consumed the previous batch.
func (isl *Island) Dropped() int { return isl.dropped }

func (isl *Island) absorb(batch []Migrant) {
	for _, m := range batch {
		isl.set.Add(m.Materialize(isl.factory), m.Numerosity, true)
	}
	isl.received += len(batch)
}

func (isl *Island) drainInbox() {
	select {
	case batch := <-isl.inbox:
		isl.absorb(batch)
	default:
	}
}

// Archipelago runs islands on separate goroutines connected in a ring.
type Archipelago struct {
	opts    Options
	islands []*Island
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates an empty Archipelago. Zero option fields take their defaults.
func New(opts Options) *Archipelago {
	opts = opts.withDefaults()
	return &Archipelago{
		opts:    opts,
		limiter: rate.NewLimiter(opts.MigrationRate, opts.MigrationBurst),
		logger:  opts.Logger,
	}
}

// Add appends an island. It must not be called while Run is active.
func (a *Archipelago) Add(f *classifier.Factory, set *population.ClassifierSet) *Island {
	isl := &Island{
		id:      uuid.New(),
		index:   len(a.islands),
		factory: f,
		set:     set,
		inbox:   make(chan []Migrant, 1),
	}
	a.islands = append(a.islands, isl)
	return isl
}

// Islands returns the islands in ring order.
func (a *Archipelago) Islands() []*Island {
	return a.islands
}

// Run trains every island for the configured number of epochs. After every
// MigrationInterval epochs an island sends copies of its selected rules to
// the next island, which absorbs them with thorough adds before its next
// epoch. Batches still in flight when the islands finish are absorbed
// before Run returns. The first error cancels the remaining islands.
func (a *Archipelago) Run(ctx context.Context, trainer Trainer) error {
	if len(a.islands) == 0 {
		return ErrNoIslands
	}

	limit := a.opts.MaxConcurrent
	if limit <= 0 {
		limit = int64(len(a.islands))
	}
	slots := semaphore.NewWeighted(limit)

	a.logger.Info("archipelago started",
		slog.Int("islands", len(a.islands)),
		slog.Int("epochs", a.opts.Epochs),
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, isl := range a.islands {
		g.Go(func() error {
			return a.runIsland(gctx, slots, isl, trainer)
		})
	}
	err := g.Wait()

	for _, isl := range a.islands {
		isl.drainInbox()
	}
	if err != nil {
		a.logger.Error("archipelago failed", slog.String("error", err.Error()))
		return err
	}

	a.logger.Info("archipelago finished", slog.Int("islands", len(a.islands)))
	return nil
}

func (a *Archipelago) runIsland(ctx context.Context, slots *semaphore.Weighted, isl *Island, trainer Trainer) error {
	next := a.islands[(isl.index+1)%len(a.islands)]
	log := a.logger.With(slog.String("island", isl.id.String()), slog.Int("index", isl.index))

	for epoch := 0; epoch < a.opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := slots.Acquire(ctx, 1); err != nil {
			return err
		}
		err := trainer.Train(ctx, isl, epoch)
		slots.Release(1)
		if err != nil {
			return fmt.Errorf("island %d epoch %d: %w", isl.index, epoch, err)
		}

		isl.drainInbox()

		if next == isl || a.opts.Migrants == 0 || (epoch+1)%a.opts.MigrationInterval != 0 {
			continue
		}
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
		a.emigrate(log, isl, next, epoch)
	}
	return nil
}

func (a *Archipelago) emigrate(log *slog.Logger, from, to *Island, epoch int) {
	selected := a.opts.Emigrants(from.set, a.opts.Migrants)
	if len(selected) == 0 {
		return
	}
	batch := make([]Migrant, len(selected))
	for i, m := range selected {
		batch[i] = NewMigrant(from.id, m)
		batch[i].Numerosity = 1
	}

	select {
	case to.inbox <- batch:
		from.sent += len(batch)
		log.Debug("migration", slog.Int("epoch", epoch), slog.Int("to", to.index), slog.Int("migrants", len(batch)))
	default:
		from.dropped += len(batch)
		log.Debug("migration dropped", slog.Int("epoch", epoch), slog.Int("to", to.index), slog.Int("migrants", len(batch)))
	}
}
