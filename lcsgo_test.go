package lcsgo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/lcsgo/blobstore"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/control"
	"github.com/hupe1980/lcsgo/persistence"
	"github.com/hupe1980/lcsgo/population"
	"github.com/hupe1980/lcsgo/representation/ternary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPopulation(t *testing.T, sys *System, rep *ternary.Representation, rules ...string) *population.ClassifierSet {
	t.Helper()
	set := sys.NewPopulation()
	for i, r := range rules {
		c := sys.Factory().FromBitField(rep.MustParse(r))
		c.Fitness = float64(i+1) / 10
		c.Experience = i
		set.Add(c, i+1, true)
	}
	return set
}

func formats(rep *ternary.Representation, set *population.ClassifierSet) []string {
	var out []string
	for _, m := range set.All() {
		out = append(out, rep.Format(m.Classifier.Chromosome()))
	}
	return out
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilRepresentation)

	ids := classifier.NewCounter(41)
	var states int
	sys, err := New(ternary.New(3, 2),
		WithIDSource(ids),
		WithUpdateAlgorithm(classifier.UpdateFunc(func(*classifier.Classifier) any {
			states++
			return states
		})),
	)
	require.NoError(t, err)

	c := sys.Factory().New()
	assert.Equal(t, uint64(42), c.Serial())
	assert.Equal(t, c.Serial(), ids.Last())
	assert.Equal(t, 1, c.UpdateState())
	assert.Equal(t, 7, sys.Representation().ChromosomeSize())
	assert.NotNil(t, sys.Logger())
	assert.Nil(t, sys.BlobStore())
}

func TestNewPopulation_Wiring(t *testing.T) {
	rep := ternary.New(2, 2)
	metrics := &BasicMetricsCollector{}
	sys, err := New(rep,
		WithControlStrategy(&control.WorstFitnessDeletion{Max: 3}),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	set := seedPopulation(t, sys, rep, "00:0", "01:0", "10:1")

	assert.LessOrEqual(t, set.TotalNumerosity(), 3)
	assert.NotNil(t, set.ControlStrategy())
	assert.Equal(t, int64(3), metrics.GetStats().AddCount)
}

func TestSaveOpen_RoundTrip(t *testing.T) {
	for _, store := range []blobstore.BlobStore{
		blobstore.NewMemoryStore(),
		blobstore.NewLocalStore(t.TempDir()),
	} {
		rep := ternary.New(3, 2)
		sys, err := New(rep,
			WithBlobStore(store),
			WithCompression(persistence.CompressionZSTD),
			WithControlStrategy(&control.WorstFitnessDeletion{Max: 100}),
		)
		require.NoError(t, err)
		ctx := context.Background()

		set := seedPopulation(t, sys, rep, "1#0:1", "000:0", "##1:1")
		require.NoError(t, sys.Save(ctx, "gen-1.lcs", set))

		got, err := sys.Open(ctx, "gen-1.lcs")
		require.NoError(t, err)

		assert.Equal(t, formats(rep, set), formats(rep, got))
		assert.Equal(t, set.TotalNumerosity(), got.TotalNumerosity())
		assert.NotNil(t, got.ControlStrategy())
		for i := 0; i < set.Len(); i++ {
			assert.Equal(t, set.Classifier(i).Metadata(), got.Classifier(i).Metadata())
			assert.Equal(t, set.Numerosity(i), got.Numerosity(i))
		}
	}
}

func TestCheckpoints(t *testing.T) {
	rep := ternary.New(2, 2)
	sys, err := New(rep, WithBlobStore(blobstore.NewMemoryStore()))
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = sys.OpenLatest(ctx)
	assert.ErrorIs(t, err, ErrNoCheckpoint)

	set := seedPopulation(t, sys, rep, "0#:0")
	require.NoError(t, sys.Checkpoint(ctx, "gen-1.lcs", set))

	set.Add(sys.Factory().FromBitField(rep.MustParse("11:1")), 1, true)
	require.NoError(t, sys.Checkpoint(ctx, "gen-2.lcs", set))

	name, latest, err := sys.OpenLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gen-2.lcs", name)
	assert.Equal(t, []string{"0#:0", "11:1"}, formats(rep, latest))

	names, err := sys.Checkpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-1.lcs", "gen-2.lcs"}, names)

	// Rolling back is a commit of an older checkpoint.
	require.NoError(t, sys.Commit(ctx, "gen-1.lcs"))
	name, err = sys.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gen-1.lcs", name)
}

func TestCommit_MissingCheckpoint(t *testing.T) {
	sys, err := New(ternary.New(2, 2), WithBlobStore(blobstore.NewMemoryStore()))
	require.NoError(t, err)

	err = sys.Commit(context.Background(), "nope.lcs")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = sys.Latest(context.Background())
	assert.ErrorIs(t, err, ErrNoCheckpoint)
}

func TestSave_ReservedName(t *testing.T) {
	sys, err := New(ternary.New(2, 2), WithBlobStore(blobstore.NewMemoryStore()))
	require.NoError(t, err)

	err = sys.Save(context.Background(), blobstore.CurrentPointer, sys.NewPopulation())
	assert.Error(t, err)
}

func TestNoBlobStore(t *testing.T) {
	sys, err := New(ternary.New(2, 2))
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, sys.Save(ctx, "a", sys.NewPopulation()), ErrNoBlobStore)
	_, err = sys.Open(ctx, "a")
	assert.ErrorIs(t, err, ErrNoBlobStore)
	assert.ErrorIs(t, sys.Commit(ctx, "a"), ErrNoBlobStore)
	_, err = sys.Checkpoints(ctx)
	assert.ErrorIs(t, err, ErrNoBlobStore)
	_, _, err = sys.OpenLatest(ctx)
	assert.ErrorIs(t, err, ErrNoBlobStore)
}

func TestOpen_ChromosomeSizeMismatch(t *testing.T) {
	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	small := ternary.New(2, 2)
	writer, err := New(small, WithBlobStore(store))
	require.NoError(t, err)
	require.NoError(t, writer.Save(ctx, "small.lcs", seedPopulation(t, writer, small, "01:1")))

	reader, err := New(ternary.New(5, 2), WithBlobStore(store))
	require.NoError(t, err)

	_, err = reader.Open(ctx, "small.lcs")
	var sizeErr *ErrChromosomeSize
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, 11, sizeErr.Expected)
	assert.Equal(t, 5, sizeErr.Actual)
	assert.Equal(t, 0, sizeErr.Entry)
	assert.Contains(t, err.Error(), "small.lcs")
}

func TestOpen_Corrupt(t *testing.T) {
	store := blobstore.NewMemoryStore()
	sys, err := New(ternary.New(2, 2), WithBlobStore(store))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "junk.lcs", []byte("definitely not a population")))

	_, err = sys.Open(ctx, "junk.lcs")
	require.Error(t, err)

	_, err = sys.Open(ctx, "missing.lcs")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCompact(t *testing.T) {
	rep := ternary.New(3, 2)
	var buf bytes.Buffer
	sys, err := New(rep, WithLogger(NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	require.NoError(t, err)

	set := sys.NewPopulation()
	set.Add(sys.Factory().FromBitField(rep.MustParse("110:1")), 1, false)
	general := sys.Factory().FromBitField(rep.MustParse("1#0:1"))
	general.CanSubsume = true
	set.Add(general, 2, false)

	sys.Compact(context.Background(), set)

	assert.Equal(t, []string{"1#0:1"}, formats(rep, set))
	assert.Equal(t, 3, set.TotalNumerosity())
	assert.Contains(t, buf.String(), "population compacted")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	rep := ternary.New(2, 2)
	sys, err := New(rep,
		WithBlobStore(blobstore.NewMemoryStore()),
		WithLogger(NewLogger(slog.NewJSONHandler(&buf, nil))),
	)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, sys.Checkpoint(ctx, "gen-1.lcs", seedPopulation(t, sys, rep, "01:0")))
	_, err = sys.Open(ctx, "missing.lcs")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"population saved"`)
	assert.Contains(t, out, `"msg":"checkpoint committed"`)
	assert.Contains(t, out, `"msg":"open failed"`)
	assert.Contains(t, out, `"name":"gen-1.lcs"`)
}

func TestWithLogLevelAndNilLogger(t *testing.T) {
	sys, err := New(ternary.New(2, 2), WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, sys.Logger())

	sys, err = New(ternary.New(2, 2), WithLogLevel(slog.LevelWarn))
	require.NoError(t, err)
	assert.False(t, sys.Logger().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, sys.Logger().Enabled(context.Background(), slog.LevelWarn))
}
