package persistence

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/population"
	"github.com/hupe1980/lcsgo/representation/ternary"
	"github.com/hupe1980/lcsgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory() (*ternary.Representation, *classifier.Factory) {
	rep := ternary.New(40, 3)
	return rep, classifier.NewFactory(rep)
}

func randomPopulation(t *testing.T, n int) (*population.ClassifierSet, *ternary.Representation) {
	t.Helper()
	rep, f := newFactory()
	rng := testutil.NewRNG(77)
	set := population.New()
	for i := 0; i < n; i++ {
		inst := classifier.Instance{Values: rng.BinaryValues(rep.Attributes())}
		c := f.FromBitField(rep.Cover(inst, rng.Intn(3), 0.6, rng))
		c.Fitness = rng.Float64()
		c.Experience = rng.Intn(1000)
		c.Timestamp = rng.Intn(50000)
		c.CanSubsume = rng.Intn(2) == 0
		set.Add(c, 1+rng.Intn(20), false)
	}
	return set, rep
}

func requireSamePopulation(t *testing.T, want, got *population.ClassifierSet) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	require.Equal(t, want.TotalNumerosity(), got.TotalNumerosity())
	for i, m := range want.All() {
		g := got.Macroclassifier(i)
		assert.Equal(t, m.Numerosity, g.Numerosity, "entry %d", i)
		assert.True(t, m.Classifier.Chromosome().Equal(g.Classifier.Chromosome()), "entry %d", i)
		assert.Equal(t, m.Classifier.Fitness, g.Classifier.Fitness, "entry %d", i)
		assert.Equal(t, m.Classifier.Experience, g.Classifier.Experience, "entry %d", i)
		assert.Equal(t, m.Classifier.Timestamp, g.Classifier.Timestamp, "entry %d", i)
		assert.Equal(t, m.Classifier.CanSubsume, g.Classifier.CanSubsume, "entry %d", i)
	}
}

func TestRoundTrip(t *testing.T) {
	set, _ := randomPopulation(t, 200)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Marshal(set, WithCompression(c))
			require.NoError(t, err)

			_, f := newFactory()
			got, err := Unmarshal(data, f)
			require.NoError(t, err)
			requireSamePopulation(t, set, got)
		})
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	_, f := newFactory()
	data, err := Marshal(population.New(), WithCompression(CompressionZSTD))
	require.NoError(t, err)
	assert.Len(t, data, HeaderSize)

	got, err := Unmarshal(data, f)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestHeader(t *testing.T) {
	set, _ := randomPopulation(t, 50)
	data, err := Marshal(set, WithCompression(CompressionZSTD))
	require.NoError(t, err)

	h, err := ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint64(50), h.MacroCount)
	assert.Equal(t, uint64(set.TotalNumerosity()), h.TotalNumerosity)
	assert.Equal(t, CompressionZSTD, h.Compression)
	assert.Less(t, h.StoredLength, h.RawLength)
	assert.Equal(t, uint64(len(data)-HeaderSize), h.StoredLength)
	assert.Equal(t, HeaderSize, binary.Size(FileHeader{}))
}

func TestCompress_IncompressibleStaysPlain(t *testing.T) {
	rng := testutil.NewRNG(5)
	raw := make([]byte, 4096)
	for i := range raw {
		raw[i] = byte(rng.Uint64())
	}

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		stored, used, err := compress(raw, c)
		require.NoError(t, err)
		assert.Equal(t, CompressionNone, used, c.String())
		assert.Equal(t, raw, stored)
	}

	_, _, err := compress(raw, Compression(9))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestOpen_FreshSerialsAndBindings(t *testing.T) {
	set, _ := randomPopulation(t, 5)
	data, err := Marshal(set)
	require.NoError(t, err)

	ids := classifier.NewCounter(1000)
	rep := ternary.New(40, 3)
	f := classifier.NewFactory(rep, classifier.WithIDSource(ids))
	got, err := Unmarshal(data, f)
	require.NoError(t, err)

	assert.Equal(t, uint64(1001), got.Classifier(0).Serial())
	assert.Same(t, rep, got.Classifier(0).Representation())
	assert.Equal(t, classifier.MatchUnknown, got.Classifier(0).CachedMatch(0))
}

func TestOpen_ControlStrategyBoundAfterLoad(t *testing.T) {
	set, _ := randomPopulation(t, 30)
	data, err := Marshal(set)
	require.NoError(t, err)

	calls := 0
	cs := population.ControlFunc(func(*population.ClassifierSet) { calls++ })
	_, f := newFactory()
	got, err := Unmarshal(data, f, WithSetOptions(population.WithControlStrategy(cs)))
	require.NoError(t, err)

	assert.Equal(t, 0, calls)
	assert.NotNil(t, got.ControlStrategy())
	got.Add(f.New(), 1, false)
	assert.Equal(t, 1, calls)
}

func TestOpen_Corruption(t *testing.T) {
	set, _ := randomPopulation(t, 20)
	data, err := Marshal(set)
	require.NoError(t, err)
	_, f := newFactory()

	corrupt := func(mutate func(b []byte) []byte) error {
		b := mutate(append([]byte(nil), data...))
		_, err := Unmarshal(b, f)
		return err
	}

	t.Run("magic", func(t *testing.T) {
		err := corrupt(func(b []byte) []byte { b[0] ^= 0xFF; return b })
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})
	t.Run("version", func(t *testing.T) {
		err := corrupt(func(b []byte) []byte { b[4]++; return b })
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})
	t.Run("compression", func(t *testing.T) {
		err := corrupt(func(b []byte) []byte { b[8] = 9; return b })
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})
	t.Run("checksum", func(t *testing.T) {
		// Flip a fitness bit of the first record.
		err := corrupt(func(b []byte) []byte { b[HeaderSize+9] ^= 0x01; return b })
		assert.True(t, IsChecksumMismatch(err))
		assert.ErrorIs(t, err, ErrCorruptPopulation)
	})
	t.Run("truncated", func(t *testing.T) {
		err := corrupt(func(b []byte) []byte { return b[:len(b)-3] })
		assert.True(t, IsCorrupt(err))
	})
	t.Run("short header", func(t *testing.T) {
		err := corrupt(func(b []byte) []byte { return b[:10] })
		assert.Error(t, err)
	})
	t.Run("zero numerosity", func(t *testing.T) {
		err := corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[HeaderSize:], 0)
			return b
		})
		assert.True(t, IsCorrupt(err))
	})
}

func TestOpen_OversizedHeaderLengths(t *testing.T) {
	set, _ := randomPopulation(t, 3)
	_, f := newFactory()

	withLengths := func(t *testing.T, c Compression, raw, stored uint64) []byte {
		t.Helper()
		data, err := Marshal(set, WithCompression(c))
		require.NoError(t, err)
		binary.LittleEndian.PutUint64(data[28:], raw)
		binary.LittleEndian.PutUint64(data[36:], stored)
		return data
	}

	t.Run("over the cap", func(t *testing.T) {
		_, err := Unmarshal(withLengths(t, CompressionNone, 1<<40, 1<<40), f)
		assert.ErrorIs(t, err, ErrCorruptPopulation)
		assert.Contains(t, err.Error(), "body too large")
	})
	t.Run("stored length beyond data", func(t *testing.T) {
		_, err := Unmarshal(withLengths(t, CompressionNone, maxBodyBytes, maxBodyBytes), f)
		assert.ErrorIs(t, err, ErrCorruptPopulation)
		assert.Contains(t, err.Error(), "read body")
	})
	t.Run("lz4 expansion", func(t *testing.T) {
		plain := population.New()
		for i := 0; i < 50; i++ {
			plain.Add(f.New(), 1, false)
		}
		data, err := Marshal(plain, WithCompression(CompressionLZ4))
		require.NoError(t, err)
		h, err := ReadHeader(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, CompressionLZ4, h.Compression)

		binary.LittleEndian.PutUint64(data[28:], h.StoredLength*lz4MaxRatio+1)
		_, err = Unmarshal(data, f)
		assert.ErrorIs(t, err, ErrCorruptPopulation)
		assert.Contains(t, err.Error(), "cannot expand")
	})
}

func TestSaveFile(t *testing.T) {
	set, _ := randomPopulation(t, 25)
	path := filepath.Join(t.TempDir(), "pop.lcs")

	require.NoError(t, SaveFile(path, set, WithCompression(CompressionLZ4)))

	// Overwriting is atomic and leaves no temp files behind.
	require.NoError(t, SaveFile(path, set, WithCompression(CompressionZSTD)))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, f := newFactory()
	got, err := OpenFile(path, f)
	require.NoError(t, err)
	requireSamePopulation(t, set, got)

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing"), f)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.True(t, strings.HasPrefix(Compression(7).String(), "compression("))
}
