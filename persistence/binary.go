package persistence

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hupe1980/lcsgo/bitfield"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/population"
)

// recordSize is the fixed part of a body record, before the chromosome.
const recordSize = 8 + 8 + 8 + 8 + 1

var byteOrder = binary.LittleEndian

// Save writes set to w.
func Save(w io.Writer, set *population.ClassifierSet, optFns ...Option) error {
	o := applyOptions(optFns)

	var body bytes.Buffer
	if err := writeBody(&body, set); err != nil {
		return err
	}
	raw := body.Bytes()

	stored, used, err := compress(raw, o.compression)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	header := FileHeader{
		Magic:           MagicNumber,
		Version:         Version,
		Compression:     used,
		MacroCount:      uint64(set.Len()),
		TotalNumerosity: uint64(set.TotalNumerosity()),
		RawLength:       uint64(len(raw)),
		StoredLength:    uint64(len(stored)),
		Checksum:        BodyChecksum(raw),
	}
	if err := binary.Write(w, byteOrder, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

func writeBody(w io.Writer, set *population.ClassifierSet) error {
	var rec [recordSize]byte
	for i, m := range set.All() {
		c := m.Classifier
		byteOrder.PutUint64(rec[0:], uint64(m.Numerosity))
		byteOrder.PutUint64(rec[8:], math.Float64bits(c.Fitness))
		byteOrder.PutUint64(rec[16:], uint64(int64(c.Experience)))
		byteOrder.PutUint64(rec[24:], uint64(int64(c.Timestamp)))
		rec[32] = 0
		if c.CanSubsume {
			rec[32] |= flagCanSubsume
		}
		if _, err := w.Write(rec[:]); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
		if _, err := c.Chromosome().WriteTo(w); err != nil {
			return fmt.Errorf("write chromosome %d: %w", i, err)
		}
	}
	return nil
}

// ReadHeader reads and validates the file header.
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, byteOrder, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}
	if header.Compression > CompressionZSTD {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(header.Compression))
	}
	if header.RawLength > maxBodyBytes || header.StoredLength > maxBodyBytes {
		return nil, fmt.Errorf("%w: body too large", ErrCorruptPopulation)
	}
	return &header, nil
}

// readBody reads exactly n bytes. The buffer grows with the data actually
// read, so a header claiming a large body cannot force the allocation alone.
func readBody(r io.Reader, n uint64) ([]byte, error) {
	var buf bytes.Buffer
	got, err := buf.ReadFrom(io.LimitReader(r, int64(n)))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrCorruptPopulation, err)
	}
	if uint64(got) != n {
		return nil, fmt.Errorf("%w: read body: %d of %d bytes", ErrCorruptPopulation, got, n)
	}
	return buf.Bytes(), nil
}

// Open reads a population written by Save. Classifiers are rebuilt with
// factory and get fresh serials.
func Open(r io.Reader, factory *classifier.Factory, optFns ...Option) (*population.ClassifierSet, error) {
	o := applyOptions(optFns)

	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	stored, err := readBody(r, header.StoredLength)
	if err != nil {
		return nil, err
	}
	raw, err := decompress(stored, header.Compression, header.RawLength)
	if err != nil {
		return nil, err
	}

	if err := verifyBody(raw, header.Checksum); err != nil {
		return nil, err
	}
	body := bytes.NewReader(raw)

	set := population.New(o.setOptions...)
	control := set.ControlStrategy()
	set.SetControlStrategy(nil)

	for i := uint64(0); i < header.MacroCount; i++ {
		c, numerosity, err := readRecord(body, factory)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrCorruptPopulation, i, err)
		}
		set.Add(c, numerosity, false)
	}

	if body.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptPopulation, body.Len())
	}
	if uint64(set.TotalNumerosity()) != header.TotalNumerosity {
		return nil, fmt.Errorf("%w: total numerosity %d, header says %d",
			ErrCorruptPopulation, set.TotalNumerosity(), header.TotalNumerosity)
	}

	set.SetControlStrategy(control)
	return set, nil
}

func readRecord(r io.Reader, factory *classifier.Factory) (*classifier.Classifier, int, error) {
	var rec [recordSize]byte
	if _, err := io.ReadFull(r, rec[:]); err != nil {
		return nil, 0, err
	}
	numerosity := byteOrder.Uint64(rec[0:])
	if numerosity == 0 || numerosity > math.MaxInt32 {
		return nil, 0, fmt.Errorf("invalid numerosity %d", numerosity)
	}

	chromosome := bitfield.New(0)
	if _, err := chromosome.ReadFrom(r); err != nil {
		return nil, 0, err
	}

	c := factory.Restore(chromosome, classifier.Metadata{
		Fitness:    math.Float64frombits(byteOrder.Uint64(rec[8:])),
		Experience: int(int64(byteOrder.Uint64(rec[16:]))),
		Timestamp:  int(int64(byteOrder.Uint64(rec[24:]))),
		CanSubsume: rec[32]&flagCanSubsume != 0,
	})
	return c, int(numerosity), nil
}

// Marshal returns the encoded form of set.
func Marshal(set *population.ClassifierSet, optFns ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(&buf, set, optFns...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a population produced by Marshal or Save.
func Unmarshal(data []byte, factory *classifier.Factory, optFns ...Option) (*population.ClassifierSet, error) {
	return Open(bytes.NewReader(data), factory, optFns...)
}

// SaveFile atomically writes set to filename.
func SaveFile(filename string, set *population.ClassifierSet, optFns ...Option) error {
	return SaveToFile(filename, func(w io.Writer) error {
		return Save(w, set, optFns...)
	})
}

// OpenFile reads a population from filename.
func OpenFile(filename string, factory *classifier.Factory, optFns ...Option) (*population.ClassifierSet, error) {
	var set *population.ClassifierSet
	err := LoadFromFile(filename, func(r io.Reader) error {
		var err error
		set, err = Open(r, factory, optFns...)
		return err
	})
	return set, err
}

// IsCorrupt reports whether err stems from damaged population data.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptPopulation)
}

// SaveToFile is a helper to save data to a file.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// LoadFromFile is a helper to load data from a file.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return readFunc(bufio.NewReaderSize(f, 256*1024))
}
