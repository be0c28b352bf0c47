// Package input caches generated benchmark inputs on disk.
//
// A dataset is identified by its length and modulus. The first request for a
// pair generates random values and writes them to the cache root; every later
// request, in this process or another, reads back the same values.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	"github.com/maypok86/otter/v2"

	"github.com/tstromberg/gosortmark/internal/workload"
)

// DefaultRoot is the cache directory used by the CLI.
const DefaultRoot = "benches/input_data"

// memoSize bounds how many decoded datasets stay in memory.
const memoSize = 64

// Key identifies a dataset.
type Key struct {
	Len     int
	Modulus int32
}

// FileName returns the cache file name for k.
func (k Key) FileName() string {
	return fmt.Sprintf("input_%d_%d", k.Len, k.Modulus)
}

// Store reads and writes cached datasets under a root directory.
type Store struct {
	root string
	memo *otter.Cache[Key, []int32]

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Store.
type Option func(*Store)

// WithRand replaces the process-seeded generator used for new datasets.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		s.rng = r
	}
}

// New returns a Store rooted at root.
func New(root string, opts ...Option) *Store {
	s := &Store{
		root: root,
		memo: otter.Must(&otter.Options[Key, []int32]{MaximumSize: memoSize}),
		rng:  workload.NewSource(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns where the dataset for (n, modulus) is cached.
func (s *Store) Path(n int, modulus int32) string {
	return filepath.Join(s.root, Key{Len: n, Modulus: modulus}.FileName())
}

// Exists reports whether a cache file for (n, modulus) is present.
func (s *Store) Exists(n int, modulus int32) bool {
	_, err := os.Stat(s.Path(n, modulus))
	return err == nil
}

type diskLoader struct {
	s *Store
}

func (l diskLoader) Load(_ context.Context, key Key) ([]int32, error) {
	return l.s.readOrGenerate(key)
}

func (l diskLoader) Reload(_ context.Context, key Key, _ []int32) ([]int32, error) {
	return l.s.readOrGenerate(key)
}

// Obtain returns the dataset for (n, modulus), generating and persisting it
// on first use. The returned slice is shared and must not be modified.
func (s *Store) Obtain(ctx context.Context, n int, modulus int32) ([]int32, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid length %d", n)
	}
	if modulus == 0 {
		return nil, errors.New("modulus must be non-zero")
	}
	return s.memo.Get(ctx, Key{Len: n, Modulus: modulus}, diskLoader{s: s})
}

func (s *Store) readOrGenerate(key Key) ([]int32, error) {
	path := filepath.Join(s.root, key.FileName())
	if _, err := os.Stat(path); err == nil {
		return read(path, key.Len)
	}
	return s.generate(path, key)
}

// read decodes at most the bytes an entry of length n should occupy.
// The decoded count is trusted as-is.
func read(path string, n int) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	buf := make([]byte, encodedSize(n))
	got, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	vals, err := Decode(buf[:got])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return vals, nil
}

func (s *Store) generate(path string, key Key) ([]int32, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil { //nolint:gosec // G301: 0755 is standard dir permission
		return nil, fmt.Errorf("create cache root: %w", err)
	}

	f, err := create(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	vals := workload.Remainder(s.rng, key.Len, key.Modulus)
	s.mu.Unlock()

	if _, err := f.Write(Encode(vals)); err != nil {
		f.Close() //nolint:errcheck,gosec // write error takes precedence
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	return vals, nil
}

// create opens path exclusively. A concurrent creator wins; the loser gets
// an error wrapping fs.ErrExist and does not retry.
func create(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // G302: cache files are not secret
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create %s: lost race to another process: %w", path, err)
		}
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
