package input

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(42, 43)))
}

func TestKeyFileName(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Len: 25, Modulus: 5}, "input_25_5"},
		{Key{Len: 500, Modulus: 1000}, "input_500_1000"},
		{Key{Len: 0, Modulus: -3}, "input_0_-3"},
	}
	for _, tc := range tests {
		if got := tc.key.FileName(); got != tc.want {
			t.Errorf("%+v.FileName() = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestObtainGeneratesThenLoads(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	first := New(root, seeded())
	if first.Exists(25, 5) {
		t.Fatal("cache entry exists before first use")
	}

	generated, err := first.Obtain(ctx, 25, 5)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if len(generated) != 25 {
		t.Fatalf("got %d values, want 25", len(generated))
	}
	for i, v := range generated {
		if v <= -5 || v >= 5 {
			t.Errorf("generated[%d] = %d, want in (-5, 5)", i, v)
		}
	}

	path := first.Path(25, 5)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if len(before) != 8+25*4 {
		t.Errorf("cache file is %d bytes, want %d", len(before), 8+25*4)
	}
	statBefore, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	// A fresh store has an empty memo, so this reads the file.
	second := New(root)
	loaded, err := second.Obtain(ctx, 25, 5)
	if err != nil {
		t.Fatalf("Obtain (load): %v", err)
	}
	if !slices.Equal(generated, loaded) {
		t.Errorf("loaded %v, generated %v", loaded, generated)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("cache file contents changed on reload")
	}
	statAfter, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !statAfter.ModTime().Equal(statBefore.ModTime()) {
		t.Errorf("cache file rewritten: mtime %v -> %v", statBefore.ModTime(), statAfter.ModTime())
	}
	if Fingerprint(generated) != Fingerprint(loaded) {
		t.Error("fingerprints differ between generated and loaded data")
	}
}

func TestObtainMemoizes(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), seeded())

	first, err := s.Obtain(ctx, 500, 1000)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if err := os.Remove(s.Path(500, 1000)); err != nil {
		t.Fatalf("remove: %v", err)
	}

	second, err := s.Obtain(ctx, 500, 1000)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Error("memoized dataset differs from first result")
	}
	if s.Exists(500, 1000) {
		t.Error("memo hit should not regenerate the cache file")
	}
}

func TestObtainInvalidArguments(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Obtain(context.Background(), -1, 5); err == nil {
		t.Error("expected error for negative length")
	}
	if _, err := s.Obtain(context.Background(), 10, 0); err == nil {
		t.Error("expected error for zero modulus")
	}
}

func TestObtainEmpty(t *testing.T) {
	s := New(t.TempDir())
	vals, err := s.Obtain(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if len(vals) != 0 {
		t.Errorf("expected empty dataset, got %v", vals)
	}
	data, err := os.ReadFile(s.Path(0, 5))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, make([]byte, 8)) {
		t.Errorf("empty dataset encoded as %v", data)
	}
}

func TestObtainCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "benches", "input_data")
	s := New(root)
	if _, err := s.Obtain(context.Background(), 25, 10); err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if !s.Exists(25, 10) {
		t.Error("cache file not created under missing root")
	}
}

func TestObtainCorruptEntry(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short prefix", []byte{1, 0, 0}},
		{"truncated values", append(Encode([]int32{1, 2, 3, 4, 5}), 0)[:8+4*2]},
		{"count too large", Encode(make([]int32, 30))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(t.TempDir())
			if err := os.WriteFile(s.Path(5, 5), tc.data, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := s.Obtain(context.Background(), 5, 5)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Obtain error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestObtainTrustsExistingEntry(t *testing.T) {
	s := New(t.TempDir())

	// Fewer values than requested, plus trailing garbage: the entry is
	// authoritative and is not regenerated.
	data := append(Encode([]int32{9, -9, 3}), 0xde, 0xad)
	if err := os.WriteFile(s.Path(5, 5), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	vals, err := s.Obtain(context.Background(), 5, 5)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if want := []int32{9, -9, 3}; !slices.Equal(vals, want) {
		t.Errorf("got %v, want %v", vals, want)
	}
	after, err := os.ReadFile(s.Path(5, 5))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(after, data) {
		t.Error("existing entry was modified")
	}
}

func TestCreateIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input_25_5")
	f, err := create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if _, err := create(path); !errors.Is(err, fs.ErrExist) {
		t.Errorf("second create error = %v, want fs.ErrExist", err)
	}
}

func TestObtainDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	a, err := New(t.TempDir(), seeded()).Obtain(ctx, 100, 100)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	b, err := New(t.TempDir(), seeded()).Obtain(ctx, 100, 100)
	if err != nil {
		t.Fatalf("Obtain: %v", err)
	}
	if !slices.Equal(a, b) {
		t.Error("same seed produced different datasets")
	}
}
