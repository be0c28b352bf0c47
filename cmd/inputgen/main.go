// Package main pre-generates or inspects a single cached benchmark input.
// Run in an isolated process to warm the cache before a benchmark run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tstromberg/gosortmark/internal/input"
)

type summary struct {
	Len         int    `json:"len"`
	Modulus     int32  `json:"modulus"`
	Path        string `json:"path"`
	Created     bool   `json:"created"`
	Fingerprint string `json:"fingerprint"`
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stdout, `{"error":%q}`+"\n", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("inputgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	length := fs.Int("len", 25, "number of values")
	modulus := fs.Int("modulus", 5, "bound applied with the remainder operator")
	cacheDir := fs.String("cachedir", input.DefaultRoot, "input cache directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := int32(*modulus) //nolint:gosec // range checked below
	if int(m) != *modulus {
		return fmt.Errorf("modulus %d does not fit in 32 bits", *modulus)
	}

	store := input.New(*cacheDir)
	existed := store.Exists(*length, m)

	vals, err := store.Obtain(ctx, *length, m)
	if err != nil {
		return err
	}

	return json.NewEncoder(out).Encode(summary{
		Len:         *length,
		Modulus:     m,
		Path:        store.Path(*length, m),
		Created:     !existed,
		Fingerprint: fmt.Sprintf("%016x", input.Fingerprint(vals)),
	})
}
