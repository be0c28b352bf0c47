package main

import (
	"slices"
	"testing"
)

func TestParseIntList(t *testing.T) {
	tests := []struct {
		input      string
		multiplier int
		want       []int
	}{
		{"25,500", 1, []int{25, 500}},
		{" 5, 10 ,100", 1, []int{5, 10, 100}},
		{"16,32", 1024, []int{16384, 32768}},
		{"5,,x,-7", 1, []int{5, -7}},
		{"", 1, nil},
	}
	for _, tc := range tests {
		got := parseIntList(tc.input, tc.multiplier)
		if !slices.Equal(got, tc.want) {
			t.Errorf("parseIntList(%q, %d) = %v, want %v", tc.input, tc.multiplier, got, tc.want)
		}
	}
}

func TestParseModuli(t *testing.T) {
	got, err := parseModuli("5,10,100,1000")
	if err != nil {
		t.Fatalf("parseModuli: %v", err)
	}
	if want := []int32{5, 10, 100, 1000}; !slices.Equal(got, want) {
		t.Errorf("parseModuli = %v, want %v", got, want)
	}

	if got, err := parseModuli("-3"); err != nil || !slices.Equal(got, []int32{-3}) {
		t.Errorf("parseModuli(-3) = %v, %v", got, err)
	}

	for _, bad := range []string{"0", "5,0", "4294967296", "", "abc"} {
		if _, err := parseModuli(bad); err == nil {
			t.Errorf("parseModuli(%q) succeeded, want error", bad)
		}
	}
}

func TestParseLengths(t *testing.T) {
	got, err := parseLengths("0,25,500")
	if err != nil {
		t.Fatalf("parseLengths: %v", err)
	}
	if want := []int{0, 25, 500}; !slices.Equal(got, want) {
		t.Errorf("parseLengths = %v, want %v", got, want)
	}
	for _, bad := range []string{"-1", "", "x"} {
		if _, err := parseLengths(bad); err == nil {
			t.Errorf("parseLengths(%q) succeeded, want error", bad)
		}
	}
}

func TestJoinInts(t *testing.T) {
	if got := joinInts([]int{25, 500}); got != "25,500" {
		t.Errorf("joinInts = %q", got)
	}
	if got := joinInts([]int32{5, -10}); got != "5,-10" {
		t.Errorf("joinInts = %q", got)
	}
}
