package utils

import (
	"math"
	"testing"
	"time"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"0.05", 50 * time.Millisecond, false},
		{"1.2", 1200 * time.Millisecond, false},
		{"0.3", 300 * time.Millisecond, false},
		{"-0.1", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"", 0, true},
		{"1e10", 0, true},
		{"1e11", 0, true},
		{"1e300", 0, true},
		{"9223372036.854775807", 0, true},
		{"1e9", 1e9 * time.Second, false},
	}

	for _, tt := range tests {
		got, err := ParseSeconds(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSeconds(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeconds(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeconds(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadEnvMissing(t *testing.T) {
	t.Setenv("LYRICPLAYER_TEST_PRESENT", "yes")

	env, err := LoadEnv([]string{"LYRICPLAYER_TEST_PRESENT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env["LYRICPLAYER_TEST_PRESENT"] != "yes" {
		t.Errorf("expected value 'yes', got %q", env["LYRICPLAYER_TEST_PRESENT"])
	}

	if _, err := LoadEnv([]string{"LYRICPLAYER_TEST_SURELY_ABSENT"}); err == nil {
		t.Error("expected error for missing variable")
	}
}

func TestLookupEnvSkipsMissing(t *testing.T) {
	t.Setenv("LYRICPLAYER_TEST_OPTIONAL", "1.5")

	env := LookupEnv([]string{"LYRICPLAYER_TEST_OPTIONAL", "LYRICPLAYER_TEST_SURELY_ABSENT"})
	if len(env) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(env), env)
	}
	if env["LYRICPLAYER_TEST_OPTIONAL"] != "1.5" {
		t.Errorf("unexpected value %q", env["LYRICPLAYER_TEST_OPTIONAL"])
	}
}

func TestCheckSeconds(t *testing.T) {
	for _, secs := range []float64{-1, 1e10, math.MaxFloat64, math.NaN(), math.Inf(1)} {
		if err := CheckSeconds(secs); err == nil {
			t.Errorf("CheckSeconds(%v) expected error", secs)
		}
	}
	for _, secs := range []float64{0, 0.05, 1.2, 3600} {
		if err := CheckSeconds(secs); err != nil {
			t.Errorf("CheckSeconds(%v) unexpected error: %v", secs, err)
		}
	}
}
