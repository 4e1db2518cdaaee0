package utils

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func LoadEnv(requiredVars []string) (map[string]string, error) {
	_ = godotenv.Load()

	envVars := make(map[string]string)

	for _, key := range requiredVars {
		value := os.Getenv(key)
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", key)
		}
		envVars[key] = value
	}

	return envVars, nil
}

// LookupEnv is LoadEnv for optional variables: missing keys are left out of
// the map instead of failing.
func LookupEnv(optionalVars []string) map[string]string {
	_ = godotenv.Load()

	envVars := make(map[string]string)
	for _, key := range optionalVars {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			envVars[key] = value
		}
	}
	return envVars
}

// maxSeconds is the largest number of seconds a time.Duration can hold.
var maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseSeconds converts a decimal number of seconds ("0.05", "1.2") into a
// duration. Negative values and values too large for a duration are
// rejected.
func ParseSeconds(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds value %q: %w", s, err)
	}
	if err := CheckSeconds(secs); err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return SecondsToDuration(secs), nil
}

// CheckSeconds reports whether secs converts to a non-negative duration
// without overflowing.
func CheckSeconds(secs float64) error {
	switch {
	case math.IsNaN(secs) || math.IsInf(secs, 0):
		return errors.New("invalid seconds value")
	case secs < 0:
		return errors.New("negative seconds value")
	case secs >= maxSeconds:
		return errors.New("seconds value out of range")
	}
	return nil
}

func SecondsToDuration(secs float64) time.Duration {
	return time.Duration(math.Round(secs * float64(time.Second)))
}

func DurationToSeconds(d time.Duration) float64 {
	return d.Seconds()
}
