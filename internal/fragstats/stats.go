// Package fragstats reads fragment-length statistics produced upstream in the
// pipeline.
package fragstats

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Keys the support counter needs from the statistics file.
const (
	KeyMean   = "fraglength_mean"
	KeyStddev = "fraglength_stddev"
)

// MalformedStatsError reports a statistics source that is not exactly two
// equal-length tab-separated rows, or is missing a required key.
type MalformedStatsError struct {
	Reason string
}

func (e *MalformedStatsError) Error() string {
	return "malformed fragment-length statistics: " + e.Reason
}

// Stats is a mapping of named numeric statistics.
type Stats map[string]float64

// Read loads statistics from a file containing exactly two tab-separated
// lines: header keys, then values.
func Read(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom loads statistics from an io.Reader.
func ReadFrom(r io.Reader) (Stats, error) {
	scanner := bufio.NewScanner(r)

	var rows [][]string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}

	if len(rows) != 2 {
		return nil, &MalformedStatsError{Reason: fmt.Sprintf("expected 2 rows, got %d", len(rows))}
	}
	keys, values := rows[0], rows[1]
	if len(keys) != len(values) {
		return nil, &MalformedStatsError{
			Reason: fmt.Sprintf("header has %d columns, values have %d", len(keys), len(values)),
		}
	}

	stats := make(Stats, len(keys))
	for i, key := range keys {
		v, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			return nil, &MalformedStatsError{Reason: fmt.Sprintf("value %q for key %q is not numeric", values[i], key)}
		}
		stats[key] = v
	}
	return stats, nil
}

// MaxFragmentLength combines the fragment-length mean and standard deviation
// as floor(mean + 3*stddev), the window half-width used when querying
// alignments around a breakpoint.
func (s Stats) MaxFragmentLength() (int, error) {
	mean, ok := s[KeyMean]
	if !ok {
		return 0, &MalformedStatsError{Reason: "missing key " + KeyMean}
	}
	stddev, ok := s[KeyStddev]
	if !ok {
		return 0, &MalformedStatsError{Reason: "missing key " + KeyStddev}
	}
	return int(math.Floor(mean + 3*stddev)), nil
}
