package breakpoint

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read reads breakpoint records from a tab-separated file of (cluster_id,
// reference, strand, position) rows, preserving input order. Supports
// gzipped input.
func Read(path string) ([]Breakpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open breakpoint file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	return ReadFrom(r)
}

// ReadFrom reads breakpoint records from an io.Reader, preserving input order.
func ReadFrom(r io.Reader) ([]Breakpoint, error) {
	var breaks []Breakpoint
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", lineNum, len(fields))
		}

		pos, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: position %q: %w", lineNum, fields[3], err)
		}

		breaks = append(breaks, Breakpoint{
			Cluster:   fields[0],
			Reference: fields[1],
			Strand:    fields[2],
			Position:  pos,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read breakpoints: %w", err)
	}
	return breaks, nil
}
