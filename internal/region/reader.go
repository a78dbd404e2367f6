package region

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// openMaybeGzip opens a file, transparently decompressing .gz inputs.
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip reader: %w", err)
	}
	return &gzipFile{gz: gz, f: f}, nil
}

type gzipFile struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

// ReadTable reads a region table into a map of ID to exon model. Each line is
// tab-separated: id, chromosome, strand, then one or more exon start/end
// column pairs. Used for both the gene pseudo-transcript table (one entry per
// gene) and the transcript table (one entry per transcript).
func ReadTable(path string) (map[string]*ExonModel, error) {
	r, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("open region table: %w", err)
	}
	defer r.Close()

	models := make(map[string]*ExonModel)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		m, err := parseRegionLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		models[m.ID] = m
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read region table: %w", err)
	}
	return models, nil
}

// parseRegionLine parses a single region table line into an exon model. Exon
// intervals keep their column order.
func parseRegionLine(line string) (*ExonModel, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 5 {
		return nil, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}
	if (len(fields)-3)%2 != 0 {
		return nil, fmt.Errorf("unpaired exon boundary column (fields=%d)", len(fields))
	}

	m := &ExonModel{
		ID:     fields[0],
		Chrom:  fields[1],
		Strand: fields[2],
	}
	if m.Strand != Plus && m.Strand != Minus {
		return nil, fmt.Errorf("invalid strand %q for %s", m.Strand, m.ID)
	}

	for i := 3; i < len(fields); i += 2 {
		start, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("exon start %q: %w", fields[i], err)
		}
		end, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("exon end %q: %w", fields[i+1], err)
		}
		if start > end {
			return nil, fmt.Errorf("exon start %d after end %d for %s", start, end, m.ID)
		}
		m.Exons = append(m.Exons, Interval{Start: start, End: end})
	}

	return m, nil
}

// ReadIndex reads the gene/transcript index: tab-separated (gene_id,
// transcript_id) pairs. Transcript order per gene follows the file; duplicate
// pairs keep their first occurrence.
func ReadIndex(path string) (map[string][]string, error) {
	r, err := openMaybeGzip(path)
	if err != nil {
		return nil, fmt.Errorf("open gene/transcript index: %w", err)
	}
	defer r.Close()

	index := make(map[string][]string)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 fields, got %d", path, lineNum, len(fields))
		}
		gene, transcript := fields[0], fields[1]
		key := gene + "\t" + transcript
		if seen[key] {
			continue
		}
		seen[key] = true
		index[gene] = append(index[gene], transcript)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gene/transcript index: %w", err)
	}
	return index, nil
}
