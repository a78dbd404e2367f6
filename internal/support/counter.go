// Package support counts read pairs spanning candidate fusion breakpoints.
package support

import (
	"go.uber.org/zap"

	"github.com/fusionspan/fusionspan/internal/align"
	"github.com/fusionspan/fusionspan/internal/breakpoint"
	"github.com/fusionspan/fusionspan/internal/coord"
	"github.com/fusionspan/fusionspan/internal/region"
)

// WindowQuery fetches read segments overlapping a 1-based inclusive
// coordinate window on a transcript reference.
type WindowQuery interface {
	Fetch(transcript string, start, end int) ([]align.Segment, error)
}

// Counter computes spanning read-pair support for breakpoints. The region
// tables are read-only; a Counter is safe for concurrent use if its
// WindowQuery is.
type Counter struct {
	tables     *region.Tables
	query      WindowQuery
	maxFragLen int
	spliceBias int
	logger     *zap.Logger
}

// NewCounter creates a counter over immutable region tables and an alignment
// window query. maxFragLen is the window half-width around the mapped
// breakpoint; spliceBias is the fixed offset applied around splice boundaries
// before coordinate mapping.
func NewCounter(tables *region.Tables, query WindowQuery, maxFragLen, spliceBias int) *Counter {
	return &Counter{
		tables:     tables,
		query:      query,
		maxFragLen: maxFragLen,
		spliceBias: spliceBias,
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for per-breakpoint progress messages.
func (c *Counter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Count processes breakpoints in input order and returns the support table.
// Any parse or consistency failure aborts the whole run; there is no partial
// result mode. When one cluster carries several breakpoint records for the
// same gene, the last record's count wins.
func (c *Counter) Count(breaks []breakpoint.Breakpoint) (*Table, error) {
	table := NewTable()
	for i := range breaks {
		gene, total, err := c.countOne(&breaks[i])
		if err != nil {
			return nil, err
		}
		table.Set(breaks[i].Cluster, gene, total)
	}
	return table, nil
}

// countOne resolves one breakpoint record to its gene and spanning-pair
// total, summed across the gene's transcripts.
func (c *Counter) countOne(bp *breakpoint.Breakpoint) (string, int, error) {
	gene, err := bp.GeneID()
	if err != nil {
		return "", 0, err
	}

	model, ok := c.tables.Genes[gene]
	if !ok {
		return "", 0, &MissingRegionError{Kind: "gene", ID: gene}
	}

	// Query a fixed bias away from the splice boundary, then restore the
	// offset in genomic space so the final coordinate is the true breakpoint.
	var genomic int
	switch bp.Strand {
	case region.Plus:
		genomic = coord.GenomicPosition(bp.Position-c.spliceBias, model) + c.spliceBias
	case region.Minus:
		genomic = coord.GenomicPosition(bp.Position+c.spliceBias, model) - c.spliceBias
	default:
		return "", 0, &InvalidStrandError{Cluster: bp.Cluster, Strand: bp.Strand}
	}

	total := 0
	for _, transcript := range c.tables.Index[gene] {
		txModel, ok := c.tables.Transcripts[transcript]
		if !ok {
			return "", 0, &MissingRegionError{Kind: "transcript", ID: transcript}
		}

		local := coord.TranscriptPosition(genomic, txModel)
		winStart := local - c.maxFragLen
		if winStart < 1 {
			winStart = 1
		}
		winEnd := local + c.maxFragLen

		segs, err := c.query.Fetch(transcript, winStart, winEnd)
		if err != nil {
			return "", 0, err
		}

		n, err := spanningPairs(segs, transcript, local)
		if err != nil {
			return "", 0, err
		}
		total += n
	}

	c.logger.Debug("breakpoint resolved",
		zap.String("cluster", bp.Cluster),
		zap.String("gene", gene),
		zap.Int("genomic", genomic),
		zap.Int("support", total))

	return gene, total, nil
}

// spanningPairs counts read pairs bracketing the local breakpoint position.
// Segments are grouped by read name with one slot per strand; a later segment
// of the same strand replaces the earlier one. A pair spans iff the plus
// mate starts strictly before the position and the minus mate ends strictly
// after it.
func spanningPairs(segs []align.Segment, transcript string, local int) (int, error) {
	type mates struct {
		plus  *align.Segment
		minus *align.Segment
	}

	pairs := make(map[string]*mates)
	for i := range segs {
		s := &segs[i]
		if s.Transcript != transcript {
			return 0, &AlignmentConsistencyError{Requested: transcript, Returned: s.Transcript}
		}
		m := pairs[s.Name]
		if m == nil {
			m = &mates{}
			pairs[s.Name] = m
		}
		switch s.Strand {
		case region.Plus:
			m.plus = s
		case region.Minus:
			m.minus = s
		}
	}

	count := 0
	for _, m := range pairs {
		if m.plus == nil || m.minus == nil {
			continue
		}
		if m.plus.Start < local && m.minus.End > local {
			count++
		}
	}
	return count, nil
}
