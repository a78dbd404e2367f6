package support

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusionspan/fusionspan/internal/align"
	"github.com/fusionspan/fusionspan/internal/breakpoint"
	"github.com/fusionspan/fusionspan/internal/region"
)

// parallelTables builds many genes so the pool actually interleaves work.
func parallelTables(n int) (*region.Tables, []breakpoint.Breakpoint) {
	tables := &region.Tables{
		Genes:       make(map[string]*region.ExonModel),
		Transcripts: make(map[string]*region.ExonModel),
		Index:       make(map[string][]string),
	}
	var breaks []breakpoint.Breakpoint

	for i := 0; i < n; i++ {
		gene := fmt.Sprintf("ENSG%06d", i)
		tx := fmt.Sprintf("ENST%06d", i)
		model := &region.ExonModel{
			ID:     gene,
			Chrom:  "1",
			Strand: region.Plus,
			Exons:  []region.Interval{{Start: 1, End: 10000}},
		}
		tables.Genes[gene] = model
		tables.Transcripts[tx] = &region.ExonModel{
			ID:     tx,
			Chrom:  "1",
			Strand: region.Plus,
			Exons:  []region.Interval{{Start: 1, End: 10000}},
		}
		tables.Index[gene] = []string{tx}
		breaks = append(breaks, breakpoint.Breakpoint{
			Cluster:   fmt.Sprintf("c%03d", i%7), // several records per cluster
			Reference: gene,
			Strand:    "+",
			Position:  150,
		})
	}

	return tables, breaks
}

func TestCountParallel_MatchesSerial(t *testing.T) {
	tables, breaks := parallelTables(100)

	query := align.QueryFunc(func(transcript string, start, end int) ([]align.Segment, error) {
		return []align.Segment{
			{Name: "r1", Strand: "+", Start: 100, End: 175, Transcript: transcript},
			{Name: "r1", Strand: "-", Start: 125, End: 200, Transcript: transcript},
		}, nil
	})

	serial, err := NewCounter(tables, query, 300, 0).Count(breaks)
	require.NoError(t, err)

	parallel, err := NewCounter(tables, query, 300, 0).CountParallel(breaks, 8)
	require.NoError(t, err)

	assert.Equal(t, serial.Clusters(), parallel.Clusters())
	for _, cluster := range serial.Clusters() {
		assert.Equal(t, serial.Genes(cluster), parallel.Genes(cluster))
		for _, gene := range serial.Genes(cluster) {
			wantCount, _ := serial.Get(cluster, gene)
			gotCount, ok := parallel.Get(cluster, gene)
			require.True(t, ok)
			assert.Equal(t, wantCount, gotCount)
		}
	}
}

func TestCountParallel_ErrorAborts(t *testing.T) {
	tables, breaks := parallelTables(50)
	breaks[25].Reference = "no-gene-here"

	query := align.QueryFunc(func(transcript string, start, end int) ([]align.Segment, error) {
		return nil, nil
	})

	_, err := NewCounter(tables, query, 300, 0).CountParallel(breaks, 4)
	var refErr *breakpoint.MalformedReferenceError
	require.ErrorAs(t, err, &refErr)
}

func TestCountParallel_ZeroWorkersDefaults(t *testing.T) {
	tables, breaks := parallelTables(10)

	query := align.QueryFunc(func(transcript string, start, end int) ([]align.Segment, error) {
		return nil, nil
	})

	table, err := NewCounter(tables, query, 300, 0).CountParallel(breaks, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, table.Len())
}
