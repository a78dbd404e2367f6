// Package output provides support table output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fusionspan/fusionspan/internal/support"
)

// TabWriter writes support counts in tab-delimited format, one
// (cluster, gene, count) row per key, grouped by cluster.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// Write writes a single support row.
func (tw *TabWriter) Write(cluster, gene string, count int) error {
	_, err := fmt.Fprintf(tw.w, "%s\t%s\t%d\n", cluster, gene, count)
	return err
}

// WriteTable writes all rows of a support table, clusters in first-seen
// order and genes in first-seen order within each cluster.
func (tw *TabWriter) WriteTable(t *support.Table) error {
	for _, cluster := range t.Clusters() {
		for _, gene := range t.Genes(cluster) {
			count, _ := t.Get(cluster, gene)
			if err := tw.Write(cluster, gene, count); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
