// Package breakpoint provides candidate fusion breakpoint records and parsing.
package breakpoint

import (
	"fmt"
	"regexp"
)

// Breakpoint is one candidate fusion junction reported for a read cluster.
// Position is in the gene's pseudo-transcript coordinate space. A cluster may
// carry several records, one per supporting split-read orientation.
type Breakpoint struct {
	Cluster   string
	Reference string // free-form reference string embedding a gene identifier
	Strand    string
	Position  int
}

// Gene identifiers are an Ensembl-style fixed prefix followed by digits.
var geneIDRe = regexp.MustCompile(`ENSG\d+`)

// MalformedReferenceError reports a breakpoint reference string with no
// recognizable gene identifier.
type MalformedReferenceError struct {
	Cluster   string
	Reference string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("cluster %s: no gene identifier in reference %q", e.Cluster, e.Reference)
}

// GeneID extracts the gene identifier embedded in the reference string.
func (b *Breakpoint) GeneID() (string, error) {
	id := geneIDRe.FindString(b.Reference)
	if id == "" {
		return "", &MalformedReferenceError{Cluster: b.Cluster, Reference: b.Reference}
	}
	return id, nil
}
