package support

import "fmt"

// InvalidStrandError reports a breakpoint strand outside {"+","-"}.
type InvalidStrandError struct {
	Cluster string
	Strand  string
}

func (e *InvalidStrandError) Error() string {
	return fmt.Sprintf("cluster %s: invalid strand %q", e.Cluster, e.Strand)
}

// MissingRegionError reports a gene or transcript with no exon model in the
// region tables.
type MissingRegionError struct {
	Kind string // "gene" or "transcript"
	ID   string
}

func (e *MissingRegionError) Error() string {
	return fmt.Sprintf("no region model for %s %s", e.Kind, e.ID)
}

// AlignmentConsistencyError reports a window query that returned a segment
// for a transcript other than the one requested. It signals a broken
// collaborator, not bad input data.
type AlignmentConsistencyError struct {
	Requested string
	Returned  string
}

func (e *AlignmentConsistencyError) Error() string {
	return fmt.Sprintf("alignment query for transcript %s returned segment on %s", e.Requested, e.Returned)
}
