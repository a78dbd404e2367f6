// Package region provides exon interval models and region table loading.
package region

// Strand values as they appear in region and breakpoint tables.
const (
	Plus  = "+"
	Minus = "-"
)

// Interval is a closed range of 1-based genomic coordinates.
type Interval struct {
	Start int
	End   int
}

// Len returns the number of bases covered by the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Contains returns true if the given position is within the interval.
func (iv Interval) Contains(pos int) bool {
	return pos >= iv.Start && pos <= iv.End
}

// ExonModel represents a gene pseudo-transcript or a real transcript as an
// ordered list of exon intervals. Exons keep the order supplied by the region
// table; offset computations walk this order unmodified, strand only controls
// coordinate reflection.
type ExonModel struct {
	ID     string
	Chrom  string
	Strand string // "+" or "-"
	Exons  []Interval
}

// Length returns the combined length of all exons.
func (m *ExonModel) Length() int {
	total := 0
	for _, e := range m.Exons {
		total += e.Len()
	}
	return total
}

// IsReverseStrand returns true if the model is on the reverse strand.
func (m *ExonModel) IsReverseStrand() bool {
	return m.Strand == Minus
}

// Tables bundles the immutable region data loaded once at startup: gene
// pseudo-transcript models, per-transcript models, and the gene to transcript
// index. It is read-only after loading and safe for concurrent use.
type Tables struct {
	Genes       map[string]*ExonModel
	Transcripts map[string]*ExonModel
	Index       map[string][]string
}

// LoadTables reads the gene region table, the transcript region table and the
// gene/transcript index from their respective files.
func LoadTables(genesPath, transcriptsPath, indexPath string) (*Tables, error) {
	genes, err := ReadTable(genesPath)
	if err != nil {
		return nil, err
	}
	transcripts, err := ReadTable(transcriptsPath)
	if err != nil {
		return nil, err
	}
	index, err := ReadIndex(indexPath)
	if err != nil {
		return nil, err
	}
	return &Tables{Genes: genes, Transcripts: transcripts, Index: index}, nil
}
