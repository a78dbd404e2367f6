// Package align provides read alignment segments and the indexed BAM window
// query used to fetch read pairs near a breakpoint.
package align

import "github.com/biogo/hts/sam"

// Segment is one aligned read mate on a transcript reference. Start and End
// are 1-based inclusive; End is Start + sequence length - 1.
type Segment struct {
	Name       string
	Strand     string // "+" or "-"
	Start      int
	End        int
	Transcript string
}

// NewSegment derives a segment from a BAM record.
func NewSegment(r *sam.Record) Segment {
	strand := "+"
	if r.Flags&sam.Reverse != 0 {
		strand = "-"
	}
	start := r.Pos + 1
	return Segment{
		Name:       r.Name,
		Strand:     strand,
		Start:      start,
		End:        start + r.Seq.Length - 1,
		Transcript: r.Ref.Name(),
	}
}

// usable reports whether a record should contribute breakpoint evidence:
// mapped, primary, and part of a properly paired fragment.
func usable(r *sam.Record) bool {
	if r.Flags&sam.Unmapped != 0 {
		return false
	}
	if r.Flags&(sam.Secondary|sam.Supplementary) != 0 {
		return false
	}
	return r.Flags&sam.ProperPair != 0
}
