// Package coord converts between genomic coordinates and concatenated-exon
// (cDNA) coordinates over an exon model.
//
// Both mappers are total over all integer inputs: positions outside the
// annotated exons extrapolate linearly beyond the first or last exon
// (GenomicPosition) or clamp/snap to exon boundaries (TranscriptPosition).
// Callers rely on this when querying a fixed bias away from splice boundaries.
package coord

import "github.com/fusionspan/fusionspan/internal/region"

// GenomicPosition maps a 1-based position in the model's concatenated-exon
// space to a genomic coordinate.
//
// On the reverse strand the position is reflected through the total exon
// length before anything else, including the upstream extrapolation case.
// Positions below 1 extrapolate linearly upstream of the first stored exon;
// positions beyond the total length extrapolate linearly downstream of the
// last stored exon.
func GenomicPosition(pos int, m *region.ExonModel) int {
	if m.IsReverseStrand() {
		pos = m.Length() - pos + 1
	}

	if pos < 1 {
		return m.Exons[0].Start + pos - 1
	}

	offset := 0
	for _, e := range m.Exons {
		if pos <= offset+e.Len() {
			return pos - offset - 1 + e.Start
		}
		offset += e.Len()
	}

	return pos - offset + m.Exons[len(m.Exons)-1].End
}

// TranscriptPosition maps a genomic coordinate to the model's
// concatenated-exon space.
//
// A genomic position inside an intron (or upstream of every exon) snaps
// forward to the first base of the next exon in stored order; a position
// beyond every exon clamps to the last base of the model. Because of the
// forward snap this is not the exact inverse of GenomicPosition for intronic
// inputs. On the reverse strand the result is reflected through the total
// exon length as the final step.
func TranscriptPosition(gpos int, m *region.ExonModel) int {
	total := m.Length()
	pos := total

	offset := 0
	for _, e := range m.Exons {
		if gpos <= e.End {
			if gpos < e.Start {
				pos = offset + 1
			} else {
				pos = offset + gpos - e.Start + 1
			}
			break
		}
		offset += e.Len()
	}

	if m.IsReverseStrand() {
		pos = total - pos + 1
	}
	return pos
}
