package align

import (
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRef(t *testing.T) *sam.Reference {
	t.Helper()
	ref, err := sam.NewReference("ENST000001", "", "", 10000, nil, nil)
	require.NoError(t, err)
	return ref
}

func TestNewSegment(t *testing.T) {
	ref := testRef(t)

	rec := &sam.Record{
		Name:  "read1",
		Ref:   ref,
		Pos:   99, // 0-based
		Flags: sam.Paired | sam.ProperPair,
		Seq:   sam.NewSeq([]byte("ACGTACGTACGTACGTACGT")), // 20 bases
	}

	seg := NewSegment(rec)
	assert.Equal(t, "read1", seg.Name)
	assert.Equal(t, "+", seg.Strand)
	assert.Equal(t, 100, seg.Start)
	assert.Equal(t, 119, seg.End) // start + seq length - 1
	assert.Equal(t, "ENST000001", seg.Transcript)
}

func TestNewSegment_ReverseStrand(t *testing.T) {
	rec := &sam.Record{
		Name:  "read1",
		Ref:   testRef(t),
		Pos:   199,
		Flags: sam.Paired | sam.ProperPair | sam.Reverse,
		Seq:   sam.NewSeq([]byte("ACGTACGTAC")),
	}

	seg := NewSegment(rec)
	assert.Equal(t, "-", seg.Strand)
	assert.Equal(t, 200, seg.Start)
	assert.Equal(t, 209, seg.End)
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name  string
		flags sam.Flags
		want  bool
	}{
		{"proper pair", sam.Paired | sam.ProperPair, true},
		{"reverse proper pair", sam.Paired | sam.ProperPair | sam.Reverse, true},
		{"unmapped", sam.Paired | sam.ProperPair | sam.Unmapped, false},
		{"secondary", sam.Paired | sam.ProperPair | sam.Secondary, false},
		{"supplementary", sam.Paired | sam.ProperPair | sam.Supplementary, false},
		{"not properly paired", sam.Paired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &sam.Record{Flags: tt.flags}
			assert.Equal(t, tt.want, usable(rec))
		})
	}
}
