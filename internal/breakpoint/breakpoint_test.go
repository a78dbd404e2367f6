package breakpoint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneID(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
		wantErr   bool
	}{
		{"bare identifier", "ENSG000000123", "ENSG000000123", false},
		{"embedded in annotation", "fusion|ENSG000000123|TP53", "ENSG000000123", false},
		{"first match wins", "ENSG01+ENSG02", "ENSG01", false},
		{"no identifier", "chr12:25398284", "", true},
		{"prefix without digits", "ENSGX", "", true},
		{"empty reference", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp := Breakpoint{Cluster: "c1", Reference: tt.reference}
			got, err := bp.GeneID()
			if tt.wantErr {
				var refErr *MalformedReferenceError
				require.ErrorAs(t, err, &refErr)
				assert.Equal(t, tt.reference, refErr.Reference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFrom(t *testing.T) {
	input := "cluster1\tENSG000001\t+\t1500\n" +
		"cluster1\tENSG000002\t-\t230\n" +
		"cluster2\tfusion|ENSG000001\t+\t42\n"

	breaks, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, breaks, 3)

	// Input order is preserved.
	assert.Equal(t, Breakpoint{Cluster: "cluster1", Reference: "ENSG000001", Strand: "+", Position: 1500}, breaks[0])
	assert.Equal(t, Breakpoint{Cluster: "cluster1", Reference: "ENSG000002", Strand: "-", Position: 230}, breaks[1])
	assert.Equal(t, Breakpoint{Cluster: "cluster2", Reference: "fusion|ENSG000001", Strand: "+", Position: 42}, breaks[2])
}

func TestReadFrom_SkipsBlankLines(t *testing.T) {
	input := "c1\tENSG000001\t+\t100\n\n\nc2\tENSG000002\t-\t200\n"
	breaks, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, breaks, 2)
}

func TestReadFrom_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few fields", "c1\tENSG000001\t+\n"},
		{"non-numeric position", "c1\tENSG000001\t+\tabc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrom(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadFrom_StrandNotValidatedHere(t *testing.T) {
	// Strand validity is the counter's concern; the reader passes it through.
	breaks, err := ReadFrom(strings.NewReader("c1\tENSG000001\t.\t100\n"))
	require.NoError(t, err)
	assert.Equal(t, ".", breaks[0].Strand)
}
