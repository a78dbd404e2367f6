package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_FirstSeenOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Set("c2", "ENSG000002", 3)
	tbl.Set("c1", "ENSG000001", 1)
	tbl.Set("c2", "ENSG000001", 0)

	assert.Equal(t, []string{"c2", "c1"}, tbl.Clusters())
	assert.Equal(t, []string{"ENSG000002", "ENSG000001"}, tbl.Genes("c2"))
	assert.Equal(t, []string{"ENSG000001"}, tbl.Genes("c1"))
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_SetOverwrites(t *testing.T) {
	tbl := NewTable()
	tbl.Set("c1", "ENSG000001", 5)
	tbl.Set("c1", "ENSG000001", 2)

	got, ok := tbl.Get("c1", "ENSG000001")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	// Overwriting does not duplicate iteration entries.
	assert.Equal(t, []string{"ENSG000001"}, tbl.Genes("c1"))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_GetMissing(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Get("c1", "ENSG000001")
	assert.False(t, ok)

	tbl.Set("c1", "ENSG000001", 1)
	_, ok = tbl.Get("c1", "ENSG000002")
	assert.False(t, ok)
}
