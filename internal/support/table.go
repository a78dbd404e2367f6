package support

// Table is the two-level cluster to gene to count container holding the final
// support counts. Clusters and genes iterate in first-seen order; setting an
// existing (cluster, gene) key overwrites its count.
type Table struct {
	clusters []string
	genes    map[string][]string
	counts   map[string]map[string]int
}

// NewTable creates an empty support table.
func NewTable() *Table {
	return &Table{
		genes:  make(map[string][]string),
		counts: make(map[string]map[string]int),
	}
}

// Set records the support count for a (cluster, gene) key. A later Set for
// the same key replaces the earlier count.
func (t *Table) Set(cluster, gene string, count int) {
	byGene, ok := t.counts[cluster]
	if !ok {
		byGene = make(map[string]int)
		t.counts[cluster] = byGene
		t.clusters = append(t.clusters, cluster)
	}
	if _, ok := byGene[gene]; !ok {
		t.genes[cluster] = append(t.genes[cluster], gene)
	}
	byGene[gene] = count
}

// Get returns the count for a (cluster, gene) key.
func (t *Table) Get(cluster, gene string) (int, bool) {
	byGene, ok := t.counts[cluster]
	if !ok {
		return 0, false
	}
	count, ok := byGene[gene]
	return count, ok
}

// Clusters returns cluster IDs in first-seen order.
func (t *Table) Clusters() []string {
	return t.clusters
}

// Genes returns the genes recorded for a cluster in first-seen order.
func (t *Table) Genes(cluster string) []string {
	return t.genes[cluster]
}

// Len returns the number of (cluster, gene) keys in the table.
func (t *Table) Len() int {
	n := 0
	for _, genes := range t.genes {
		n += len(genes)
	}
	return n
}
