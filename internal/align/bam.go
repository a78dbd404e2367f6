package align

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/bgzf/index"
	"github.com/biogo/hts/sam"
)

// BAMQuery retrieves read segments from a coordinate-sorted, indexed BAM file
// of reads aligned to transcript references. Safe for concurrent use; fetches
// are serialized on the underlying reader.
type BAMQuery struct {
	mu   sync.Mutex
	f    *os.File
	r    *bam.Reader
	idx  *bam.Index
	refs map[string]*sam.Reference
}

// OpenBAM opens a BAM file and its .bai index.
func OpenBAM(path string) (*BAMQuery, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bam: %w", err)
	}

	r, err := bam.NewReader(f, 1)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read bam header: %w", err)
	}

	idxFile, err := os.Open(path + ".bai")
	if err != nil {
		r.Close()
		f.Close()
		return nil, fmt.Errorf("open bam index: %w", err)
	}
	defer idxFile.Close()

	idx, err := bam.ReadIndex(idxFile)
	if err != nil {
		r.Close()
		f.Close()
		return nil, fmt.Errorf("read bam index: %w", err)
	}

	refs := make(map[string]*sam.Reference)
	for _, ref := range r.Header().Refs() {
		refs[ref.Name()] = ref
	}

	return &BAMQuery{f: f, r: r, idx: idx, refs: refs}, nil
}

// Fetch returns usable read segments overlapping the 1-based inclusive window
// [start, end] on the named transcript reference.
func (q *BAMQuery) Fetch(transcript string, start, end int) ([]Segment, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ref, ok := q.refs[transcript]
	if !ok {
		return nil, fmt.Errorf("transcript %q not in BAM header", transcript)
	}

	chunks, err := q.idx.Chunks(ref, start-1, end)
	if err != nil {
		if errors.Is(err, index.ErrInvalid) {
			// No index entries cover the window.
			return nil, nil
		}
		return nil, fmt.Errorf("index lookup %s:%d-%d: %w", transcript, start, end, err)
	}

	it, err := bam.NewIterator(q.r, chunks)
	if err != nil {
		return nil, fmt.Errorf("bam iterator %s:%d-%d: %w", transcript, start, end, err)
	}

	var segs []Segment
	for it.Next() {
		rec := it.Record()
		if rec.Ref != ref || !usable(rec) {
			continue
		}
		seg := NewSegment(rec)
		// Index chunks can spill past the window; keep overlapping reads only.
		if seg.End < start || seg.Start > end {
			continue
		}
		segs = append(segs, seg)
	}
	if err := it.Close(); err != nil {
		return nil, fmt.Errorf("bam iterator %s:%d-%d: %w", transcript, start, end, err)
	}
	return segs, nil
}

// Close releases the BAM reader and file handle.
func (q *BAMQuery) Close() error {
	rErr := q.r.Close()
	fErr := q.f.Close()
	if rErr != nil {
		return rErr
	}
	return fErr
}

// QueryFunc adapts a closure to the window query contract. Used by tests and
// alternative alignment stores.
type QueryFunc func(transcript string, start, end int) ([]Segment, error)

// Fetch calls the wrapped closure.
func (f QueryFunc) Fetch(transcript string, start, end int) ([]Segment, error) {
	return f(transcript, start, end)
}
