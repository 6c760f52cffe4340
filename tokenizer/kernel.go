package tokenizer

import "sync"

// part is a transient value used by the pair-merge kernel: the byte offset
// at which a span starts, and the rank of the pair formed by that span and
// the one immediately following it. The sentinel rank maxRank marks "no
// known pair starts here".
type part struct {
	start int
	rank  Rank
}

// partsPool and tokenPool hold scratch slices for bytePairMerge/
// bytePairEncode so repeated encode calls over many small pieces don't
// churn the allocator.
var (
	partsPool = sync.Pool{New: func() any { b := make([]part, 0, 64); return &b }}
	tokenPool = sync.Pool{New: func() any { b := make([]Rank, 0, 32); return &b }}
)

func acquireParts(capHint int) (*[]part, func()) {
	p := partsPool.Get().(*[]part)
	if cap(*p) < capHint {
		buf := make([]part, 0, capHint)
		p = &buf
	} else {
		*p = (*p)[:0]
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		partsPool.Put(p)
	}
	return p, release
}

func acquireTokens(capHint int) (*[]Rank, func()) {
	p := tokenPool.Get().(*[]Rank)
	if cap(*p) < capHint {
		buf := make([]Rank, 0, capHint)
		p = &buf
	} else {
		*p = (*p)[:0]
	}
	release := func() {
		if cap(*p) > 1<<12 {
			return
		}
		*p = (*p)[:0]
		tokenPool.Put(p)
	}
	return p, release
}

// bytePairMerge runs the greedy lowest-rank-first merge algorithm
// over piece, returning the final parts list. Concatenating
// piece[parts[k].start:parts[k+1].start] for every adjacent pair of entries
// yields the canonical token spans.
//
// The tie-break on equal ranks is "smallest index wins" — the loop below
// scans left to right and only replaces minRank on strictly lower rank, so
// the first (leftmost) occurrence of the minimum is always kept.
func bytePairMerge(piece string, m *mergeTable) ([]part, func()) {
	pp, release := acquireParts(len(piece) + 2)
	parts := (*pp)[:0]

	type minT struct {
		rank Rank
		idx  int
	}
	minRank := minT{rank: maxRank, idx: -1}

	rankAt := func(i int) Rank {
		if r, ok := m.rank(piece[i : i+2]); ok {
			return r
		}
		return maxRank
	}

	for i := 0; i < len(piece)-1; i++ {
		r := rankAt(i)
		if r < minRank.rank {
			minRank = minT{r, i}
		}
		parts = append(parts, part{start: i, rank: r})
	}
	parts = append(parts, part{start: len(piece) - 1, rank: maxRank})
	parts = append(parts, part{start: len(piece), rank: maxRank})

	getRank := func(i int) Rank {
		if i+3 >= len(parts) {
			return maxRank
		}
		if r, ok := m.rank(piece[parts[i].start:parts[i+3].start]); ok {
			return r
		}
		return maxRank
	}

	for minRank.rank != maxRank {
		i := minRank.idx
		if i > 0 {
			parts[i-1].rank = getRank(i - 1)
		}
		parts[i].rank = getRank(i)
		parts = append(parts[:i+1], parts[i+2:]...)

		minRank = minT{rank: maxRank, idx: -1}
		for j := 0; j < len(parts)-1; j++ {
			if parts[j].rank < minRank.rank {
				minRank = minT{parts[j].rank, j}
			}
		}
	}

	*pp = parts
	return parts, release
}

// bytePairEncode tokenizes a single pre-tokenizer piece that is not already
// a direct hit in the encoder. The caller must have already checked
// len(piece) > 1 and the direct-hit case; n == 1 is handled by callers
// without invoking this function.
func bytePairEncode(piece string, m *mergeTable) ([]Rank, func()) {
	parts, releaseParts := bytePairMerge(piece, m)
	tp, releaseTokens := acquireTokens(len(parts))
	toks := (*tp)[:0]
	for w := 0; w+1 < len(parts); w++ {
		toks = append(toks, m.encoder[piece[parts[w].start:parts[w+1].start]])
	}
	*tp = toks
	release := func() {
		releaseParts()
		releaseTokens()
	}
	return toks, release
}
