package sga

import (
	"math/rand"
)

// Recombiner creates two children from two parents. Every variant preserves
// the permutation invariant structurally: given parents whose genes are
// distinct, both children carry each gene exactly once, with no repair step.
type Recombiner[G comparable] interface {
	Name() string
	Recombine(rng *rand.Rand, p1, p2 []G) ([]G, []G)
}

// CutAndCrossfill copies each parent's prefix up to one random cut, then
// fills the remainder by scanning the other parent left to right and
// appending genes not already present.
type CutAndCrossfill[G comparable] struct{}

func (CutAndCrossfill[G]) Name() string {
	return "cut_and_crossfill"
}

func (CutAndCrossfill[G]) Recombine(rng *rand.Rand, p1, p2 []G) ([]G, []G) {
	cut := rng.Intn(len(p1))
	return crossfill(p1, p2, cut), crossfill(p2, p1, cut)
}

func crossfill[G comparable](prefixSrc, donor []G, cut int) []G {
	child := make([]G, 0, len(prefixSrc))
	child = append(child, prefixSrc[:cut]...)

	present := make(map[G]struct{}, cut)
	for _, g := range child {
		present[g] = struct{}{}
	}
	for _, g := range donor {
		if _, ok := present[g]; ok {
			continue
		}
		child = append(child, g)
	}
	return child
}

// PMX is partially-mapped crossover: the segment between two random cuts is
// copied verbatim, displaced segment genes are routed to free slots by
// chasing the position mapping between the parents, and the remaining slots
// are filled from the other parent.
type PMX[G comparable] struct{}

func (PMX[G]) Name() string {
	return "pmx"
}

func (PMX[G]) Recombine(rng *rand.Rand, p1, p2 []G) ([]G, []G) {
	lo, hi := twoDistinctOrdered(rng, len(p1))
	return pmxChild(p1, p2, lo, hi), pmxChild(p2, p1, lo, hi)
}

func pmxChild[G comparable](segSrc, other []G, lo, hi int) []G {
	n := len(segSrc)
	child := make([]G, n)
	placed := make([]bool, n)

	segment := make(map[G]struct{}, hi-lo+1)
	for k := lo; k <= hi; k++ {
		child[k] = segSrc[k]
		placed[k] = true
		segment[segSrc[k]] = struct{}{}
	}

	indexInOther := make(map[G]int, n)
	for i, g := range other {
		indexInOther[g] = i
	}

	for k := lo; k <= hi; k++ {
		g := other[k]
		if _, ok := segment[g]; ok {
			continue
		}
		// Chase the mapping until it lands outside the copied segment.
		pos := k
		for pos >= lo && pos <= hi {
			pos = indexInOther[segSrc[pos]]
		}
		child[pos] = g
		placed[pos] = true
	}

	for i := range child {
		if !placed[i] {
			child[i] = other[i]
		}
	}
	return child
}

// EdgeRecombination grows each child from the parents' combined circular
// adjacency. The next gene is chosen preferring a common edge (a neighbor
// contributed by both parents), then the neighbor with the shortest
// remaining unique neighbor list, then a uniformly random unused gene.
// Candidates are collected in a fixed gene order so outcomes depend only on
// the RNG stream.
type EdgeRecombination[G comparable] struct{}

func (EdgeRecombination[G]) Name() string {
	return "edge_recombination"
}

func (EdgeRecombination[G]) Recombine(rng *rand.Rand, p1, p2 []G) ([]G, []G) {
	return edgeChild(rng, p1, p2), edgeChild(rng, p1, p2)
}

func edgeChild[G comparable](rng *rand.Rand, p1, p2 []G) []G {
	n := len(p1)
	order := cloneGenes(p1) // fixed iteration order over gene values

	table := make(map[G][]G, n)
	appendEdges := func(parent []G) {
		for i, g := range parent {
			prev := parent[(i-1+n)%n]
			next := parent[(i+1)%n]
			table[g] = append(table[g], prev, next)
		}
	}
	appendEdges(p1)
	appendEdges(p2)

	child := make([]G, 0, n)
	used := make(map[G]struct{}, n)

	current := p1[rng.Intn(n)]
	child = append(child, current)
	used[current] = struct{}{}

	for len(child) < n {
		for _, g := range order {
			table[g] = removeGene(table[g], current)
		}
		current = nextEdgeGene(rng, table, order, current, used)
		child = append(child, current)
		used[current] = struct{}{}
	}
	return child
}

func nextEdgeGene[G comparable](rng *rand.Rand, table map[G][]G, order []G, current G, used map[G]struct{}) G {
	neighbors := table[current]
	if len(neighbors) == 0 {
		unused := make([]G, 0, len(order))
		for _, g := range order {
			if _, ok := used[g]; !ok {
				unused = append(unused, g)
			}
		}
		return unused[rng.Intn(len(unused))]
	}

	counts := make(map[G]int, len(neighbors))
	distinct := make([]G, 0, len(neighbors))
	for _, g := range neighbors {
		if counts[g] == 0 {
			distinct = append(distinct, g)
		}
		counts[g]++
	}

	common := make([]G, 0, len(distinct))
	for _, g := range distinct {
		if counts[g] >= 2 {
			common = append(common, g)
		}
	}
	if len(common) > 0 {
		return common[rng.Intn(len(common))]
	}

	shortest := -1
	shortlist := make([]G, 0, len(distinct))
	for _, g := range distinct {
		size := uniqueCount(table[g])
		if shortest == -1 || size < shortest {
			shortest = size
			shortlist = shortlist[:0]
		}
		if size == shortest {
			shortlist = append(shortlist, g)
		}
	}
	return shortlist[rng.Intn(len(shortlist))]
}

func removeGene[G comparable](list []G, g G) []G {
	out := list[:0]
	for _, v := range list {
		if v != g {
			out = append(out, v)
		}
	}
	return out
}

func uniqueCount[G comparable](list []G) int {
	seen := make(map[G]struct{}, len(list))
	for _, g := range list {
		seen[g] = struct{}{}
	}
	return len(seen)
}

// CycleCrossover partitions positions into cycles of the mapping "gene at
// position p in parent one equals gene at some position p' in parent two"
// and assigns whole cycles alternately from each parent.
type CycleCrossover[G comparable] struct{}

func (CycleCrossover[G]) Name() string {
	return "cycle"
}

func (CycleCrossover[G]) Recombine(_ *rand.Rand, p1, p2 []G) ([]G, []G) {
	n := len(p1)
	c1 := make([]G, n)
	c2 := make([]G, n)
	assigned := make([]bool, n)

	indexInP1 := make(map[G]int, n)
	for i, g := range p1 {
		indexInP1[g] = i
	}

	fromFirst := true
	for start := 0; start < n; start++ {
		if assigned[start] {
			continue
		}
		pos := start
		for {
			if fromFirst {
				c1[pos] = p1[pos]
				c2[pos] = p2[pos]
			} else {
				c1[pos] = p2[pos]
				c2[pos] = p1[pos]
			}
			assigned[pos] = true
			pos = indexInP1[p2[pos]]
			if pos == start {
				break
			}
		}
		fromFirst = !fromFirst
	}
	return c1, c2
}

// twoDistinctOrdered draws two distinct positions in [0,n) and returns them
// in ascending order.
func twoDistinctOrdered(rng *rand.Rand, n int) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	if j < i {
		i, j = j, i
	}
	return i, j
}
