package sga

// Population is the working set of individuals plus an index-aligned fitness
// table. Fitness[i] holds fitness(Members[i]) and is updated in place by the
// survivor selectors whenever a slot changes.
type Population[G comparable] struct {
	Members [][]G
	Fitness []float64
}

// BestIndex returns the index of the highest-fitness member.
func (p *Population[G]) BestIndex() int {
	best := 0
	for i := 1; i < len(p.Fitness); i++ {
		if p.Fitness[i] > p.Fitness[best] {
			best = i
		}
	}
	return best
}

// BestFitness returns the highest fitness in the table.
func (p *Population[G]) BestFitness() float64 {
	return p.Fitness[p.BestIndex()]
}

// CountAtBest returns how many members are tied at the best fitness.
func (p *Population[G]) CountAtBest() int {
	best := p.BestFitness()
	count := 0
	for _, f := range p.Fitness {
		if f == best {
			count++
		}
	}
	return count
}

// indexOf returns the first slot whose member equals genome by value, or -1.
func (p *Population[G]) indexOf(genome []G) int {
	for i, member := range p.Members {
		if genesEqual(member, genome) {
			return i
		}
	}
	return -1
}

func genesEqual[G comparable](a, b []G) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneGenes[G comparable](genome []G) []G {
	return append([]G(nil), genome...)
}
