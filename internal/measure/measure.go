// Package measure implements the pure statistics functions the reactor
// reports on a population of terms: exact multiplicities, uniques, top-k
// frequency, population entropy, and a multiset Jaccard-like ratio. None of
// these functions mutate their input or depend on the reactor's state
// machine; they operate on any snapshot of a soup's expressions.
package measure

import (
	"math"
	"sort"

	"github.com/arborist-labs/alchemy/pkg/lambda"
)

// ExpressionCounts returns the exact multiplicity of each distinct term in
// exprs. Term equality is isomorphism-respecting because De Bruijn terms
// compare structurally equal exactly when they are alpha-equivalent.
func ExpressionCounts(exprs []lambda.Term) map[lambda.Term]uint32 {
	counts := make(map[lambda.Term]uint32, len(exprs))
	for _, e := range exprs {
		counts[e]++
	}
	return counts
}

// UniqueExpressions returns the set of distinct terms in exprs.
func UniqueExpressions(exprs []lambda.Term) map[lambda.Term]struct{} {
	set := make(map[lambda.Term]struct{})
	for _, e := range exprs {
		set[e] = struct{}{}
	}
	return set
}

// KMostFrequentExprs returns the top-k terms in exprs by multiplicity,
// descending. Ties are broken by first-seen order: among terms with equal
// counts, the one that appeared earliest in exprs sorts first. When k is at
// least the number of unique terms, every unique term is returned.
func KMostFrequentExprs(exprs []lambda.Term, k int) []lambda.Term {
	if k <= 0 {
		return nil
	}

	type entry struct {
		term      lambda.Term
		count     uint32
		firstSeen int
	}
	order := make(map[lambda.Term]int)
	counts := make(map[lambda.Term]uint32)
	for i, e := range exprs {
		if _, ok := order[e]; !ok {
			order[e] = i
		}
		counts[e]++
	}

	entries := make([]entry, 0, len(counts))
	for term, count := range counts {
		entries = append(entries, entry{term: term, count: count, firstSeen: order[term]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].firstSeen < entries[j].firstSeen
	})

	if k > len(entries) {
		k = len(entries)
	}
	result := make([]lambda.Term, k)
	for i := 0; i < k; i++ {
		result[i] = entries[i].term
	}
	return result
}

// PopulationEntropy computes H = -sum(p_i * log10(p_i)) over the
// multiplicities of exprs, where p_i is a term's share of the population.
// This is base-10, not natural log, by definition of this metric. An empty
// population has zero entropy.
func PopulationEntropy(exprs []lambda.Term) float32 {
	if len(exprs) == 0 {
		return 0
	}
	counts := ExpressionCounts(exprs)
	total := float64(len(exprs))
	var h float64
	for _, c := range counts {
		p := float64(c) / total
		h -= p * math.Log10(p)
	}
	return float32(h)
}

// JaccardIndex returns the multiset-intersection size of a and b, divided
// by the sum of their sizes: sum(min(count_a(t), count_b(t))) / (|a| +
// |b|). This is a Jaccard-like ratio over multiset sizes, not the
// set-Jaccard index; in particular JaccardIndex(a, a) == 0.5, not 1.
func JaccardIndex(a, b []lambda.Term) float32 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	countsA := ExpressionCounts(a)
	countsB := ExpressionCounts(b)

	var intersection uint64
	for term, ca := range countsA {
		cb := countsB[term]
		if ca < cb {
			intersection += uint64(ca)
		} else {
			intersection += uint64(cb)
		}
	}
	denom := float64(len(a) + len(b))
	return float32(float64(intersection) / denom)
}
