package quizsession

import (
	"math/rand"
	"sort"
)

// Mode controls how the filtered pool is ordered before truncation.
type Mode string

const (
	// ModeSequential keeps the pool's natural (storage) order.
	ModeSequential Mode = "sequential"
	// ModeRandom applies an unbiased full permutation.
	ModeRandom Mode = "random"
	// ModeUnique orders least-attempted questions first, randomizing
	// the order within each group of equally-attempted questions.
	ModeUnique Mode = "unique"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeSequential || m == ModeRandom || m == ModeUnique
}

// Request describes one session's worth of questions to pick.
type Request struct {
	Count int    // may exceed the pool size; <= 0 yields an empty result
	Topic string // TopicAny keeps every question
	Mode  Mode
}

// Selector picks an ordered subset of question IDs from a snapshot.
// Randomness comes from the injected source only, so seeded tests can
// reproduce every non-deterministic ordering.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector drawing from the given source.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select returns the IDs of the questions to present, in presentation
// order. The result is always a subset of pool, contains no duplicates,
// and has length min(req.Count, size of the filtered pool). A non-positive
// count, an empty pool, or a topic matching nothing all yield an empty
// result rather than an error.
func (s *Selector) Select(pool []Question, req Request) []string {
	if req.Count <= 0 {
		return nil
	}

	filtered := filterByTopic(pool, req.Topic)
	if len(filtered) == 0 {
		return nil
	}

	switch req.Mode {
	case ModeRandom:
		s.shuffle(filtered)
	case ModeUnique:
		s.orderLeastAttempted(filtered)
	default:
		// sequential: keep storage order
	}

	if req.Count < len(filtered) {
		filtered = filtered[:req.Count]
	}

	ids := make([]string, len(filtered))
	for i, q := range filtered {
		ids[i] = q.ID
	}
	return ids
}

// filterByTopic copies the matching questions so later reordering never
// touches the caller's snapshot.
func filterByTopic(pool []Question, topic string) []Question {
	if topic == "" || topic == TopicAny {
		out := make([]Question, len(pool))
		copy(out, pool)
		return out
	}

	var out []Question
	for _, q := range pool {
		if q.Topic == topic {
			out = append(out, q)
		}
	}
	return out
}

// shuffle applies a Fisher-Yates permutation in place. Every permutation
// of qs is equally likely; a biased shuffle shows up to users as the same
// questions clustering at the front of repeated sessions.
func (s *Selector) shuffle(qs []Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// orderLeastAttempted sorts ascending by TimesAttempted, then shuffles
// each run of equal counts. Randomizing inside the comparator instead
// would make it non-transitive, so ties are broken after the stable sort.
func (s *Selector) orderLeastAttempted(qs []Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return qs[i].TimesAttempted < qs[j].TimesAttempted
	})

	start := 0
	for i := 1; i <= len(qs); i++ {
		if i == len(qs) || qs[i].TimesAttempted != qs[start].TimesAttempted {
			s.shuffle(qs[start:i])
			start = i
		}
	}
}
