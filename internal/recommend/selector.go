package recommend

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"reprise/backend/internal/dataset"
)

// armsBodyPart is the catalog body part that holds the biceps and triceps rows.
const armsBodyPart = "arms"

// Selector draws random exercises for a body part. It is safe for
// concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector drawing from rng. Pass a seeded rng in
// tests; nil seeds from the clock.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select samples up to max rows matching bodyPart without replacement.
// "triceps" and "biceps" match arms rows whose muscle type contains the
// label. No match yields an empty slice.
func (s *Selector) Select(rows []dataset.ExerciseRow, bodyPart string, max int) []dataset.ExerciseRow {
	filtered := filterRows(rows, strings.ToLower(strings.TrimSpace(bodyPart)))
	count := min(len(filtered), max)
	if count <= 0 {
		return []dataset.ExerciseRow{}
	}

	s.mu.Lock()
	perm := s.rng.Perm(len(filtered))
	s.mu.Unlock()

	picked := make([]dataset.ExerciseRow, count)
	for i := range count {
		picked[i] = filtered[perm[i]]
	}
	return picked
}

func filterRows(rows []dataset.ExerciseRow, label string) []dataset.ExerciseRow {
	var filtered []dataset.ExerciseRow
	if label == "triceps" || label == "biceps" {
		for _, r := range rows {
			if r.BodyPart == armsBodyPart && strings.Contains(r.MuscleType, label) {
				filtered = append(filtered, r)
			}
		}
		return filtered
	}
	for _, r := range rows {
		if r.BodyPart == label {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
