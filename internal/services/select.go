package services

import (
	"meetup-point-service/internal/domain"
)

// SelectClosest returns the index of the candidate with the smallest average
// travel duration from both origins.
//
// Candidates are scanned in order and the best is replaced only by a strictly
// smaller average, so ties keep the earliest candidate.
func SelectClosest(candidates []domain.Candidate) (int, error) {
	if len(candidates) == 0 {
		return -1, domain.ErrNoCandidates
	}

	best := 0
	bestAvg := candidates[0].AverageSeconds()
	for i := 1; i < len(candidates); i++ {
		if avg := candidates[i].AverageSeconds(); avg < bestAvg {
			best = i
			bestAvg = avg
		}
	}

	return best, nil
}

// FilterOpen drops permanently-closed places, preserving order.
func FilterOpen(candidates []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.PermanentlyClosed {
			continue
		}
		out = append(out, c)
	}
	return out
}
