package usecase

import (
	"cmp"
	"slices"

	"ielts_backend/internal/feature/essays/domain/entity"
)

// RankByScore returns a copy of essays ordered by score, highest first.
// Unscored essays come last; equal scores keep their input order.
func RankByScore(essays []entity.Essay) []entity.Essay {
	out := slices.Clone(essays)
	slices.SortStableFunc(out, func(a, b entity.Essay) int {
		switch {
		case a.Score == nil && b.Score == nil:
			return 0
		case a.Score == nil:
			return 1
		case b.Score == nil:
			return -1
		}
		return cmp.Compare(*b.Score, *a.Score)
	})
	return out
}

// RankByTime returns a copy of essays ordered by publication time, newest first.
func RankByTime(essays []entity.Essay) []entity.Essay {
	out := slices.Clone(essays)
	slices.SortStableFunc(out, func(a, b entity.Essay) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return out
}
