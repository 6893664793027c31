package repository

import (
	"iter"

	"gorm.io/gorm"
)

const defaultPageLimit = 20

// Collect drains a lazy sequence, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := []T{}
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func paginate(db *gorm.DB, page, limit int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return db.Offset((page - 1) * limit).Limit(limit)
}
