package model

import (
	"time"

	"github.com/google/uuid"
)

// Range is an inclusive bound pair. A nil bound imposes no constraint.
type Range[T any] struct {
	Gte *T
	Lte *T
}

// CoilFilter selects coils for listing. All supplied predicates are ANDed.
type CoilFilter struct {
	ID        *uuid.UUID
	Weight    Range[float64]
	Length    Range[float64]
	CreatedAt Range[time.Time]
	DeletedAt Range[time.Time]
}

// StatsWindow bounds the coils that statistics are computed over.
type StatsWindow struct {
	CreatedAtGte *time.Time
	DeletedAtLte *time.Time
}
