package model

import (
	"time"

	"github.com/google/uuid"
)

// Coil is an inventory unit. DeletedAt marks removal from inventory and is
// independent of the row being deleted from storage.
type Coil struct {
	ID        uuid.UUID  `json:"coil_id"`
	Length    float64    `json:"length"`
	Weight    float64    `json:"weight"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// NewCoil carries the caller-supplied fields of a coil being registered.
type NewCoil struct {
	Length    float64    `json:"length"`
	Weight    float64    `json:"weight"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// CoilPatch is a partial update. Only fields with Set are applied; a set
// DeletedAt with a nil value clears the marker.
type CoilPatch struct {
	Length    Optional[float64]    `json:"length"`
	Weight    Optional[float64]    `json:"weight"`
	CreatedAt Optional[time.Time]  `json:"created_at"`
	DeletedAt Optional[*time.Time] `json:"deleted_at"`
}

// Empty reports whether the patch changes nothing.
func (p CoilPatch) Empty() bool {
	return !p.Length.Set && !p.Weight.Set && !p.CreatedAt.Set && !p.DeletedAt.Set
}

// Apply returns c with the supplied fields replaced.
func (p CoilPatch) Apply(c Coil) Coil {
	if p.Length.Set {
		c.Length = p.Length.Value
	}
	if p.Weight.Set {
		c.Weight = p.Weight.Value
	}
	if p.CreatedAt.Set {
		c.CreatedAt = p.CreatedAt.Value
	}
	if p.DeletedAt.Set {
		c.DeletedAt = p.DeletedAt.Value
	}
	return c
}
