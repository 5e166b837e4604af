package repository

import "coilapi/internal/model"

// ValidateNewCoil checks the invariants of a coil about to be registered.
func ValidateNewCoil(in model.NewCoil) error {
	return ValidateCoil(model.Coil{
		Length:    in.Length,
		Weight:    in.Weight,
		CreatedAt: in.CreatedAt,
		DeletedAt: in.DeletedAt,
	})
}

// ValidateCoil checks the invariants of a complete coil record.
func ValidateCoil(c model.Coil) error {
	// Negated comparisons also reject NaN.
	if !(c.Length > 0) {
		return &ValidationError{Field: "length", Reason: "must be greater than 0"}
	}
	if !(c.Weight > 0) {
		return &ValidationError{Field: "weight", Reason: "must be greater than 0"}
	}
	if c.CreatedAt.IsZero() {
		return &ValidationError{Field: "created_at", Reason: "is required"}
	}
	if c.DeletedAt != nil && c.DeletedAt.Before(c.CreatedAt) {
		return &ValidationError{Field: "deleted_at", Reason: "must not be earlier than created_at"}
	}
	return nil
}
