package repository

import (
	"context"

	"github.com/google/uuid"

	"coilapi/internal/database"
	"coilapi/internal/model"
)

// CoilRepository defines data access and statistics for coils.
// Every method runs against the session handle it is given and holds no
// state between calls.
type CoilRepository interface {
	// GetCoilByID returns the coil or ErrNotFound.
	GetCoilByID(ctx context.Context, tx database.DBTX, id uuid.UUID) (*model.Coil, error)

	// RegisterNewCoil validates and stores a new coil under a generated ID.
	RegisterNewCoil(ctx context.Context, tx database.DBTX, in model.NewCoil) (*model.Coil, error)

	// UpdateCoil applies the supplied fields of patch and returns the result.
	// The combined record is validated before anything is written.
	UpdateCoil(ctx context.Context, tx database.DBTX, id uuid.UUID, patch model.CoilPatch) (*model.Coil, error)

	// DeleteCoil permanently removes a coil and returns it as it was.
	DeleteCoil(ctx context.Context, tx database.DBTX, id uuid.UUID) (*model.Coil, error)

	// GetAllCoils returns coils matching every supplied predicate, ordered by
	// created_at then coil_id. An empty result is ErrNotFound.
	GetAllCoils(ctx context.Context, tx database.DBTX, filter model.CoilFilter) ([]model.Coil, error)

	// GetCoilStats aggregates the coils inside window. An empty window is ErrNotFound.
	GetCoilStats(ctx context.Context, tx database.DBTX, window model.StatsWindow) (*model.CoilStats, error)
}
