package mocks

import (
	"context"

	"coilapi/internal/database"
	"coilapi/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCoilRepository struct {
	mock.Mock
}

func (m *MockCoilRepository) GetCoilByID(ctx context.Context, tx database.DBTX, id uuid.UUID) (*model.Coil, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilRepository) RegisterNewCoil(ctx context.Context, tx database.DBTX, in model.NewCoil) (*model.Coil, error) {
	args := m.Called(ctx, tx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilRepository) UpdateCoil(ctx context.Context, tx database.DBTX, id uuid.UUID, patch model.CoilPatch) (*model.Coil, error) {
	args := m.Called(ctx, tx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilRepository) DeleteCoil(ctx context.Context, tx database.DBTX, id uuid.UUID) (*model.Coil, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilRepository) GetAllCoils(ctx context.Context, tx database.DBTX, filter model.CoilFilter) ([]model.Coil, error) {
	args := m.Called(ctx, tx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coil), args.Error(1)
}

func (m *MockCoilRepository) GetCoilStats(ctx context.Context, tx database.DBTX, window model.StatsWindow) (*model.CoilStats, error) {
	args := m.Called(ctx, tx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoilStats), args.Error(1)
}
