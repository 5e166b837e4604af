package mocks

import (
	"context"

	"coilapi/internal/model"
	"coilapi/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCoilService struct {
	mock.Mock
}

func (m *MockCoilService) Register(ctx context.Context, in model.NewCoil) (*model.Coil, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilService) Get(ctx context.Context, id uuid.UUID) (*model.Coil, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilService) Update(ctx context.Context, id uuid.UUID, patch model.CoilPatch) (*model.Coil, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilService) Delete(ctx context.Context, id uuid.UUID) (*model.Coil, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coil), args.Error(1)
}

func (m *MockCoilService) List(ctx context.Context, filter model.CoilFilter) ([]model.Coil, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coil), args.Error(1)
}

func (m *MockCoilService) Stats(ctx context.Context, window model.StatsWindow) (*model.CoilStats, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoilStats), args.Error(1)
}

func (m *MockCoilService) ExportStats(ctx context.Context, window model.StatsWindow) (*service.StatsExport, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatsExport), args.Error(1)
}
