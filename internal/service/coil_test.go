package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"coilapi/internal/database"
	"coilapi/internal/model"
	"coilapi/internal/repository"
	"coilapi/internal/repository/memory"
	repoMocks "coilapi/internal/repository/mocks"
	"coilapi/internal/storage"
	storeMocks "coilapi/internal/storage/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeSessions runs fn directly and records whether the session would commit.
type fakeSessions struct {
	calls     int
	committed int
	err       error
}

func (f *fakeSessions) Session(_ context.Context, fn func(tx database.DBTX) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if err := fn(nil); err != nil {
		return err
	}
	f.committed++
	return nil
}

func fixedNow(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}

func TestCoilService_Register(t *testing.T) {
	ctx := context.Background()
	in := model.NewCoil{Length: 10, Weight: 20, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	t.Run("happy path commits", func(t *testing.T) {
		sess := &fakeSessions{}
		mRepo := new(repoMocks.MockCoilRepository)
		want := &model.Coil{ID: uuid.New(), Length: 10, Weight: 20, CreatedAt: in.CreatedAt}
		mRepo.On("RegisterNewCoil", mock.Anything, mock.Anything, in).Return(want, nil)

		got, err := NewCoilService(sess, mRepo, nil, 0).Register(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, sess.committed)
		mRepo.AssertExpectations(t)
	})

	t.Run("validation error propagates and rolls back", func(t *testing.T) {
		sess := &fakeSessions{}
		mRepo := new(repoMocks.MockCoilRepository)
		verr := &repository.ValidationError{Field: "weight", Reason: "must be greater than 0"}
		mRepo.On("RegisterNewCoil", mock.Anything, mock.Anything, in).Return(nil, verr)

		got, err := NewCoilService(sess, mRepo, nil, 0).Register(ctx, in)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrValidation)
		assert.Equal(t, 0, sess.committed)
	})

	t.Run("session failure", func(t *testing.T) {
		sess := &fakeSessions{err: database.ErrNotInitialized}
		mRepo := new(repoMocks.MockCoilRepository)

		_, err := NewCoilService(sess, mRepo, nil, 0).Register(ctx, in)

		assert.ErrorIs(t, err, database.ErrNotInitialized)
		mRepo.AssertNotCalled(t, "RegisterNewCoil", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCoilService_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	coil := &model.Coil{ID: id, Length: 1, Weight: 2, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	patch := model.CoilPatch{Weight: model.Some(3.0)}

	tests := []struct {
		name  string
		setup func(m *repoMocks.MockCoilRepository)
		call  func(s CoilService) (*model.Coil, error)
		want  *model.Coil
		err   error
	}{
		{
			name:  "get",
			setup: func(m *repoMocks.MockCoilRepository) { m.On("GetCoilByID", mock.Anything, mock.Anything, id).Return(coil, nil) },
			call:  func(s CoilService) (*model.Coil, error) { return s.Get(ctx, id) },
			want:  coil,
		},
		{
			name:  "get not found",
			setup: func(m *repoMocks.MockCoilRepository) { m.On("GetCoilByID", mock.Anything, mock.Anything, id).Return(nil, repository.ErrNotFound) },
			call:  func(s CoilService) (*model.Coil, error) { return s.Get(ctx, id) },
			err:   repository.ErrNotFound,
		},
		{
			name:  "update",
			setup: func(m *repoMocks.MockCoilRepository) { m.On("UpdateCoil", mock.Anything, mock.Anything, id, patch).Return(coil, nil) },
			call:  func(s CoilService) (*model.Coil, error) { return s.Update(ctx, id, patch) },
			want:  coil,
		},
		{
			name:  "delete",
			setup: func(m *repoMocks.MockCoilRepository) { m.On("DeleteCoil", mock.Anything, mock.Anything, id).Return(coil, nil) },
			call:  func(s CoilService) (*model.Coil, error) { return s.Delete(ctx, id) },
			want:  coil,
		},
		{
			name: "delete store fault",
			setup: func(m *repoMocks.MockCoilRepository) {
				m.On("DeleteCoil", mock.Anything, mock.Anything, id).Return(nil, errors.New("delete coil: conn closed"))
			},
			call: func(s CoilService) (*model.Coil, error) { return s.Delete(ctx, id) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCoilRepository)
			tt.setup(mRepo)

			got, err := tt.call(NewCoilService(&fakeSessions{}, mRepo, nil, 0))

			if tt.want != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				assert.Error(t, err)
				assert.Nil(t, got)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCoilService_ListAndStats(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCoilRepository)
	filter := model.CoilFilter{Weight: model.Range[float64]{Gte: model.Ptr(10.0)}}
	window := model.StatsWindow{CreatedAtGte: model.Ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}

	mRepo.On("GetAllCoils", mock.Anything, mock.Anything, filter).Return([]model.Coil{{ID: uuid.New()}}, nil)
	mRepo.On("GetCoilStats", mock.Anything, mock.Anything, window).Return(nil, repository.ErrNoCoilsInPeriod)

	svc := NewCoilService(&fakeSessions{}, mRepo, nil, 0)

	items, err := svc.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	stats, err := svc.Stats(ctx, window)
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mRepo.AssertExpectations(t)
}

func TestCoilService_ExportStats(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	const key = "reports/coil-stats-20240102T030405Z.json"
	stats := &model.CoilStats{TotalAdded: 3, TotalWeight: 115, MaxCountDay: "2024-01-01"}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := model.StatsWindow{CreatedAtGte: &from}

	t.Run("disabled without storage", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoilRepository)

		out, err := NewCoilService(&fakeSessions{}, mRepo, nil, 0).ExportStats(ctx, window)

		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrExportDisabled)
		mRepo.AssertNotCalled(t, "GetCoilStats", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uploads json and presigns", func(t *testing.T) {
		fixedNow(t, ts)
		mRepo := new(repoMocks.MockCoilRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("GetCoilStats", mock.Anything, mock.Anything, window).Return(stats, nil)

		var uploaded model.CoilStats
		mStore.On("Put", mock.Anything, key, mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
			return o.ContentType == "application/json" && o.Size > 0 &&
				o.Metadata["created-at-gte"] == "2024-01-01T00:00:00Z"
		})).Run(func(args mock.Arguments) {
			b, err := io.ReadAll(args.Get(2).(io.Reader))
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(b, &uploaded))
		}).Return(storage.ObjectInfo{Key: key}, nil)
		mStore.On("PresignGet", mock.Anything, key, 10*time.Minute).Return("https://minio.local/"+key+"?sig=1", nil)

		out, err := NewCoilService(&fakeSessions{}, mRepo, mStore, 10*time.Minute).ExportStats(ctx, window)

		require.NoError(t, err)
		assert.Equal(t, key, out.Key)
		assert.Equal(t, "https://minio.local/"+key+"?sig=1", out.URL)
		assert.Equal(t, ts.Add(10*time.Minute), out.ExpiresAt)
		assert.Equal(t, *stats, uploaded)
		mStore.AssertExpectations(t)
	})

	t.Run("empty window uploads nothing", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoilRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("GetCoilStats", mock.Anything, mock.Anything, window).Return(nil, repository.ErrNoCoilsInPeriod)

		_, err := NewCoilService(&fakeSessions{}, mRepo, mStore, 0).ExportStats(ctx, window)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoilRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("GetCoilStats", mock.Anything, mock.Anything, window).Return(stats, nil)
		mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		_, err := NewCoilService(&fakeSessions{}, mRepo, mStore, 0).ExportStats(ctx, window)

		assert.EqualError(t, err, "upload report: bucket gone")
	})

	t.Run("presign failure removes the object", func(t *testing.T) {
		fixedNow(t, ts)
		mRepo := new(repoMocks.MockCoilRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("GetCoilStats", mock.Anything, mock.Anything, window).Return(stats, nil)
		mStore.On("Put", mock.Anything, key, mock.Anything, mock.Anything).Return(storage.ObjectInfo{Key: key}, nil)
		mStore.On("PresignGet", mock.Anything, key, 15*time.Minute).Return("", errors.New("clock skew"))
		mStore.On("Delete", mock.Anything, key).Return(nil)

		_, err := NewCoilService(&fakeSessions{}, mRepo, mStore, 0).ExportStats(ctx, window)

		assert.EqualError(t, err, "presign report: clock skew")
		mStore.AssertExpectations(t)
	})

	t.Run("presign failure with failed rollback", func(t *testing.T) {
		mRepo := new(repoMocks.MockCoilRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("GetCoilStats", mock.Anything, mock.Anything, window).Return(stats, nil)
		mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		mStore.On("PresignGet", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("clock skew"))
		mStore.On("Delete", mock.Anything, mock.Anything).Return(errors.New("denied"))

		_, err := NewCoilService(&fakeSessions{}, mRepo, mStore, 0).ExportStats(ctx, window)

		assert.ErrorContains(t, err, "rollback delete failed: denied")
	})
}

// The scenarios below run against the in-memory repository end to end.

func TestCoilService_Scenarios(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	newSvc := func() CoilService {
		return NewCoilService(&fakeSessions{}, memory.NewCoilMemory(time.UTC), nil, 0)
	}

	t.Run("register then get returns the same record", func(t *testing.T) {
		svc := newSvc()
		c, err := svc.Register(ctx, model.NewCoil{Length: 10, Weight: 20, CreatedAt: day1})
		require.NoError(t, err)

		got, err := svc.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("per-day statistics", func(t *testing.T) {
		svc := newSvc()
		for _, in := range []model.NewCoil{
			{Length: 1, Weight: 5, CreatedAt: day1},
			{Length: 1, Weight: 10, CreatedAt: day1.Add(time.Hour)},
			{Length: 1, Weight: 100, CreatedAt: day2},
		} {
			_, err := svc.Register(ctx, in)
			require.NoError(t, err)
		}

		stats, err := svc.Stats(ctx, model.StatsWindow{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalAdded)
		assert.Equal(t, 115.0, stats.TotalWeight)
		assert.Equal(t, "2024-01-02", stats.MaxWeightDay)
		assert.Equal(t, "2024-01-01", stats.MaxCountDay)
		assert.Equal(t, int64(0), stats.TotalRemoved)
		assert.Nil(t, stats.MaxDuration)
	})

	t.Run("one hour lifetime", func(t *testing.T) {
		svc := newSvc()
		deleted := day1.Add(time.Hour)
		_, err := svc.Register(ctx, model.NewCoil{Length: 1, Weight: 1, CreatedAt: day1, DeletedAt: &deleted})
		require.NoError(t, err)

		stats, err := svc.Stats(ctx, model.StatsWindow{})
		require.NoError(t, err)
		require.NotNil(t, stats.MaxDuration)
		require.NotNil(t, stats.MinDuration)
		assert.Equal(t, 3600.0, *stats.MaxDuration)
		assert.Equal(t, 3600.0, *stats.MinDuration)
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		svc := newSvc()
		c, err := svc.Register(ctx, model.NewCoil{Length: 1, Weight: 1, CreatedAt: day1})
		require.NoError(t, err)

		_, err = svc.Delete(ctx, c.ID)
		require.NoError(t, err)

		_, err = svc.Get(ctx, c.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
