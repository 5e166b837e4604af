// Package memory holds an in-process CoilRepository for tests. It mirrors the
// PostgreSQL semantics, including NULL handling for deleted_at bounds.
package memory

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"coilapi/internal/database"
	"coilapi/internal/model"
	"coilapi/internal/repository"
)

var newID = uuid.New

// CoilMemory keeps coils in a map guarded by a mutex. The tx argument of each
// method is ignored.
type CoilMemory struct {
	mu    sync.RWMutex
	coils map[uuid.UUID]model.Coil
	loc   *time.Location
}

// NewCoilMemory returns an empty store that groups statistics by day in loc.
func NewCoilMemory(loc *time.Location) *CoilMemory {
	if loc == nil {
		loc = time.UTC
	}
	return &CoilMemory{coils: make(map[uuid.UUID]model.Coil), loc: loc}
}

var _ repository.CoilRepository = (*CoilMemory)(nil)

func (m *CoilMemory) GetCoilByID(_ context.Context, _ database.DBTX, id uuid.UUID) (*model.Coil, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.coils[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(c), nil
}

func (m *CoilMemory) RegisterNewCoil(_ context.Context, _ database.DBTX, in model.NewCoil) (*model.Coil, error) {
	if err := repository.ValidateNewCoil(in); err != nil {
		return nil, err
	}

	c := model.Coil{
		ID:        newID(),
		Length:    in.Length,
		Weight:    in.Weight,
		CreatedAt: in.CreatedAt,
		DeletedAt: copyTime(in.DeletedAt),
	}

	m.mu.Lock()
	m.coils[c.ID] = c
	m.mu.Unlock()

	return clone(c), nil
}

func (m *CoilMemory) UpdateCoil(_ context.Context, _ database.DBTX, id uuid.UUID, patch model.CoilPatch) (*model.Coil, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.coils[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	updated := patch.Apply(current)
	updated.DeletedAt = copyTime(updated.DeletedAt)
	if err := repository.ValidateCoil(updated); err != nil {
		return nil, err
	}

	m.coils[id] = updated
	return clone(updated), nil
}

func (m *CoilMemory) DeleteCoil(_ context.Context, _ database.DBTX, id uuid.UUID) (*model.Coil, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.coils[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.coils, id)
	return clone(c), nil
}

func (m *CoilMemory) GetAllCoils(_ context.Context, _ database.DBTX, f model.CoilFilter) ([]model.Coil, error) {
	m.mu.RLock()
	items := make([]model.Coil, 0, len(m.coils))
	for _, c := range m.coils {
		if matches(c, f) {
			items = append(items, *clone(c))
		}
	}
	m.mu.RUnlock()

	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	slices.SortFunc(items, func(a, b model.Coil) int {
		if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
			return n
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return items, nil
}

func (m *CoilMemory) GetCoilStats(_ context.Context, _ database.DBTX, window model.StatsWindow) (*model.CoilStats, error) {
	f := model.CoilFilter{
		CreatedAt: model.Range[time.Time]{Gte: window.CreatedAtGte},
		DeletedAt: model.Range[time.Time]{Lte: window.DeletedAtLte},
	}

	m.mu.RLock()
	var in []model.Coil
	for _, c := range m.coils {
		if matches(c, f) {
			in = append(in, c)
		}
	}
	m.mu.RUnlock()

	if len(in) == 0 {
		return nil, repository.ErrNoCoilsInPeriod
	}

	stats := model.CoilStats{
		TotalAdded: int64(len(in)),
		MaxLength:  math.Inf(-1),
		MinLength:  math.Inf(1),
		MaxWeight:  math.Inf(-1),
		MinWeight:  math.Inf(1),
	}
	var sumLength float64
	perDay := make(map[time.Time]*model.DayTotal)

	for _, c := range in {
		sumLength += c.Length
		stats.TotalWeight += c.Weight
		stats.MaxLength = math.Max(stats.MaxLength, c.Length)
		stats.MinLength = math.Min(stats.MinLength, c.Length)
		stats.MaxWeight = math.Max(stats.MaxWeight, c.Weight)
		stats.MinWeight = math.Min(stats.MinWeight, c.Weight)

		if c.DeletedAt != nil {
			stats.TotalRemoved++
			d := c.DeletedAt.Sub(c.CreatedAt).Seconds()
			if stats.MaxDuration == nil || d > *stats.MaxDuration {
				stats.MaxDuration = model.Ptr(d)
			}
			if stats.MinDuration == nil || d < *stats.MinDuration {
				stats.MinDuration = model.Ptr(d)
			}
		}

		key := m.day(c.CreatedAt)
		dt, ok := perDay[key]
		if !ok {
			dt = &model.DayTotal{Day: key}
			perDay[key] = dt
		}
		dt.Count++
		dt.Weight += c.Weight
	}

	stats.AvgLength = sumLength / float64(len(in))
	stats.AvgWeight = stats.TotalWeight / float64(len(in))

	days := make([]model.DayTotal, 0, len(perDay))
	for _, dt := range perDay {
		days = append(days, *dt)
	}
	ext := repository.SummarizeDays(days)
	stats.MaxCountDay = ext.MaxCountDay
	stats.MinCountDay = ext.MinCountDay
	stats.MaxWeightDay = ext.MaxWeightDay
	stats.MinWeightDay = ext.MinWeightDay

	return &stats, nil
}

// day truncates t to its calendar date in the store's location.
func (m *CoilMemory) day(t time.Time) time.Time {
	y, mo, d := t.In(m.loc).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// matches applies f the way SQL comparison does: any bound on deleted_at
// excludes coils whose deleted_at is unset.
func matches(c model.Coil, f model.CoilFilter) bool {
	if f.ID != nil && c.ID != *f.ID {
		return false
	}
	if !inRange(c.Weight, f.Weight, cmpFloat) || !inRange(c.Length, f.Length, cmpFloat) {
		return false
	}
	if !inRange(c.CreatedAt, f.CreatedAt, time.Time.Compare) {
		return false
	}
	if f.DeletedAt.Gte != nil || f.DeletedAt.Lte != nil {
		if c.DeletedAt == nil || !inRange(*c.DeletedAt, f.DeletedAt, time.Time.Compare) {
			return false
		}
	}
	return true
}

func inRange[T any](v T, r model.Range[T], cmp func(a, b T) int) bool {
	if r.Gte != nil && cmp(v, *r.Gte) < 0 {
		return false
	}
	if r.Lte != nil && cmp(v, *r.Lte) > 0 {
		return false
	}
	return true
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func clone(c model.Coil) *model.Coil {
	c.DeletedAt = copyTime(c.DeletedAt)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
