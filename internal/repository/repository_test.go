package repository

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"coilapi/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateNewCoil(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	before := created.Add(-time.Second)
	after := created.Add(time.Second)

	tests := []struct {
		name      string
		in        model.NewCoil
		wantField string
	}{
		{name: "valid", in: model.NewCoil{Length: 1, Weight: 2, CreatedAt: created}},
		{name: "valid with deleted_at", in: model.NewCoil{Length: 1, Weight: 2, CreatedAt: created, DeletedAt: &after}},
		{name: "deleted_at equal to created_at", in: model.NewCoil{Length: 1, Weight: 2, CreatedAt: created, DeletedAt: &created}},
		{name: "zero length", in: model.NewCoil{Length: 0, Weight: 2, CreatedAt: created}, wantField: "length"},
		{name: "negative length", in: model.NewCoil{Length: -3, Weight: 2, CreatedAt: created}, wantField: "length"},
		{name: "NaN length", in: model.NewCoil{Length: math.NaN(), Weight: 2, CreatedAt: created}, wantField: "length"},
		{name: "zero weight", in: model.NewCoil{Length: 1, Weight: 0, CreatedAt: created}, wantField: "weight"},
		{name: "missing created_at", in: model.NewCoil{Length: 1, Weight: 2}, wantField: "created_at"},
		{name: "deleted before created", in: model.NewCoil{Length: 1, Weight: 2, CreatedAt: created, DeletedAt: &before}, wantField: "deleted_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewCoil(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			if assert.ErrorAs(t, err, &verr) {
				assert.Equal(t, tt.wantField, verr.Field)
			}
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrNoCoilsInPeriod, ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", &ValidationError{Field: "weight", Reason: "x"}), ErrValidation)
	assert.False(t, errors.Is(ErrNotFound, ErrValidation))
	assert.Equal(t, "invalid weight: must be greater than 0",
		(&ValidationError{Field: "weight", Reason: "must be greater than 0"}).Error())
}

func day(s string) time.Time {
	d, err := time.Parse(model.DayLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarizeDays(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, model.DayExtrema{}, SummarizeDays(nil))
	})

	t.Run("distinct extrema", func(t *testing.T) {
		got := SummarizeDays([]model.DayTotal{
			{Day: day("2024-01-01"), Count: 2, Weight: 15},
			{Day: day("2024-01-02"), Count: 1, Weight: 100},
		})
		assert.Equal(t, model.DayExtrema{
			MaxCountDay:  "2024-01-01",
			MinCountDay:  "2024-01-02",
			MaxWeightDay: "2024-01-02",
			MinWeightDay: "2024-01-01",
		}, got)
	})

	t.Run("ties go to the earliest day regardless of input order", func(t *testing.T) {
		got := SummarizeDays([]model.DayTotal{
			{Day: day("2024-05-03"), Count: 2, Weight: 10},
			{Day: day("2024-05-01"), Count: 2, Weight: 10},
			{Day: day("2024-05-02"), Count: 2, Weight: 10},
		})
		assert.Equal(t, "2024-05-01", got.MaxCountDay)
		assert.Equal(t, "2024-05-01", got.MinCountDay)
		assert.Equal(t, "2024-05-01", got.MaxWeightDay)
		assert.Equal(t, "2024-05-01", got.MinWeightDay)
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		days := []model.DayTotal{
			{Day: day("2024-05-03"), Count: 1},
			{Day: day("2024-05-01"), Count: 3},
		}
		SummarizeDays(days)
		assert.Equal(t, day("2024-05-03"), days[0].Day)
	})
}
