package repository

import (
	"slices"

	"coilapi/internal/model"
)

// SummarizeDays picks the days with the highest and lowest coil count and
// total weight. Days are considered in ascending date order and an extremum
// only moves on a strict improvement, so ties go to the earliest day.
func SummarizeDays(days []model.DayTotal) model.DayExtrema {
	if len(days) == 0 {
		return model.DayExtrema{}
	}

	sorted := make([]model.DayTotal, len(days))
	copy(sorted, days)
	sortDays(sorted)

	maxCount, minCount := sorted[0], sorted[0]
	maxWeight, minWeight := sorted[0], sorted[0]
	for _, d := range sorted[1:] {
		if d.Count > maxCount.Count {
			maxCount = d
		}
		if d.Count < minCount.Count {
			minCount = d
		}
		if d.Weight > maxWeight.Weight {
			maxWeight = d
		}
		if d.Weight < minWeight.Weight {
			minWeight = d
		}
	}

	return model.DayExtrema{
		MaxCountDay:  maxCount.Day.Format(model.DayLayout),
		MinCountDay:  minCount.Day.Format(model.DayLayout),
		MaxWeightDay: maxWeight.Day.Format(model.DayLayout),
		MinWeightDay: minWeight.Day.Format(model.DayLayout),
	}
}

func sortDays(days []model.DayTotal) {
	slices.SortStableFunc(days, func(a, b model.DayTotal) int {
		return a.Day.Compare(b.Day)
	})
}
