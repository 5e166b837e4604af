package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coilapi/internal/model"
)

// parseFilter reads the list filters: coil_id plus <field>_gte / <field>_lte
// for weight, length, created_at and deleted_at.
func parseFilter(c *fiber.Ctx) (model.CoilFilter, error) {
	var (
		f   model.CoilFilter
		err error
	)
	if v := c.Query("coil_id"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			return f, fmt.Errorf("coil_id: %w", perr)
		}
		f.ID = &id
	}
	if f.Weight, err = floatRange(c, "weight"); err != nil {
		return f, err
	}
	if f.Length, err = floatRange(c, "length"); err != nil {
		return f, err
	}
	if f.CreatedAt, err = timeRange(c, "created_at"); err != nil {
		return f, err
	}
	if f.DeletedAt, err = timeRange(c, "deleted_at"); err != nil {
		return f, err
	}
	return f, nil
}

// parseWindow reads created_at_gte and deleted_at_lte.
func parseWindow(c *fiber.Ctx) (model.StatsWindow, error) {
	var (
		w   model.StatsWindow
		err error
	)
	if w.CreatedAtGte, err = queryTime(c, "created_at_gte"); err != nil {
		return w, err
	}
	if w.DeletedAtLte, err = queryTime(c, "deleted_at_lte"); err != nil {
		return w, err
	}
	return w, nil
}

func floatRange(c *fiber.Ctx, field string) (model.Range[float64], error) {
	var (
		r   model.Range[float64]
		err error
	)
	if r.Gte, err = queryFloat(c, field+"_gte"); err != nil {
		return r, err
	}
	r.Lte, err = queryFloat(c, field+"_lte")
	return r, err
}

func timeRange(c *fiber.Ctx, field string) (model.Range[time.Time], error) {
	var (
		r   model.Range[time.Time]
		err error
	)
	if r.Gte, err = queryTime(c, field+"_gte"); err != nil {
		return r, err
	}
	r.Lte, err = queryTime(c, field+"_lte")
	return r, err
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not a number", key)
	}
	return &f, nil
}

// queryTime accepts RFC 3339 timestamps with optional fractional seconds.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, fmt.Errorf("%s: expected RFC 3339 timestamp", key)
	}
	return &t, nil
}
