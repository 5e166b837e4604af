package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coilapi/internal/model"
	"coilapi/internal/service"
)

func parseCoilID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("coil_id"))
	return id, err == nil
}

// RegisterCoil godoc
// @Summary Register a new coil
// @Tags coils
// @Accept json
// @Produce json
// @Param coil body model.NewCoil true "Coil"
// @Success 201 {object} model.Coil
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/v1/coils/register_new_coil/ [post]
func RegisterCoil(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.NewCoil
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		coil, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(coil)
	}
}

// GetCoil godoc
// @Summary Get a coil by ID
// @Tags coils
// @Produce json
// @Param coil_id path string true "Coil ID"
// @Success 200 {object} model.Coil
// @Failure 404 {object} errorPayload
// @Router /api/v1/coils/{coil_id}/ [get]
func GetCoil(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseCoilID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		coil, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(coil)
	}
}

// UpdateCoil godoc
// @Summary Partially update a coil
// @Description Only fields present in the body are changed. "deleted_at": null clears the marker.
// @Tags coils
// @Accept json
// @Produce json
// @Param coil_id path string true "Coil ID"
// @Param patch body model.NewCoil false "Fields to change"
// @Success 200 {object} model.Coil
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/v1/coils/{coil_id}/ [patch]
func UpdateCoil(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseCoilID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var patch model.CoilPatch
		if err := json.Unmarshal(c.Body(), &patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}

		coil, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(coil)
	}
}

// DeleteCoil godoc
// @Summary Delete a coil permanently
// @Tags coils
// @Produce json
// @Param coil_id path string true "Coil ID"
// @Success 200 {object} model.Coil
// @Failure 404 {object} errorPayload
// @Router /api/v1/coils/{coil_id} [delete]
func DeleteCoil(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseCoilID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		coil, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(coil)
	}
}

// ListCoils godoc
// @Summary List coils
// @Tags coils
// @Produce json
// @Param coil_id query string false "Exact coil ID"
// @Param weight_gte query number false "Minimum weight"
// @Param weight_lte query number false "Maximum weight"
// @Param length_gte query number false "Minimum length"
// @Param length_lte query number false "Maximum length"
// @Param created_at_gte query string false "RFC 3339"
// @Param created_at_lte query string false "RFC 3339"
// @Param deleted_at_gte query string false "RFC 3339"
// @Param deleted_at_lte query string false "RFC 3339"
// @Success 200 {array} model.Coil
// @Failure 404 {object} errorPayload
// @Router /api/v1/coils/ [get]
func ListCoils(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
		}

		items, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// CoilStats godoc
// @Summary Coil statistics for a period
// @Tags statistics
// @Produce json
// @Param created_at_gte query string false "RFC 3339"
// @Param deleted_at_lte query string false "RFC 3339"
// @Success 200 {object} model.CoilStats
// @Failure 404 {object} errorPayload
// @Router /api/v1/statistics/coils/ [get]
func CoilStats(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		window, err := parseWindow(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
		}

		stats, err := svc.Stats(c.UserContext(), window)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// ExportCoilStats godoc
// @Summary Export coil statistics to object storage
// @Tags statistics
// @Produce json
// @Param created_at_gte query string false "RFC 3339"
// @Param deleted_at_lte query string false "RFC 3339"
// @Success 201 {object} service.StatsExport
// @Failure 404 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /api/v1/statistics/coils/export [post]
func ExportCoilStats(svc service.CoilService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		window, err := parseWindow(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
		}

		out, err := svc.ExportStats(c.UserContext(), window)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}
