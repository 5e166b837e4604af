package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable. *database.SessionManager implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type readinessItem struct {
	Service string `json:"service"`
	IsAlive bool   `json:"is_alive"`
	Msg     string `json:"msg"`
}

type readinessResponse struct {
	Items []readinessItem `json:"items"`
}

// LivenessProbe always answers 200 while the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ReadinessProbe pings the database and reports per-dependency status.
// It answers 503 when any dependency is down.
func ReadinessProbe(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		item := readinessItem{Service: "database", IsAlive: true, Msg: "database connection is available"}
		if err := db.Ping(ctx); err != nil {
			item = readinessItem{Service: "database", IsAlive: false, Msg: "no connection to database"}
		}

		status := fiber.StatusOK
		if !item.IsAlive {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(readinessResponse{Items: []readinessItem{item}})
	}
}
