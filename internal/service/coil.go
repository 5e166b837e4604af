package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coilapi/internal/database"
	"coilapi/internal/logging"
	"coilapi/internal/model"
	"coilapi/internal/repository"
	"coilapi/internal/storage"
)

// ErrExportDisabled is returned by ExportStats when no object store is configured.
var ErrExportDisabled = errors.New("statistics export is disabled")

var (
	tracer = otel.Tracer("coilapi/service")
	now    = time.Now
)

// Sessions hands out scoped units of work. *database.SessionManager implements it.
type Sessions interface {
	Session(ctx context.Context, fn func(tx database.DBTX) error) error
}

// StatsExport describes an uploaded statistics report.
type StatsExport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CoilService defines the coil use cases. Each call runs in its own session.
type CoilService interface {
	Register(ctx context.Context, in model.NewCoil) (*model.Coil, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Coil, error)
	Update(ctx context.Context, id uuid.UUID, patch model.CoilPatch) (*model.Coil, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Coil, error)
	List(ctx context.Context, filter model.CoilFilter) ([]model.Coil, error)
	Stats(ctx context.Context, window model.StatsWindow) (*model.CoilStats, error)

	// ExportStats computes statistics, uploads them as JSON and returns a
	// presigned download URL.
	ExportStats(ctx context.Context, window model.StatsWindow) (*StatsExport, error)
}

type coilService struct {
	sessions  Sessions
	repo      repository.CoilRepository
	store     storage.Storage
	urlExpiry time.Duration
}

// NewCoilService constructs a CoilService. store may be nil, which disables export.
func NewCoilService(sessions Sessions, repo repository.CoilRepository, store storage.Storage, urlExpiry time.Duration) CoilService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &coilService{sessions: sessions, repo: repo, store: store, urlExpiry: urlExpiry}
}

func (s *coilService) Register(ctx context.Context, in model.NewCoil) (c *model.Coil, err error) {
	ctx, span := tracer.Start(ctx, "CoilService.Register")
	defer func() { finish(ctx, span, "register_coil", err) }()

	c, err = inSession(ctx, s.sessions, func(tx database.DBTX) (*model.Coil, error) {
		return s.repo.RegisterNewCoil(ctx, tx, in)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("coil.id", c.ID.String()))
	logging.FromContext(ctx).Info("coil_registered", "coil_id", c.ID.String())
	return c, nil
}

func (s *coilService) Get(ctx context.Context, id uuid.UUID) (c *model.Coil, err error) {
	ctx, span := tracer.Start(ctx, "CoilService.Get", trace.WithAttributes(attribute.String("coil.id", id.String())))
	defer func() { finish(ctx, span, "get_coil", err) }()

	return inSession(ctx, s.sessions, func(tx database.DBTX) (*model.Coil, error) {
		return s.repo.GetCoilByID(ctx, tx, id)
	})
}

func (s *coilService) Update(ctx context.Context, id uuid.UUID, patch model.CoilPatch) (c *model.Coil, err error) {
	ctx, span := tracer.Start(ctx, "CoilService.Update", trace.WithAttributes(attribute.String("coil.id", id.String())))
	defer func() { finish(ctx, span, "update_coil", err) }()

	c, err = inSession(ctx, s.sessions, func(tx database.DBTX) (*model.Coil, error) {
		return s.repo.UpdateCoil(ctx, tx, id, patch)
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("coil_updated", "coil_id", id.String())
	return c, nil
}

func (s *coilService) Delete(ctx context.Context, id uuid.UUID) (c *model.Coil, err error) {
	ctx, span := tracer.Start(ctx, "CoilService.Delete", trace.WithAttributes(attribute.String("coil.id", id.String())))
	defer func() { finish(ctx, span, "delete_coil", err) }()

	c, err = inSession(ctx, s.sessions, func(tx database.DBTX) (*model.Coil, error) {
		return s.repo.DeleteCoil(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("coil_deleted", "coil_id", id.String())
	return c, nil
}

func (s *coilService) List(ctx context.Context, filter model.CoilFilter) (items []model.Coil, err error) {
	ctx, span := tracer.Start(ctx, "CoilService.List")
	defer func() { finish(ctx, span, "list_coils", err) }()

	items, err = inSession(ctx, s.sessions, func(tx database.DBTX) ([]model.Coil, error) {
		return s.repo.GetAllCoils(ctx, tx, filter)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("coil.count", len(items)))
	return items, nil
}

func (s *coilService) Stats(ctx context.Context, window model.StatsWindow) (stats *model.CoilStats, err error) {
	ctx, span := tracer.Start(ctx, "CoilService.Stats")
	defer func() { finish(ctx, span, "coil_stats", err) }()

	return inSession(ctx, s.sessions, func(tx database.DBTX) (*model.CoilStats, error) {
		return s.repo.GetCoilStats(ctx, tx, window)
	})
}

func (s *coilService) ExportStats(ctx context.Context, window model.StatsWindow) (out *StatsExport, err error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	ctx, span := tracer.Start(ctx, "CoilService.ExportStats")
	defer func() { finish(ctx, span, "export_coil_stats", err) }()

	stats, err := s.Stats(ctx, window)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	created := now().UTC()
	key := reportKey(created)
	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata:    windowMetadata(window),
	}); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	u, err := s.store.PresignGet(ctx, key, s.urlExpiry)
	if err != nil {
		// Rollback: an unreachable report is useless.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign report: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign report: %w", err)
	}

	span.SetAttributes(attribute.String("report.key", key))
	logging.FromContext(ctx).Info("coil_stats_exported", "key", key)
	return &StatsExport{Key: key, URL: u, ExpiresAt: created.Add(s.urlExpiry)}, nil
}

func reportKey(t time.Time) string {
	return "reports/coil-stats-" + t.Format("20060102T150405Z") + ".json"
}

func windowMetadata(w model.StatsWindow) map[string]string {
	md := map[string]string{}
	if w.CreatedAtGte != nil {
		md["created-at-gte"] = w.CreatedAtGte.UTC().Format(time.RFC3339)
	}
	if w.DeletedAtLte != nil {
		md["deleted-at-lte"] = w.DeletedAtLte.UTC().Format(time.RFC3339)
	}
	return md
}

// inSession runs fn in a fresh session and returns its result only on commit.
func inSession[T any](ctx context.Context, s Sessions, fn func(tx database.DBTX) (T, error)) (T, error) {
	var out T
	err := s.Session(ctx, func(tx database.DBTX) error {
		var err error
		out, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// finish ends span and records err. Expected outcomes (not found, rejected
// input) are logged at warn and do not mark the span as failed.
func finish(ctx context.Context, span trace.Span, op string, err error) {
	defer span.End()
	if err == nil {
		return
	}

	log := logging.WithFields(ctx, "op", op, "error_message", err.Error())
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrValidation):
		log.Warn("coil_operation_rejected")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("coil_operation_failed")
	}
}
