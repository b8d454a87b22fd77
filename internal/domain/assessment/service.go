package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"okr/internal/domain/scoring"
	"okr/internal/domain/template"
	"okr/internal/platform/cache"
	"okr/internal/platform/metrics"
)

type Service struct {
	store     *Store
	templates *template.Service
	snapshots *cache.Cache
	metrics   *metrics.Collector
}

func NewService(store *Store, templates *template.Service, snapshots *cache.Cache, collector *metrics.Collector) *Service {
	return &Service{store: store, templates: templates, snapshots: snapshots, metrics: collector}
}

func (s *Service) Create(ctx context.Context, name, templateID string, startDate, endDate time.Time) (Assessment, error) {
	a := Assessment{
		ID:         uuid.NewString(),
		Name:       name,
		TemplateID: templateID,
		Status:     StatusDraft,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if _, err := s.templates.Get(ctx, templateID); err != nil {
		return Assessment{}, err
	}
	if err := s.store.Create(ctx, a); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Assessment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Assessment, error) {
	return s.store.List(ctx)
}

// Publish activates the assessment and freezes a copy of the template config
// into the assessment row. Later template edits never reach a published
// assessment.
func (s *Service) Publish(ctx context.Context, id string) error {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.templates.Publish(ctx, a.TemplateID); err != nil {
		return err
	}
	record, err := s.templates.Get(ctx, a.TemplateID)
	if err != nil {
		return err
	}

	if err := s.store.Publish(ctx, id, record.Config, a.StartDate, a.EndDate); err != nil {
		return err
	}
	if err := s.snapshots.Set(ctx, snapshotKey(id), record.Config); err != nil {
		slog.Warn("snapshot cache write failed", "assessment", id, "err", err)
	}
	return nil
}

func (s *Service) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *Service) End(ctx context.Context, id string) error {
	return s.transition(ctx, id, StatusEnded)
}

func (s *Service) transition(ctx context.Context, id, status string) error {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.Status != StatusActive {
		return ErrNotActive
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// Template returns the decoded scoring template for an assessment, from the
// published snapshot. The snapshot cache is consulted first; a miss falls
// back to the assessment row.
func (s *Service) Template(ctx context.Context, id string) (scoring.Template, error) {
	if data, ok := s.snapshots.Get(ctx, snapshotKey(id)); ok {
		decoded, err := template.DecodeConfig(data)
		if err == nil {
			s.metrics.RecordCacheHit()
			return decoded, nil
		}
		slog.Warn("cached snapshot unreadable, falling back to store", "assessment", id, "err", err)
	}

	a, err := s.store.Get(ctx, id)
	if err != nil {
		return scoring.Template{}, err
	}
	if len(a.TemplateSnapshot) == 0 {
		return scoring.Template{}, ErrNoSnapshot
	}

	decoded, err := template.DecodeConfig(a.TemplateSnapshot)
	if err != nil {
		return scoring.Template{}, err
	}
	if err := s.snapshots.Set(ctx, snapshotKey(id), a.TemplateSnapshot); err != nil {
		slog.Warn("snapshot cache write failed", "assessment", id, "err", err)
	}
	return decoded, nil
}

func snapshotKey(assessmentID string) string {
	return fmt.Sprintf("assessment:%s:snapshot", assessmentID)
}
