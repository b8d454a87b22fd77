package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"okr/internal/domain/scoring"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Create validates the config before storing; an invalid template can be
// saved as a draft but the violations travel back to the caller so the UI
// can show them immediately.
func (s *Service) Create(ctx context.Context, name, description, createdBy string, config scoring.Template) (Record, scoring.ValidationResult, error) {
	encoded, err := EncodeConfig(config)
	if err != nil {
		return Record{}, scoring.ValidationResult{}, err
	}

	record := Record{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Config:      encoded,
		Status:      StatusDraft,
		CreatedBy:   createdBy,
	}
	if err := s.store.Create(ctx, record); err != nil {
		return Record{}, scoring.ValidationResult{}, err
	}
	return record, scoring.ValidateTemplate(config), nil
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, id, name, description string, config scoring.Template) (scoring.ValidationResult, error) {
	encoded, err := EncodeConfig(config)
	if err != nil {
		return scoring.ValidationResult{}, err
	}
	record := Record{ID: id, Name: name, Description: description, Config: encoded}
	if err := s.store.Update(ctx, record); err != nil {
		return scoring.ValidationResult{}, err
	}
	return scoring.ValidateTemplate(config), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Publish marks the template published after a hard validation gate. An
// invalid template never becomes the basis of an assessment snapshot.
func (s *Service) Publish(ctx context.Context, id string) error {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	decoded, err := DecodeConfig(record.Config)
	if err != nil {
		return err
	}
	if result := scoring.ValidateTemplate(decoded); !result.Valid {
		return fmt.Errorf("%w: %v", ErrInvalid, result.Errors)
	}

	return s.store.MarkPublished(ctx, id)
}

// Validate runs the weight validator against an unsaved config, for the
// admin preview endpoint.
func (s *Service) Validate(config scoring.Template) scoring.ValidationResult {
	return scoring.ValidateTemplate(config)
}
