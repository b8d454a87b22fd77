package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, a Assessment) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO assessments (id, name, template_id, status, start_date, end_date)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, a.ID, a.Name, a.TemplateID, a.Status, a.StartDate, a.EndDate)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (Assessment, error) {
	var a Assessment
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, template_id, template_snapshot, status, start_date, end_date, created_at
    FROM assessments WHERE id = $1
  `, id).Scan(&a.ID, &a.Name, &a.TemplateID, &a.TemplateSnapshot, &a.Status, &a.StartDate, &a.EndDate, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assessment{}, ErrNotFound
	}
	if err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *Store) List(ctx context.Context) ([]Assessment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, template_id, status, start_date, end_date, created_at
    FROM assessments ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.Name, &a.TemplateID, &a.Status, &a.StartDate, &a.EndDate, &a.CreatedAt); err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func (s *Store) Publish(ctx context.Context, id string, snapshot []byte, startDate, endDate time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE assessments
    SET status = $2, template_snapshot = $3, start_date = $4, end_date = $5
    WHERE id = $1 AND status = $6
  `, id, StatusActive, snapshot, startDate, endDate, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotDraft
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE assessments SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
