package template

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, record Record) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO templates (id, name, description, config, status, created_by)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, record.ID, record.Name, record.Description, record.Config, record.Status, record.CreatedBy)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var record Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, config, status, created_by, created_at, updated_at
    FROM templates WHERE id = $1
  `, id).Scan(&record.ID, &record.Name, &record.Description, &record.Config, &record.Status, &record.CreatedBy, &record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, config, status, created_by, created_at, updated_at
    FROM templates ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.ID, &record.Name, &record.Description, &record.Config, &record.Status, &record.CreatedBy, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) Update(ctx context.Context, record Record) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE templates SET name = $2, description = $3, config = $4, updated_at = now()
    WHERE id = $1 AND status = $5
  `, record.ID, record.Name, record.Description, record.Config, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		_, getErr := s.Get(ctx, record.ID)
		return draftGuardErr(getErr)
	}
	return nil
}

// draftGuardErr interprets a zero-row result from a statement guarded with
// AND status = 'draft': either the row is missing or it is already
// published. getErr is the outcome of looking the row up afterwards.
func draftGuardErr(getErr error) error {
	if getErr != nil {
		return getErr
	}
	return ErrPublished
}

func (s *Store) MarkPublished(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE templates SET status = $2, updated_at = now() WHERE id = $1", id, StatusPublished)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM templates WHERE id = $1 AND status = $2", id, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		_, getErr := s.Get(ctx, id)
		return draftGuardErr(getErr)
	}
	return nil
}
