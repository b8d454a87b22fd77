package evaluation

import (
	"context"
	"encoding/json"
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

// UpsertDraft writes the draft scores for one (assessment, employee, rater)
// slot. Submitted rows are never touched; the caller checks status first and
// the WHERE clause enforces it again.
func (s *Store) UpsertDraft(ctx context.Context, e Evaluation) error {
	scoresJSON, err := json.Marshal(e.Scores)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO evaluations (id, assessment_id, employee_id, evaluator_id, evaluator_type, scores, status, content_hash, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
    ON CONFLICT (assessment_id, employee_id, evaluator_type)
    DO UPDATE SET scores = EXCLUDED.scores, content_hash = EXCLUDED.content_hash, updated_at = now()
    WHERE evaluations.status = $9
  `, e.ID, e.AssessmentID, e.EmployeeID, e.EvaluatorID, e.EvaluatorType, scoresJSON, StatusDraft, e.ContentHash, StatusDraft)
	return err
}

func (s *Store) Get(ctx context.Context, assessmentID, employeeID, evaluatorType string) (Evaluation, error) {
	var e Evaluation
	var scoresJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, assessment_id, employee_id, evaluator_id, evaluator_type, scores, status, content_hash, submitted_at, updated_at
    FROM evaluations
    WHERE assessment_id = $1 AND employee_id = $2 AND evaluator_type = $3
  `, assessmentID, employeeID, evaluatorType).Scan(
		&e.ID, &e.AssessmentID, &e.EmployeeID, &e.EvaluatorID, &e.EvaluatorType,
		&scoresJSON, &e.Status, &e.ContentHash, &e.SubmittedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	if err := json.Unmarshal(scoresJSON, &e.Scores); err != nil {
		return Evaluation{}, err
	}
	return e, nil
}

func (s *Store) ListByEmployee(ctx context.Context, assessmentID, employeeID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, assessment_id, employee_id, evaluator_id, evaluator_type, scores, status, content_hash, submitted_at, updated_at
    FROM evaluations
    WHERE assessment_id = $1 AND employee_id = $2
  `, assessmentID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvaluations(rows)
}

func (s *Store) ListByAssessment(ctx context.Context, assessmentID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, assessment_id, employee_id, evaluator_id, evaluator_type, scores, status, content_hash, submitted_at, updated_at
    FROM evaluations
    WHERE assessment_id = $1
    ORDER BY employee_id, evaluator_type
  `, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvaluations(rows)
}

// MarkSubmitted freezes a draft. The status guard in the WHERE clause makes
// submission one-shot even under concurrent requests.
func (s *Store) MarkSubmitted(ctx context.Context, assessmentID, employeeID, evaluatorType string, at time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE evaluations SET status = $4, submitted_at = $5, updated_at = now()
    WHERE assessment_id = $1 AND employee_id = $2 AND evaluator_type = $3 AND status = $6
  `, assessmentID, employeeID, evaluatorType, StatusSubmitted, at, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadySubmitted
	}
	return nil
}

func scanEvaluations(rows pgx.Rows) ([]Evaluation, error) {
	var evaluations []Evaluation
	for rows.Next() {
		var e Evaluation
		var scoresJSON []byte
		if err := rows.Scan(
			&e.ID, &e.AssessmentID, &e.EmployeeID, &e.EvaluatorID, &e.EvaluatorType,
			&scoresJSON, &e.Status, &e.ContentHash, &e.SubmittedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scoresJSON, &e.Scores); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}
