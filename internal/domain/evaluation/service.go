package evaluation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"okr/internal/domain/assessment"
	"okr/internal/domain/scoring"
	"okr/internal/platform/metrics"
)

type Service struct {
	store       *Store
	assessments *assessment.Service
	metrics     *metrics.Collector
	debounce    time.Duration

	mu     sync.Mutex
	savers map[draftKey]*Autosaver
}

type draftKey struct {
	assessmentID  string
	employeeID    string
	evaluatorType string
}

func NewService(store *Store, assessments *assessment.Service, collector *metrics.Collector, debounce time.Duration) *Service {
	return &Service{
		store:       store,
		assessments: assessments,
		metrics:     collector,
		debounce:    debounce,
		savers:      make(map[draftKey]*Autosaver),
	}
}

func validEvaluatorType(evaluatorType string) bool {
	switch evaluatorType {
	case scoring.EvaluatorSelf, scoring.EvaluatorLeader, scoring.EvaluatorBoss:
		return true
	}
	return false
}

// SaveDraft persists one rater's in-progress scores and returns the
// recomputed live preview. Saves against a closed assessment or a submitted
// evaluation fail; a save whose content hash matches the stored draft is
// skipped entirely.
func (s *Service) SaveDraft(ctx context.Context, assessmentID, employeeID, evaluatorID, evaluatorType string, scores []scoring.DetailedScore) (Preview, error) {
	if !validEvaluatorType(evaluatorType) {
		return Preview{}, ErrUnknownEvaluator
	}

	a, err := s.assessments.Get(ctx, assessmentID)
	if err != nil {
		return Preview{}, err
	}
	if !a.OpenForScoring() {
		return Preview{}, ErrAssessmentClosed
	}

	t, err := s.assessments.Template(ctx, assessmentID)
	if err != nil {
		return Preview{}, err
	}
	if err := scoring.ValidateScores(scores, t); err != nil {
		return Preview{}, err
	}

	hash := ContentHash(scores)
	existing, err := s.store.Get(ctx, assessmentID, employeeID, evaluatorType)
	switch {
	case err == nil:
		if existing.Submitted() {
			return Preview{}, ErrAlreadySubmitted
		}
		if existing.ContentHash == hash {
			return s.preview(scores, t), nil
		}
	case !errors.Is(err, ErrNotFound):
		return Preview{}, err
	}

	draft := Evaluation{
		ID:            uuid.NewString(),
		AssessmentID:  assessmentID,
		EmployeeID:    employeeID,
		EvaluatorID:   evaluatorID,
		EvaluatorType: evaluatorType,
		Scores:        scores,
		Status:        StatusDraft,
		ContentHash:   hash,
	}
	if err := s.store.UpsertDraft(ctx, draft); err != nil {
		return Preview{}, err
	}
	return s.preview(scores, t), nil
}

// QueueDraft validates the scores, returns the live preview immediately, and
// hands the write to the slot's autosaver so a burst of edits lands as one
// save once input goes quiet.
func (s *Service) QueueDraft(ctx context.Context, assessmentID, employeeID, evaluatorID, evaluatorType string, scores []scoring.DetailedScore) (Preview, error) {
	if !validEvaluatorType(evaluatorType) {
		return Preview{}, ErrUnknownEvaluator
	}

	a, err := s.assessments.Get(ctx, assessmentID)
	if err != nil {
		return Preview{}, err
	}
	if !a.OpenForScoring() {
		return Preview{}, ErrAssessmentClosed
	}

	t, err := s.assessments.Template(ctx, assessmentID)
	if err != nil {
		return Preview{}, err
	}
	if err := scoring.ValidateScores(scores, t); err != nil {
		return Preview{}, err
	}

	existing, err := s.store.Get(ctx, assessmentID, employeeID, evaluatorType)
	switch {
	case err == nil:
		if existing.Submitted() {
			return Preview{}, ErrAlreadySubmitted
		}
	case !errors.Is(err, ErrNotFound):
		return Preview{}, err
	}

	s.saverFor(assessmentID, employeeID, evaluatorID, evaluatorType).Update(scores)
	return s.preview(scores, t), nil
}

func (s *Service) saverFor(assessmentID, employeeID, evaluatorID, evaluatorType string) *Autosaver {
	key := draftKey{assessmentID, employeeID, evaluatorType}
	s.mu.Lock()
	defer s.mu.Unlock()
	saver, ok := s.savers[key]
	if !ok {
		saver = NewAutosaver(s.debounce, func(ctx context.Context, scores []scoring.DetailedScore) error {
			_, err := s.SaveDraft(ctx, assessmentID, employeeID, evaluatorID, evaluatorType, scores)
			if err != nil {
				slog.Warn("draft autosave failed", "assessment", assessmentID, "employee", employeeID, "evaluator", evaluatorType, "err", err)
			}
			return err
		})
		s.savers[key] = saver
	}
	return saver
}

func (s *Service) peekSaver(assessmentID, employeeID, evaluatorType string) *Autosaver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savers[draftKey{assessmentID, employeeID, evaluatorType}]
}

func (s *Service) dropSaver(assessmentID, employeeID, evaluatorType string) {
	key := draftKey{assessmentID, employeeID, evaluatorType}
	s.mu.Lock()
	saver := s.savers[key]
	delete(s.savers, key)
	s.mu.Unlock()
	if saver != nil {
		saver.Stop()
	}
}

// Draft returns the stored draft (or submitted record) with its preview.
func (s *Service) Draft(ctx context.Context, assessmentID, employeeID, evaluatorType string) (Evaluation, Preview, error) {
	e, err := s.store.Get(ctx, assessmentID, employeeID, evaluatorType)
	if err != nil {
		return Evaluation{}, Preview{}, err
	}
	t, err := s.assessments.Template(ctx, assessmentID)
	if err != nil {
		return Evaluation{}, Preview{}, err
	}
	return e, s.preview(e.Scores, t), nil
}

// Submit freezes the rater's evaluation. One-shot: a second submit fails
// with ErrAlreadySubmitted and the stored record is untouched.
func (s *Service) Submit(ctx context.Context, assessmentID, employeeID, evaluatorType string) error {
	a, err := s.assessments.Get(ctx, assessmentID)
	if err != nil {
		return err
	}
	if !a.OpenForScoring() {
		return ErrAssessmentClosed
	}

	// Pending debounced edits land before the freeze so the stored record
	// matches what the rater last saw.
	if saver := s.peekSaver(assessmentID, employeeID, evaluatorType); saver != nil {
		if err := saver.Flush(ctx); err != nil {
			return err
		}
	}

	if _, err := s.store.Get(ctx, assessmentID, employeeID, evaluatorType); err != nil {
		return err
	}
	if err := s.store.MarkSubmitted(ctx, assessmentID, employeeID, evaluatorType, time.Now().UTC()); err != nil {
		return err
	}
	s.dropSaver(assessmentID, employeeID, evaluatorType)
	return nil
}

// Set assembles the evaluation set for one employee from submitted
// evaluations only; drafts stay invisible to scoring.
func (s *Service) Set(ctx context.Context, assessmentID, employeeID string) (scoring.EvaluationSet, [3]bool, error) {
	evaluations, err := s.store.ListByEmployee(ctx, assessmentID, employeeID)
	if err != nil {
		return scoring.EvaluationSet{}, [3]bool{}, err
	}

	var set scoring.EvaluationSet
	var submitted [3]bool
	for _, e := range evaluations {
		if !e.Submitted() {
			continue
		}
		switch e.EvaluatorType {
		case scoring.EvaluatorSelf:
			set.Self = e.Scores
			submitted[0] = true
		case scoring.EvaluatorLeader:
			set.Leader = e.Scores
			submitted[1] = true
		case scoring.EvaluatorBoss:
			set.Boss = e.Scores
			submitted[2] = true
		}
	}
	return set, submitted, nil
}

// Result computes the final score for one employee.
func (s *Service) Result(ctx context.Context, assessmentID, employeeID string) (Result, error) {
	set, submitted, err := s.Set(ctx, assessmentID, employeeID)
	if err != nil {
		return Result{}, err
	}
	t, err := s.assessments.Template(ctx, assessmentID)
	if err != nil {
		return Result{}, err
	}
	s.metrics.RecordScoreComputation()
	return BuildResult(employeeID, set, submitted, t), nil
}

// Results computes final scores for every employee with evaluations in the
// assessment.
func (s *Service) Results(ctx context.Context, assessmentID string) ([]Result, error) {
	evaluations, err := s.store.ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	t, err := s.assessments.Template(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]Evaluation)
	var order []string
	for _, e := range evaluations {
		if _, seen := byEmployee[e.EmployeeID]; !seen {
			order = append(order, e.EmployeeID)
		}
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
	}

	results := make([]Result, 0, len(order))
	for _, employeeID := range order {
		var set scoring.EvaluationSet
		var submitted [3]bool
		for _, e := range byEmployee[employeeID] {
			if !e.Submitted() {
				continue
			}
			switch e.EvaluatorType {
			case scoring.EvaluatorSelf:
				set.Self = e.Scores
				submitted[0] = true
			case scoring.EvaluatorLeader:
				set.Leader = e.Scores
				submitted[1] = true
			case scoring.EvaluatorBoss:
				set.Boss = e.Scores
				submitted[2] = true
			}
		}
		s.metrics.RecordScoreComputation()
		results = append(results, BuildResult(employeeID, set, submitted, t))
	}
	return results, nil
}

// Compare produces the cross-rater review view between the employee's self
// evaluation and another rater's evaluation.
func (s *Service) Compare(ctx context.Context, assessmentID, employeeID, otherType string) (Comparison, error) {
	if otherType != scoring.EvaluatorLeader && otherType != scoring.EvaluatorBoss {
		return Comparison{}, ErrUnknownEvaluator
	}

	set, _, err := s.Set(ctx, assessmentID, employeeID)
	if err != nil {
		return Comparison{}, err
	}
	t, err := s.assessments.Template(ctx, assessmentID)
	if err != nil {
		return Comparison{}, err
	}

	other := set.Leader
	if otherType == scoring.EvaluatorBoss {
		other = set.Boss
	}
	return Comparison{
		Categories: scoring.CategoryDiffs(set.Self, other, t),
		Items:      scoring.ItemDiffs(set.Self, other, t),
	}, nil
}

func (s *Service) preview(scores []scoring.DetailedScore, t scoring.Template) Preview {
	s.metrics.RecordScoreComputation()
	return BuildPreview(scores, t)
}
