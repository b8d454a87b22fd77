package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"okr/internal/auth"
	"okr/internal/domain/assessment"
	"okr/internal/domain/evaluation"
)

type Service struct {
	assessments *assessment.Service
	evaluations *evaluation.Service
	users       *auth.Store
	outputDir   string
}

func NewService(assessments *assessment.Service, evaluations *evaluation.Service, users *auth.Store, outputDir string) *Service {
	return &Service{assessments: assessments, evaluations: evaluations, users: users, outputDir: outputDir}
}

// SummaryRow is one employee's outcome in the assessment report.
type SummaryRow struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	FinalScore   float64 `json:"finalScore"`
	Complete     bool    `json:"complete"`
}

type Summary struct {
	AssessmentID   string       `json:"assessmentId"`
	AssessmentName string       `json:"assessmentName"`
	Rows           []SummaryRow `json:"rows"`
	AverageScore   float64      `json:"averageScore"`
	CompletedCount int          `json:"completedCount"`
}

// BuildSummary aggregates final scores for every scored employee in the
// assessment. The average only counts complete evaluation sets; a partial
// final score would drag the number without meaning anything.
func (s *Service) BuildSummary(ctx context.Context, assessmentID string) (Summary, error) {
	a, err := s.assessments.Get(ctx, assessmentID)
	if err != nil {
		return Summary{}, err
	}
	results, err := s.evaluations.Results(ctx, assessmentID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{AssessmentID: a.ID, AssessmentName: a.Name, Rows: make([]SummaryRow, 0, len(results))}
	completeTotal := 0.0
	for _, result := range results {
		name := result.EmployeeID
		if user, err := s.users.UserByID(ctx, result.EmployeeID); err == nil {
			name = user.Name
		}
		summary.Rows = append(summary.Rows, SummaryRow{
			EmployeeID:   result.EmployeeID,
			EmployeeName: name,
			FinalScore:   result.FinalScore,
			Complete:     result.Complete,
		})
		if result.Complete {
			summary.CompletedCount++
			completeTotal += result.FinalScore
		}
	}
	if summary.CompletedCount > 0 {
		summary.AverageScore = completeTotal / float64(summary.CompletedCount)
	}
	return summary, nil
}

// GeneratePDF writes the assessment summary as a PDF and returns its path.
func (s *Service) GeneratePDF(ctx context.Context, assessmentID string) (string, error) {
	summary, err := s.BuildSummary(ctx, assessmentID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.outputDir, assessmentID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Assessment Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Assessment: %s", summary.AssessmentName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 8, "Employee")
	pdf.Cell(40, 8, "Final Score")
	pdf.Cell(40, 8, "Status")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range summary.Rows {
		status := "pending"
		if row.Complete {
			status = "complete"
		}
		pdf.Cell(90, 7, row.EmployeeName)
		pdf.Cell(40, 7, fmt.Sprintf("%.2f", row.FinalScore))
		pdf.Cell(40, 7, status)
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Average (complete only): %.2f    Completed: %d/%d",
		summary.AverageScore, summary.CompletedCount, len(summary.Rows)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
