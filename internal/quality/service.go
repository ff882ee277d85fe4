package quality

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	reports ReportRepository
}

func NewService(reports ReportRepository) *Service {
	return &Service{reports: reports}
}

// Evaluate computes metrics for an (original, simplified) text pair,
// checks the simplification targets and persists the resulting report.
// The computation itself never fails; only persistence can.
func (s *Service) Evaluate(ctx context.Context, documentID *string, originalText, simplifiedText string) (*Report, error) {
	metrics := CalculateQualityMetrics(originalText, simplifiedText)
	target := MeetsSimplificationTarget(metrics)

	report := &Report{
		DocumentID:  documentID,
		Metrics:     metrics,
		MeetsTarget: target.MeetsTarget,
		Reasons:     target.Reasons,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("persist quality report: %w", err)
	}
	return report, nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) ListReports(ctx context.Context, documentID string, limit, offset int) ([]*Report, int, error) {
	if documentID != "" {
		return s.reports.ListByDocument(ctx, documentID, limit, offset)
	}
	return s.reports.List(ctx, limit, offset)
}

func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return s.reports.Delete(ctx, id)
}
