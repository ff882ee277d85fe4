package docparse

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	registry  *Registry
	documents DocumentRepository
}

func NewService(registry *Registry, documents DocumentRepository) *Service {
	return &Service{registry: registry, documents: documents}
}

// Parse dispatches the raw texts through the tenant's registered
// parsers and persists the outcome. An unparsed outcome is stored too:
// callers can see why a document stayed raw.
func (s *Service) Parse(ctx context.Context, tenantID string, documentID *string, summaryText, instructionsText string) (*Document, error) {
	outcome := s.registry.ParseDischargeDocument(tenantID, summaryText, instructionsText)

	doc := &Document{
		DocumentID:   documentID,
		TenantID:     tenantID,
		ParserUsed:   outcome.Parsed,
		Summary:      outcome.Summary,
		Instructions: outcome.Instructions,
	}
	if outcome.Parser != "" {
		doc.ParserName = &outcome.Parser
	}
	if outcome.Reason != "" {
		doc.Reason = &outcome.Reason
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("persist parsed document: %w", err)
	}
	return doc, nil
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *Service) ListDocuments(ctx context.Context, limit, offset int) ([]*Document, int, error) {
	return s.documents.List(ctx, limit, offset)
}

func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.documents.Delete(ctx, id)
}
