package docparse

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// =========== Mock Repositories ===========

type mockDocumentRepo struct {
	store map[uuid.UUID]*Document
	fail  bool
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{store: make(map[uuid.UUID]*Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, d *Document) error {
	if m.fail {
		return fmt.Errorf("insert failed")
	}
	d.ID = uuid.New()
	m.store[d.ID] = d
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

func (m *mockDocumentRepo) List(_ context.Context, limit, offset int) ([]*Document, int, error) {
	var result []*Document
	for _, d := range m.store {
		result = append(result, d)
	}
	return result, len(result), nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func newTestDocService() (*Service, *mockDocumentRepo) {
	r := newTestRegistry()
	r.Register("default", NewDemoParser())
	repo := newMockDocumentRepo()
	return NewService(r, repo), repo
}

// =========== Service Tests ===========

func TestDocService_Parse(t *testing.T) {
	svc, repo := newTestDocService()

	docID := "doc-42"
	doc, err := svc.Parse(context.Background(), "default", &docID, demoSummaryDoc, demoInstructionsDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.ParserUsed {
		t.Fatalf("reference document not parsed: %v", doc.Reason)
	}
	if doc.ParserName == nil || *doc.ParserName != "demo" {
		t.Errorf("parser name = %v, want demo", doc.ParserName)
	}
	if doc.TenantID != "default" {
		t.Errorf("tenant = %q, want default", doc.TenantID)
	}
	if doc.Summary == nil || doc.Instructions == nil {
		t.Error("structured sections missing from parsed document")
	}
	if _, ok := repo.store[doc.ID]; !ok {
		t.Error("document was not persisted")
	}
}

func TestDocService_Parse_Unrecognized(t *testing.T) {
	svc, repo := newTestDocService()

	doc, err := svc.Parse(context.Background(), "default", nil, "free text with no headers", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ParserUsed {
		t.Error("headerless text reported as parsed")
	}
	if doc.Reason == nil || *doc.Reason == "" {
		t.Error("unparsed document carries no reason")
	}
	// Unparsed outcomes are persisted too.
	if _, ok := repo.store[doc.ID]; !ok {
		t.Error("unparsed document was not persisted")
	}
}

func TestDocService_Parse_UnknownTenant(t *testing.T) {
	svc, _ := newTestDocService()

	doc, err := svc.Parse(context.Background(), "other", nil, demoSummaryDoc, demoInstructionsDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ParserUsed {
		t.Error("document parsed for tenant with no registered parser")
	}
}

func TestDocService_Parse_PersistError(t *testing.T) {
	svc, repo := newTestDocService()
	repo.fail = true

	if _, err := svc.Parse(context.Background(), "default", nil, demoSummaryDoc, ""); err == nil {
		t.Error("expected error when persistence fails")
	}
}

func TestDocService_GetAndDelete(t *testing.T) {
	svc, _ := newTestDocService()

	doc, _ := svc.Parse(context.Background(), "default", nil, demoSummaryDoc, demoInstructionsDoc)

	got, err := svc.GetDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != doc.ID {
		t.Errorf("got document %s, want %s", got.ID, doc.ID)
	}

	if err := svc.DeleteDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetDocument(context.Background(), doc.ID); err == nil {
		t.Error("document still retrievable after delete")
	}
}
