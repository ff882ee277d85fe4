package docparse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clearsummary/api/internal/platform/db"
)

func newTestDocHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestDocService()
	return NewHandler(svc), echo.New()
}

func newParseContext(e *echo.Echo, tenantID, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discharge-documents/parse", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tenantID != "" {
		ctx := context.WithValue(req.Context(), db.TenantIDKey, tenantID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Parse(t *testing.T) {
	h, e := newTestDocHandler()

	body, _ := json.Marshal(map[string]string{
		"document_id":       "doc-1",
		"summary_text":      demoSummaryDoc,
		"instructions_text": demoInstructionsDoc,
	})
	c, rec := newParseContext(e, "default", string(body))

	if err := h.Parse(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var doc Document
	json.Unmarshal(rec.Body.Bytes(), &doc)
	if !doc.ParserUsed {
		t.Errorf("document not parsed: %v", doc.Reason)
	}
	if doc.Summary == nil || len(doc.Summary.AdmittingDiagnosis) == 0 {
		t.Error("summary sections missing from response")
	}
}

func TestHandler_Parse_Unrecognized(t *testing.T) {
	h, e := newTestDocHandler()

	body := `{"summary_text":"plain text, nothing to anchor on"}`
	c, rec := newParseContext(e, "default", body)

	// Unparsed is still a successful creation.
	if err := h.Parse(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var doc Document
	json.Unmarshal(rec.Body.Bytes(), &doc)
	if doc.ParserUsed {
		t.Error("headerless text reported as parsed")
	}
	if doc.Reason == nil {
		t.Error("unparsed response carries no reason")
	}
}

func TestHandler_Parse_MissingText(t *testing.T) {
	h, e := newTestDocHandler()

	c, _ := newParseContext(e, "default", `{"instructions_text":"something"}`)

	err := h.Parse(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetDocument(t *testing.T) {
	h, e := newTestDocHandler()

	doc, _ := h.svc.Parse(context.Background(), "default", nil, demoSummaryDoc, demoInstructionsDoc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID.String())

	if err := h.GetDocument(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetDocument_NotFound(t *testing.T) {
	h, e := newTestDocHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetDocument(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListDocuments(t *testing.T) {
	h, e := newTestDocHandler()

	h.svc.Parse(context.Background(), "default", nil, demoSummaryDoc, demoInstructionsDoc)
	h.svc.Parse(context.Background(), "default", nil, "unparsed text", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/discharge-documents", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDocuments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 2 {
		t.Errorf("expected total 2, got %d", resp.Total)
	}
}

func TestHandler_DeleteDocument(t *testing.T) {
	h, e := newTestDocHandler()

	doc, _ := h.svc.Parse(context.Background(), "default", nil, demoSummaryDoc, "")

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID.String())

	if err := h.DeleteDocument(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
