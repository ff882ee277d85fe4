package docparse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubParser struct {
	name    string
	match   bool
	err     error
	panics  bool
	invoked bool
}

func (s *stubParser) Name() string            { return s.name }
func (s *stubParser) CanParse(string) bool    { return s.match }
func (s *stubParser) ParseSummary(string) (*Summary, error) {
	s.invoked = true
	if s.panics {
		panic("index out of range")
	}
	if s.err != nil {
		return nil, s.err
	}
	return NewSummary(), nil
}
func (s *stubParser) ParseInstructions(string) (*Instructions, error) {
	if s.err != nil {
		return nil, s.err
	}
	return NewInstructions(), nil
}

func newTestRegistry() *Registry {
	return NewRegistry(zerolog.Nop())
}

func TestRegistry_NoParserForTenant(t *testing.T) {
	r := newTestRegistry()

	out := r.ParseDischargeDocument("unknown-tenant", "some text", "more text")
	if out.Parsed {
		t.Error("outcome reported parsed with no registered parser")
	}
	if out.Reason != "no parser registered for tenant" {
		t.Errorf("reason = %q", out.Reason)
	}
	if out.Summary != nil || out.Instructions != nil {
		t.Error("unparsed outcome carries structured sections")
	}
}

func TestRegistry_NoParserRecognizes(t *testing.T) {
	r := newTestRegistry()
	r.Register("t1", &stubParser{name: "a", match: false})
	r.Register("t1", &stubParser{name: "b", match: false})

	out := r.ParseDischargeDocument("t1", "unrecognizable", "")
	if out.Parsed {
		t.Error("outcome reported parsed")
	}
	if out.Reason != "no registered parser recognized the document" {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	r := newTestRegistry()
	first := &stubParser{name: "first", match: true}
	second := &stubParser{name: "second", match: true}
	r.Register("t1", first)
	r.Register("t1", second)

	out := r.ParseDischargeDocument("t1", "doc", "")
	if !out.Parsed {
		t.Fatalf("expected parsed outcome, got reason %q", out.Reason)
	}
	if out.Parser != "first" {
		t.Errorf("parser = %q, want first", out.Parser)
	}
	if !first.invoked || second.invoked {
		t.Errorf("invocation order wrong: first=%v second=%v", first.invoked, second.invoked)
	}
}

func TestRegistry_ParserError(t *testing.T) {
	r := newTestRegistry()
	r.Register("t1", &stubParser{name: "broken", match: true, err: fmt.Errorf("missing anchor")})

	out := r.ParseDischargeDocument("t1", "doc", "")
	if out.Parsed {
		t.Error("failed parse reported as parsed")
	}
	if !strings.Contains(out.Reason, "broken") || !strings.Contains(out.Reason, "missing anchor") {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestRegistry_ParserPanicRecovered(t *testing.T) {
	r := newTestRegistry()
	r.Register("t1", &stubParser{name: "crashy", match: true, panics: true})

	out := r.ParseDischargeDocument("t1", "doc", "")
	if out.Parsed {
		t.Error("panicking parse reported as parsed")
	}
	if !strings.Contains(out.Reason, "crashy") || !strings.Contains(out.Reason, "panicked") {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestRegistry_TenantIsolation(t *testing.T) {
	r := newTestRegistry()
	r.Register("t1", &stubParser{name: "only-t1", match: true})

	if out := r.ParseDischargeDocument("t2", "doc", ""); out.Parsed {
		t.Error("parser registered for t1 handled a t2 document")
	}
	if out := r.ParseDischargeDocument("t1", "doc", ""); !out.Parsed {
		t.Errorf("t1 document not parsed: %q", out.Reason)
	}
}

func TestNewFromConvention(t *testing.T) {
	p, err := NewFromConvention("demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "demo" {
		t.Errorf("parser name = %q, want demo", p.Name())
	}

	if _, err := NewFromConvention("nonexistent"); err == nil {
		t.Error("expected error for unknown convention")
	}
}

func TestRegistry_EndToEnd(t *testing.T) {
	r := newTestRegistry()
	r.Register("default", NewDemoParser())

	out := r.ParseDischargeDocument("default", demoSummaryDoc, demoInstructionsDoc)
	if !out.Parsed {
		t.Fatalf("reference document not parsed: %q", out.Reason)
	}
	if out.Parser != "demo" {
		t.Errorf("parser = %q, want demo", out.Parser)
	}
	if out.Summary == nil || len(out.Summary.DischargeDiagnosis) != 2 {
		t.Errorf("summary not extracted: %+v", out.Summary)
	}
	if out.Instructions == nil || len(out.Instructions.DischargeMedications.New) != 1 {
		t.Errorf("instructions not extracted: %+v", out.Instructions)
	}
}
