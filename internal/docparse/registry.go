package docparse

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TenantParser is one tenant convention's rule-based extractor.
// CanParse never fails; ParseSummary/ParseInstructions may return an
// error (or panic) when a structural assumption is violated, and the
// registry degrades either to an unparsed outcome.
type TenantParser interface {
	Name() string
	CanParse(text string) bool
	ParseSummary(text string) (*Summary, error)
	ParseInstructions(text string) (*Instructions, error)
}

// NewFromConvention returns the parser implementation for a named
// convention. Conventions are referenced from configuration.
func NewFromConvention(name string) (TenantParser, error) {
	switch name {
	case "demo":
		return NewDemoParser(), nil
	}
	return nil, fmt.Errorf("unknown parser convention: %s", name)
}

// Registry maps tenant identifiers to their candidate parsers. It is
// populated at configuration time and read-only afterwards, so
// concurrent dispatch needs no locking.
type Registry struct {
	logger  zerolog.Logger
	parsers map[string][]TenantParser
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		logger:  logger,
		parsers: make(map[string][]TenantParser),
	}
}

// Register adds a candidate parser for a tenant. Call during startup
// only; the map is read without synchronization once serving begins.
func (r *Registry) Register(tenantID string, p TenantParser) {
	r.parsers[tenantID] = append(r.parsers[tenantID], p)
}

// TenantParsers returns the candidate parsers registered for a tenant,
// in registration order.
func (r *Registry) TenantParsers(tenantID string) []TenantParser {
	return r.parsers[tenantID]
}

// ParseDischargeDocument dispatches a raw summary/instructions pair to
// the first registered parser that recognizes the summary text. A
// missing or non-matching parser is a valid outcome, not an error: the
// document remains usable in raw form.
func (r *Registry) ParseDischargeDocument(tenantID, summaryText, instructionsText string) Outcome {
	candidates := r.parsers[tenantID]
	if len(candidates) == 0 {
		r.logger.Debug().Str("tenant", tenantID).Msg("no discharge parser registered for tenant")
		return Outcome{Reason: "no parser registered for tenant"}
	}

	for _, p := range candidates {
		if !p.CanParse(summaryText) {
			continue
		}
		return r.parseWith(p, summaryText, instructionsText)
	}

	r.logger.Info().Str("tenant", tenantID).Msg("no registered parser recognized the document")
	return Outcome{Reason: "no registered parser recognized the document"}
}

// parseWith runs one parser, converting any error or panic into an
// unparsed outcome so a malformed document never fails the pipeline.
func (r *Registry) parseWith(p TenantParser, summaryText, instructionsText string) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Str("parser", p.Name()).
				Interface("panic", rec).
				Msg("discharge parser panicked, returning document unparsed")
			out = Outcome{Reason: fmt.Sprintf("parser %s panicked: %v", p.Name(), rec)}
		}
	}()

	summary, err := p.ParseSummary(summaryText)
	if err != nil {
		r.logger.Warn().Err(err).Str("parser", p.Name()).Msg("summary parse failed")
		return Outcome{Reason: fmt.Sprintf("parser %s: %v", p.Name(), err)}
	}
	instructions, err := p.ParseInstructions(instructionsText)
	if err != nil {
		r.logger.Warn().Err(err).Str("parser", p.Name()).Msg("instructions parse failed")
		return Outcome{Reason: fmt.Sprintf("parser %s: %v", p.Name(), err)}
	}

	return Outcome{
		Parsed:       true,
		Parser:       p.Name(),
		Summary:      summary,
		Instructions: instructions,
	}
}
