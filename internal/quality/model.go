package quality

import (
	"time"

	"github.com/google/uuid"
)

// Readability holds the five readability scores computed over the
// simplified text. All values are non-negative; ReadingEase is
// additionally clamped to [0, 100].
type Readability struct {
	FleschKincaidGradeLevel   float64 `json:"flesch_kincaid_grade_level"`
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	SMOGIndex                 float64 `json:"smog_index"`
	ColemanLiauIndex          float64 `json:"coleman_liau_index"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
}

// Simplification compares the simplified text against the original.
// CompressionRatio may be negative when the simplified text is longer.
type Simplification struct {
	CompressionRatio        float64 `json:"compression_ratio"`
	SentenceLengthReduction float64 `json:"sentence_length_reduction"`
	AvgSentenceLength       float64 `json:"avg_sentence_length"`
	AvgWordLength           float64 `json:"avg_word_length"`
}

// Lexical holds raw token statistics for the simplified text.
type Lexical struct {
	TypeTokenRatio   float64 `json:"type_token_ratio"`
	WordCount        int     `json:"word_count"`
	SentenceCount    int     `json:"sentence_count"`
	SyllableCount    int     `json:"syllable_count"`
	ComplexWordCount int     `json:"complex_word_count"`
}

// Metadata records when the metrics were computed and the raw word
// counts of both inputs.
type Metadata struct {
	CalculatedAt        time.Time `json:"calculated_at"`
	OriginalWordCount   int       `json:"original_word_count"`
	SimplifiedWordCount int       `json:"simplified_word_count"`
}

// QualityMetrics is the full metrics value object produced by
// CalculateQualityMetrics. It is constructed fresh on every call and
// never mutated afterwards.
type QualityMetrics struct {
	Readability    Readability    `json:"readability"`
	Simplification Simplification `json:"simplification"`
	Lexical        Lexical        `json:"lexical"`
	Metadata       Metadata       `json:"metadata"`
}

// TargetReport is the outcome of checking a QualityMetrics value
// against the simplification targets. Reasons lists one entry per
// failed check.
type TargetReport struct {
	MeetsTarget bool     `json:"meets_target"`
	Reasons     []string `json:"reasons,omitempty"`
}

// Report maps to the quality_metrics table: one persisted metrics
// computation, optionally linked to an external document reference.
type Report struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	DocumentID  *string        `db:"document_id" json:"document_id,omitempty"`
	Metrics     QualityMetrics `db:"metrics" json:"metrics"`
	MeetsTarget bool           `db:"meets_target" json:"meets_target"`
	Reasons     []string       `db:"reasons" json:"reasons,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
