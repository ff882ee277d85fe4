package docparse

import (
	"time"

	"github.com/google/uuid"
)

// Summary holds the structured sections extracted from a discharge
// summary. Each field is an ordered list of bullet items; a section
// missing from the source text stays empty, which is not an error.
type Summary struct {
	AdmittingDiagnosis   []string `json:"admitting_diagnosis"`
	DischargeDiagnosis   []string `json:"discharge_diagnosis"`
	HospitalCourse       []string `json:"hospital_course"`
	PertinentResults     []string `json:"pertinent_results"`
	ConditionAtDischarge []string `json:"condition_at_discharge"`
}

// Medications splits discharge medications by disposition.
type Medications struct {
	New       []string `json:"new"`
	Continued []string `json:"continued"`
	Stopped   []string `json:"stopped"`
}

// Instructions holds the structured sections extracted from discharge
// instructions. PatientInstructions is free prose and is kept as a
// single trimmed paragraph rather than bullet items.
type Instructions struct {
	DischargeMedications Medications `json:"discharge_medications"`
	FollowUpAppointments []string    `json:"follow_up_appointments"`
	DietAndLifestyle     []string    `json:"diet_and_lifestyle"`
	PatientInstructions  string      `json:"patient_instructions,omitempty"`
	ReturnPrecautions    []string    `json:"return_precautions"`
}

// NewSummary returns a Summary with every section initialized empty.
func NewSummary() *Summary {
	return &Summary{
		AdmittingDiagnosis:   []string{},
		DischargeDiagnosis:   []string{},
		HospitalCourse:       []string{},
		PertinentResults:     []string{},
		ConditionAtDischarge: []string{},
	}
}

// NewInstructions returns an Instructions with every section
// initialized empty.
func NewInstructions() *Instructions {
	return &Instructions{
		DischargeMedications: Medications{New: []string{}, Continued: []string{}, Stopped: []string{}},
		FollowUpAppointments: []string{},
		DietAndLifestyle:     []string{},
		ReturnPrecautions:    []string{},
	}
}

// Outcome is the result of dispatching a document through the parser
// registry. Parsed=false with a Reason is a valid, non-exceptional
// result: the document stays usable in its raw form.
type Outcome struct {
	Parsed       bool          `json:"parser_used"`
	Parser       string        `json:"parser,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	Summary      *Summary      `json:"summary,omitempty"`
	Instructions *Instructions `json:"instructions,omitempty"`
}

// Document maps to the discharge_document table: one parse attempt with
// its outcome, optionally linked to an external document reference.
type Document struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	DocumentID   *string       `db:"document_id" json:"document_id,omitempty"`
	TenantID     string        `db:"tenant_id" json:"tenant_id"`
	ParserUsed   bool          `db:"parser_used" json:"parser_used"`
	ParserName   *string       `db:"parser_name" json:"parser_name,omitempty"`
	Reason       *string       `db:"reason" json:"reason,omitempty"`
	Summary      *Summary      `db:"summary" json:"summary,omitempty"`
	Instructions *Instructions `db:"instructions" json:"instructions,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}
