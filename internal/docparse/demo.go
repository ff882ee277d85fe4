package docparse

import "regexp"

// Section identifiers shared by tenant conventions.
const (
	SectionAdmittingDiagnosis   = "admitting_diagnosis"
	SectionDischargeDiagnosis   = "discharge_diagnosis"
	SectionHospitalCourse       = "hospital_course"
	SectionPertinentResults     = "pertinent_results"
	SectionConditionAtDischarge = "condition_at_discharge"

	SectionDischargeMedications = "discharge_medications"
	SectionFollowUpAppointments = "follow_up_appointments"
	SectionDiet                 = "diet"
	SectionLifestyleChanges     = "lifestyle_changes"
	SectionPatientInstructions  = "patient_instructions"
	SectionReturnPrecautions    = "return_precautions"
)

var demoSummarySections = []Section{
	{ID: SectionAdmittingDiagnosis, Header: "Admitting Diagnosis"},
	{ID: SectionDischargeDiagnosis, Header: "Discharge Diagnosis"},
	{ID: SectionHospitalCourse, Header: "Hospital Course"},
	{ID: SectionPertinentResults, Header: "Pertinent Results"},
	{ID: SectionConditionAtDischarge, Header: "Condition at Discharge"},
}

var demoInstructionSections = []Section{
	{ID: SectionDischargeMedications, Header: "Discharge Medications"},
	{ID: SectionFollowUpAppointments, Header: "Follow-Up Appointments"},
	{ID: SectionDiet, Header: "Diet"},
	{ID: SectionLifestyleChanges, Header: "Lifestyle Changes"},
	{ID: SectionPatientInstructions, Header: "Patient Instructions"},
	{ID: SectionReturnPrecautions, Header: "Return Precautions"},
}

// DemoParser implements the reference "demo" discharge-document
// convention: markdown-ish documents whose sections are anchored by the
// headers above, exported from PDF with the usual artifacts.
type DemoParser struct {
	anchors            []*regexp.Regexp
	summarySlicer      *slicer
	instructionsSlicer *slicer
}

func NewDemoParser() *DemoParser {
	return &DemoParser{
		// A document is recognized only when all three of these
		// summary anchors are present.
		anchors: []*regexp.Regexp{
			headerPattern("Admitting Diagnosis"),
			headerPattern("Discharge Diagnosis"),
			headerPattern("Hospital Course"),
		},
		summarySlicer:      newSlicer(demoSummarySections),
		instructionsSlicer: newSlicer(demoInstructionSections),
	}
}

func (p *DemoParser) Name() string { return "demo" }

// CanParse reports whether the text carries every required section
// anchor. Returning false is not an error: it tells the dispatcher to
// try another parser or fall back to the raw text.
func (p *DemoParser) CanParse(text string) bool {
	for _, anchor := range p.anchors {
		if !anchor.MatchString(text) {
			return false
		}
	}
	return true
}

// ParseSummary extracts the five summary sections as bullet items.
func (p *DemoParser) ParseSummary(text string) (*Summary, error) {
	bodies := p.summarySlicer.slice(preprocess(text))

	s := NewSummary()
	s.AdmittingDiagnosis = extractBulletPoints(bodies[SectionAdmittingDiagnosis])
	s.DischargeDiagnosis = extractBulletPoints(bodies[SectionDischargeDiagnosis])
	s.HospitalCourse = extractBulletPoints(bodies[SectionHospitalCourse])
	s.PertinentResults = extractBulletPoints(bodies[SectionPertinentResults])
	s.ConditionAtDischarge = extractBulletPoints(bodies[SectionConditionAtDischarge])
	return s, nil
}

// ParseInstructions extracts the instruction sections. Medications are
// sub-divided by disposition, patient instructions stay a single
// paragraph, and diet/lifestyle sections merge into one list.
func (p *DemoParser) ParseInstructions(text string) (*Instructions, error) {
	bodies := p.instructionsSlicer.slice(preprocess(text))

	ins := NewInstructions()
	ins.DischargeMedications = splitMedications(bodies[SectionDischargeMedications])
	ins.FollowUpAppointments = extractBulletPoints(bodies[SectionFollowUpAppointments])
	ins.DietAndLifestyle = append(
		extractBulletPoints(bodies[SectionDiet]),
		extractBulletPoints(bodies[SectionLifestyleChanges])...)
	ins.PatientInstructions = bodies[SectionPatientInstructions]
	ins.ReturnPrecautions = extractPrecautions(bodies[SectionReturnPrecautions])
	return ins, nil
}
