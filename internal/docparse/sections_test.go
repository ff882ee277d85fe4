package docparse

import (
	"strings"
	"testing"
)

func TestPreprocess(t *testing.T) {
	text := "6/3/2024, 9:41 AM summary.md file:///tmp/summary.md 1/3\n" +
		"Admitting Diagnosis:\n" +
		"● Heart failure \\(acute\\)\n" +
		"12/31/2024, 11:59 PM summary.md file:///home/u/summary.md 2/3\n" +
		"● Diabetes \\- type 2\n"

	got := preprocess(text)
	if strings.Contains(got, "file:///") {
		t.Error("artifact lines were not stripped")
	}
	if !strings.Contains(got, "Heart failure (acute)") {
		t.Errorf("escaped parentheses not unescaped: %q", got)
	}
	if !strings.Contains(got, "Diabetes - type 2") {
		t.Errorf("escaped hyphen not unescaped: %q", got)
	}
}

func TestHeaderPattern(t *testing.T) {
	p := headerPattern("Hospital Course")

	matching := []string{
		"Hospital Course:",
		"HOSPITAL COURSE",
		"hospital course:",
		"Hospital   Course:",
		"## Hospital Course",
		"**Hospital Course**",
		"  Hospital Course:",
	}
	for _, text := range matching {
		if !p.MatchString(text) {
			t.Errorf("pattern did not match %q", text)
		}
	}

	nonMatching := []string{
		"The hospital course was uneventful.",
		"Hospital",
		"Course",
	}
	for _, text := range nonMatching {
		if p.MatchString(text) {
			t.Errorf("pattern matched %q", text)
		}
	}
}

func TestSlicer(t *testing.T) {
	s := newSlicer([]Section{
		{ID: "first", Header: "First Section"},
		{ID: "second", Header: "Second Section"},
		{ID: "missing", Header: "Absent Section"},
	})

	text := "First Section:\nalpha body\n\nSecond Section:\nbeta body\n"
	bodies := s.slice(text)

	if got := bodies["first"]; got != "alpha body" {
		t.Errorf("first body = %q, want %q", got, "alpha body")
	}
	if got := bodies["second"]; got != "beta body" {
		t.Errorf("second body = %q, want %q", got, "beta body")
	}
	if _, ok := bodies["missing"]; ok {
		t.Error("absent section produced a body")
	}
}

func TestExtractBulletPoints_LineScan(t *testing.T) {
	body := "● Take your medicines every day\n" +
		"● Weigh yourself each morning\n" +
		"and write the number down\n" +
		"● Rest often"

	items := extractBulletPoints(body)
	want := []string{
		"Take your medicines every day",
		"Weigh yourself each morning and write the number down",
		"Rest often",
	}
	assertItems(t, items, want)
}

func TestExtractBulletPoints_OrderPreserved(t *testing.T) {
	items := extractBulletPoints("● Item one\n● Item two\n● Item three")
	assertItems(t, items, []string{"Item one", "Item two", "Item three"})
}

func TestExtractBulletPoints_InlineStars(t *testing.T) {
	body := "* Aspirin 81 mg daily * Metformin 500 mg twice daily * Furosemide 40 mg daily"

	items := extractBulletPoints(body)
	want := []string{
		"Aspirin 81 mg daily",
		"Metformin 500 mg twice daily",
		"Furosemide 40 mg daily",
	}
	assertItems(t, items, want)
}

func TestExtractBulletPoints_Empty(t *testing.T) {
	if items := extractBulletPoints(""); len(items) != 0 {
		t.Errorf("empty body produced %v", items)
	}
	if items := extractBulletPoints("   \n  "); len(items) != 0 {
		t.Errorf("blank body produced %v", items)
	}
}

func TestIsSubheaderLabel(t *testing.T) {
	labels := []string{"New:", "new", "CONTINUED:", "Stopped", "---", "***", ""}
	for _, l := range labels {
		if !isSubheaderLabel(l) {
			t.Errorf("%q not recognized as label", l)
		}
	}
	items := []string{"Take aspirin", "New medication started", "Stop smoking today"}
	for _, it := range items {
		if isSubheaderLabel(it) {
			t.Errorf("%q misclassified as label", it)
		}
	}
}

func TestSplitMedications(t *testing.T) {
	body := "New:\n" +
		"● Furosemide 40 mg daily\n" +
		"● Carvedilol 6.25 mg twice daily\n" +
		"Continued:\n" +
		"● Metformin 500 mg twice daily\n" +
		"Stopped:\n" +
		"● Ibuprofen"

	meds := splitMedications(body)
	assertItems(t, meds.New, []string{"Furosemide 40 mg daily", "Carvedilol 6.25 mg twice daily"})
	assertItems(t, meds.Continued, []string{"Metformin 500 mg twice daily"})
	assertItems(t, meds.Stopped, []string{"Ibuprofen"})
}

func TestSplitMedications_InlineLabels(t *testing.T) {
	meds := splitMedications("New: ● Aspirin\nContinued: ● Metformin\nStopped: ● Lisinopril")
	assertItems(t, meds.New, []string{"Aspirin"})
	assertItems(t, meds.Continued, []string{"Metformin"})
	assertItems(t, meds.Stopped, []string{"Lisinopril"})
}

func TestSplitMedications_MissingLabels(t *testing.T) {
	meds := splitMedications("Continued:\n● Metformin 500 mg")
	if len(meds.New) != 0 || len(meds.Stopped) != 0 {
		t.Errorf("absent labels produced items: new=%v stopped=%v", meds.New, meds.Stopped)
	}
	assertItems(t, meds.Continued, []string{"Metformin 500 mg"})

	empty := splitMedications("")
	if len(empty.New)+len(empty.Continued)+len(empty.Stopped) != 0 {
		t.Errorf("empty body produced items: %+v", empty)
	}
}

func TestExtractPrecautions(t *testing.T) {
	body := "Call 911 or return to the ER if you have:\n" +
		"● Chest pain\n" +
		"● Trouble breathing"

	items := extractPrecautions(body)
	want := []string{
		"Call 911 or return to the ER if you have:",
		"Chest pain",
		"Trouble breathing",
	}
	assertItems(t, items, want)
}

func TestExtractPrecautions_NoIntro(t *testing.T) {
	items := extractPrecautions("● Fever over 101\n● Severe headache")
	assertItems(t, items, []string{"Fever over 101", "Severe headache"})

	if items := extractPrecautions(""); len(items) != 0 {
		t.Errorf("empty body produced %v", items)
	}
}

func assertItems(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d items %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
