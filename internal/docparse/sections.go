package docparse

import (
	"regexp"
	"strings"
)

// Section pairs a stable section identifier with the header text that
// anchors it in the source document. Tenant conventions are expressed
// as ordered Section lists consumed by one generic slicer, so adding a
// convention is a data change rather than new slicing code.
type Section struct {
	ID     string
	Header string
}

var (
	// Annotation lines left behind by PDF-to-markdown export tooling,
	// e.g. "6/3/2024, 9:41 AM summary.md file:///tmp/summary.md 1/3".
	artifactLine = regexp.MustCompile(`(?m)^.*\d{1,2}/\d{1,2}/\d{4},\s+\d{1,2}:\d{2}\s+(?:AM|PM).*file:///\S+\.md\s+\d+/\d+\s*$`)

	escapedMarkdown = regexp.MustCompile(`\\([\[\](){}*_+\->])`)

	inlineStarSplit = regexp.MustCompile(`\s*\*\s+`)
	leadingMarker   = regexp.MustCompile(`^[-●•]\s*`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	bulletLine      = regexp.MustCompile(`^[●•\-*]\s*(.*)$`)
	firstBullet     = regexp.MustCompile(`[●•]|(?:^|\n)\s*[-*]\s`)

	newLabel       = regexp.MustCompile(`(?i)\bnew\s*:`)
	continuedLabel = regexp.MustCompile(`(?i)\bcontinued\s*:`)
	stoppedLabel   = regexp.MustCompile(`(?i)\bstopped\s*:`)
)

// preprocess strips export-tool artifact lines and un-escapes markdown
// escape sequences before section extraction.
func preprocess(text string) string {
	text = artifactLine.ReplaceAllString(text, "")
	return escapedMarkdown.ReplaceAllString(text, "$1")
}

// headerPattern builds a case-insensitive matcher for a section header,
// tolerant of markdown heading markers, bold markers, a trailing colon,
// and whitespace runs between header words (PDF extraction inserts
// them).
func headerPattern(header string) *regexp.Regexp {
	words := strings.Fields(header)
	for i := range words {
		words[i] = regexp.QuoteMeta(words[i])
	}
	return regexp.MustCompile(
		`(?im)^[ \t]*(?:#{1,3}[ \t]*)?(?:\*\*[ \t]*)?` +
			strings.Join(words, `\s+`) +
			`(?:[ \t]*\*\*)?[ \t]*:?`)
}

// slicer locates each section header in a document and slices out the
// text between it and the nearest following known header.
type slicer struct {
	sections []Section
	patterns []*regexp.Regexp
}

func newSlicer(sections []Section) *slicer {
	s := &slicer{sections: sections, patterns: make([]*regexp.Regexp, len(sections))}
	for i, sec := range sections {
		s.patterns[i] = headerPattern(sec.Header)
	}
	return s
}

// slice returns the body of every section found in text, keyed by
// section ID. Sections whose header is absent are simply omitted.
func (s *slicer) slice(text string) map[string]string {
	bodies := make(map[string]string, len(s.sections))
	for i, sec := range s.sections {
		loc := s.patterns[i].FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[1]
		end := len(text)
		for j := range s.sections {
			if j == i {
				continue
			}
			if l := s.patterns[j].FindStringIndex(text[start:]); l != nil && start+l[0] < end {
				end = start + l[0]
			}
		}
		bodies[sec.ID] = strings.TrimSpace(text[start:end])
	}
	return bodies
}

// isSubheaderLabel reports whether a fragment is only a medication
// disposition label or a separator, not a real bullet item.
func isSubheaderLabel(s string) bool {
	t := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ":")
	switch t {
	case "new", "continued", "stopped":
		return true
	}
	return strings.Trim(t, "-_=* \t") == ""
}

// extractBulletPoints tokenizes a section body into bullet items using
// a two-pass strategy. If the body carries multiple *-delimited
// segments (inline or across lines) each segment becomes one item;
// otherwise a line scan treats ●/•/-/* lines as item starts and folds
// unmarked lines into the preceding item.
func extractBulletPoints(body string) []string {
	items := []string{}

	segs := inlineStarSplit.Split(body, -1)
	nonEmpty := make([]string, 0, len(segs))
	for _, seg := range segs {
		if strings.TrimSpace(seg) != "" {
			nonEmpty = append(nonEmpty, seg)
		}
	}
	if len(nonEmpty) > 1 {
		for _, seg := range nonEmpty {
			item := leadingMarker.ReplaceAllString(strings.TrimSpace(seg), "")
			item = strings.TrimSpace(whitespaceRuns.ReplaceAllString(item, " "))
			if item == "" || isSubheaderLabel(item) {
				continue
			}
			items = append(items, item)
		}
		return items
	}

	var current string
	flush := func() {
		if strings.TrimSpace(current) != "" {
			items = append(items, strings.TrimSpace(current))
		}
		current = ""
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := bulletLine.FindStringSubmatch(trimmed); m != nil {
			flush()
			current = m[1]
			continue
		}
		if isSubheaderLabel(trimmed) {
			continue
		}
		if current != "" {
			current += " " + trimmed
		} else {
			current = trimmed
		}
	}
	flush()
	return items
}

// splitMedications slices a "Discharge Medications" body into its three
// disposition sub-bodies and bullet-tokenizes each independently.
func splitMedications(body string) Medications {
	newLoc := newLabel.FindStringIndex(body)
	contLoc := continuedLabel.FindStringIndex(body)
	stopLoc := stoppedLabel.FindStringIndex(body)

	return Medications{
		New:       extractBulletPoints(sliceBetween(body, newLoc, contLoc, stopLoc)),
		Continued: extractBulletPoints(sliceBetween(body, contLoc, stopLoc)),
		Stopped:   extractBulletPoints(sliceBetween(body, stopLoc)),
	}
}

func sliceBetween(body string, start []int, boundaries ...[]int) string {
	if start == nil {
		return ""
	}
	end := len(body)
	for _, b := range boundaries {
		if b != nil && b[0] >= start[1] && b[0] < end {
			end = b[0]
		}
	}
	return body[start[1]:end]
}

// extractPrecautions keeps an optional leading intro sentence (when it
// is non-trivial and not itself a bullet) followed by the bulleted
// items from the remainder.
func extractPrecautions(body string) []string {
	items := []string{}
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return items
	}

	if loc := firstBullet.FindStringIndex(trimmed); loc != nil && loc[0] > 0 {
		intro := strings.TrimSpace(trimmed[:loc[0]])
		if len(intro) > 5 && !bulletLine.MatchString(intro) {
			items = append(items, whitespaceRuns.ReplaceAllString(intro, " "))
		}
		trimmed = trimmed[loc[0]:]
	}
	return append(items, extractBulletPoints(trimmed)...)
}
