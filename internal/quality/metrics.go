package quality

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Simplification targets. Discharge material aimed at patients should
// sit at or below a 9th-grade reading level with short sentences; the
// thresholds below are calibrated against the syllable heuristic in
// this package, so they must change together.
const (
	TargetMaxGradeLevel     = 9.0
	TargetMinReadingEase    = 60.0
	TargetMaxSMOGIndex      = 9.0
	TargetMaxSentenceLength = 20.0
)

var (
	nonWordChars   = regexp.MustCompile(`[^\w\s']`)
	sentenceBreaks = regexp.MustCompile(`[.!?]+(\s+|$)`)
	nonAlpha       = regexp.MustCompile(`[^a-z]`)
	vowelGroups    = regexp.MustCompile(`[aeiouy]+`)
)

// tokenizeWords strips everything except word characters, whitespace
// and apostrophes, then splits on whitespace.
func tokenizeWords(text string) []string {
	cleaned := nonWordChars.ReplaceAllString(text, "")
	return strings.Fields(cleaned)
}

// splitSentences splits on runs of terminal punctuation followed by
// whitespace or end of text, discarding empty fragments.
func splitSentences(text string) []string {
	parts := sentenceBreaks.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// countSyllables estimates syllables by counting vowel groups with a
// silent-e adjustment and a consonant+le adjustment. Best-effort, not
// dictionary-exact: compound words and loanwords will misclassify.
func countSyllables(word string) int {
	w := strings.ToLower(word)
	if len(w) <= 3 {
		return 1
	}

	letters := nonAlpha.ReplaceAllString(w, "")
	count := len(vowelGroups.FindAllString(letters, -1))

	if strings.HasSuffix(letters, "e") {
		count--
	}
	// "table", "little": the final -le forms its own syllable when
	// preceded by a consonant.
	if n := len(letters); n >= 3 && strings.HasSuffix(letters, "le") && !isVowel(letters[n-3]) {
		count++
	}

	if count < 1 {
		return 1
	}
	return count
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// round1 rounds to one decimal place. Every floating metric goes
// through this at computation time.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// CalculateQualityMetrics tokenizes both texts and computes the full
// set of readability, simplification and lexical metrics for the
// simplified text, with the original text as the compression baseline.
// Pure computation: no I/O, no errors. Degenerate inputs (empty or
// all-punctuation strings) yield zeroed metrics rather than failing.
func CalculateQualityMetrics(originalText, simplifiedText string) QualityMetrics {
	origWords := tokenizeWords(originalText)
	words := tokenizeWords(simplifiedText)
	origSentences := splitSentences(originalText)
	sentences := splitSentences(simplifiedText)

	wordCount := len(words)
	sentenceCount := len(sentences)
	if sentenceCount < 1 {
		sentenceCount = 1
	}

	var syllables, letters, chars, complexWords int
	unique := make(map[string]struct{}, wordCount)
	for _, w := range words {
		s := countSyllables(w)
		syllables += s
		if s >= 3 {
			complexWords++
		}
		for _, r := range w {
			chars++
			if unicode.IsLetter(r) {
				letters++
			}
		}
		unique[strings.ToLower(w)] = struct{}{}
	}

	m := QualityMetrics{
		Lexical: Lexical{
			WordCount:        wordCount,
			SentenceCount:    sentenceCount,
			SyllableCount:    syllables,
			ComplexWordCount: complexWords,
		},
		Metadata: Metadata{
			CalculatedAt:        time.Now().UTC(),
			OriginalWordCount:   len(origWords),
			SimplifiedWordCount: wordCount,
		},
	}

	if wordCount > 0 && len(sentences) > 0 {
		wps := float64(wordCount) / float64(sentenceCount)
		spw := float64(syllables) / float64(wordCount)

		ease := 206.835 - 1.015*wps - 84.6*spw
		m.Readability.FleschReadingEase = round1(clamp(ease, 0, 100))

		grade := 0.39*wps + 11.8*spw - 15.59
		m.Readability.FleschKincaidGradeLevel = round1(floor0(grade))

		// SMOG is defined over 30-sentence samples; scale the
		// polysyllable count up for shorter texts.
		poly := float64(complexWords)
		if sentenceCount < 30 {
			poly *= 30.0 / float64(sentenceCount)
		}
		smog := 1.0430*math.Sqrt(poly) + 3.1291
		m.Readability.SMOGIndex = round1(floor0(smog))

		l := 100 * float64(letters) / float64(wordCount)
		s := 100 * float64(sentenceCount) / float64(wordCount)
		cli := 0.0588*l - 0.296*s - 15.8
		m.Readability.ColemanLiauIndex = round1(floor0(cli))

		ari := 4.71*float64(chars)/float64(wordCount) + 0.5*wps - 21.43
		m.Readability.AutomatedReadabilityIndex = round1(floor0(ari))

		m.Simplification.AvgSentenceLength = round1(wps)
		m.Simplification.AvgWordLength = round1(float64(chars) / float64(wordCount))
		m.Lexical.TypeTokenRatio = round1(float64(len(unique)) / float64(wordCount))
	}

	if len(origWords) > 0 {
		m.Simplification.CompressionRatio = round1(
			100 * float64(len(origWords)-wordCount) / float64(len(origWords)))

		origSentenceCount := len(origSentences)
		if origSentenceCount < 1 {
			origSentenceCount = 1
		}
		origAvg := float64(len(origWords)) / float64(origSentenceCount)
		simpAvg := float64(wordCount) / float64(sentenceCount)
		if origAvg > 0 {
			m.Simplification.SentenceLengthReduction = round1(
				100 * (origAvg - simpAvg) / origAvg)
		}
	}

	return m
}

// MeetsSimplificationTarget checks a metrics value against the
// simplification targets. All four checks are independent; the overall
// verdict is their conjunction.
func MeetsSimplificationTarget(m QualityMetrics) TargetReport {
	var reasons []string

	if m.Readability.FleschKincaidGradeLevel > TargetMaxGradeLevel {
		reasons = append(reasons, fmt.Sprintf(
			"grade level %.1f exceeds target of %.1f",
			m.Readability.FleschKincaidGradeLevel, TargetMaxGradeLevel))
	}
	if m.Readability.FleschReadingEase < TargetMinReadingEase {
		reasons = append(reasons, fmt.Sprintf(
			"reading ease %.1f is below target of %.0f",
			m.Readability.FleschReadingEase, TargetMinReadingEase))
	}
	if m.Readability.SMOGIndex > TargetMaxSMOGIndex {
		reasons = append(reasons, fmt.Sprintf(
			"SMOG index %.1f exceeds target of %.1f",
			m.Readability.SMOGIndex, TargetMaxSMOGIndex))
	}
	if m.Simplification.AvgSentenceLength > TargetMaxSentenceLength {
		reasons = append(reasons, fmt.Sprintf(
			"average sentence length %.1f words exceeds target of %.0f",
			m.Simplification.AvgSentenceLength, TargetMaxSentenceLength))
	}

	return TargetReport{MeetsTarget: len(reasons) == 0, Reasons: reasons}
}
