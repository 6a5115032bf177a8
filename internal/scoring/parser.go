package scoring

import (
	"strconv"
	"strings"
)

// Section labels expected in the model's reply
const (
	labelScore         = "Score:"
	labelSummary       = "Summary:"
	labelMissingSkills = "Missing Skills:"
)

// parseResponse parses the Score/Summary/Missing Skills template. It is
// deliberately strict: a missing section, a non-numeric score, or a score
// outside [1, 10] all report ok=false so the caller can take the default
// path. Out-of-range values are rejected, not clamped.
func parseResponse(text string) (Result, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var (
		result       Result
		scoreSeen    bool
		summarySeen  bool
		skillsSeen   bool
		inSummary    bool
		inSkills     bool
		summaryLines []string
	)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, labelScore):
			scoreText := strings.TrimSpace(strings.TrimPrefix(line, labelScore))
			score, err := strconv.Atoi(scoreText)
			if err != nil || score < 1 || score > 10 {
				return Result{}, false
			}
			result.Score = score
			scoreSeen = true
			inSummary, inSkills = false, false

		case strings.HasPrefix(line, labelSummary):
			first := strings.TrimSpace(strings.TrimPrefix(line, labelSummary))
			if first != "" {
				summaryLines = append(summaryLines, first)
			}
			summarySeen = true
			inSummary, inSkills = true, false

		case strings.HasPrefix(line, labelMissingSkills):
			skillsSeen = true
			inSummary, inSkills = false, true

		case line == "":
			continue

		case inSkills:
			if skill, ok := parseBullet(line); ok {
				result.MissingSkills = append(result.MissingSkills, skill)
			}

		case inSummary:
			summaryLines = append(summaryLines, line)
		}
	}

	if !scoreSeen || !summarySeen || !skillsSeen {
		return Result{}, false
	}

	result.Summary = strings.Join(summaryLines, " ")
	if result.Summary == "" {
		return Result{}, false
	}
	if len(result.MissingSkills) == 0 {
		result.MissingSkills = []string{"None identified"}
	}
	return result, true
}

// parseBullet strips a leading list marker from a missing-skill line
func parseBullet(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			skill := strings.TrimSpace(strings.TrimPrefix(line, marker))
			return skill, skill != ""
		}
	}
	// A bare "-" or "*" with no text is noise, anything else ends the list.
	if line == "-" || line == "*" {
		return "", false
	}
	return strings.TrimSpace(line), line != ""
}
