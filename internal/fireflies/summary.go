package fireflies

import (
	"strings"
)

// SummaryFormat selects the output rendering of FormatSummary.
type SummaryFormat string

const (
	// FormatBulletPoints renders headed sections with "- " items.
	FormatBulletPoints SummaryFormat = "bullet_points"

	// FormatParagraph renders one sentence-joined block of prose.
	FormatParagraph SummaryFormat = "paragraph"
)

// FormatSummary renders a summary record as text. A nil record fails with
// InvalidParams wrapping ErrNoSummary. Unrecognized formats fall through to
// paragraph rendering; the caller gets text either way.
//
// Text is emitted in source field order. Both formats carry the same
// substantive fragments and differ only in delimiters and headers, with one
// deliberate asymmetry: in bullet form, keywords render as a single
// comma-joined line rather than a bulleted list.
func FormatSummary(summary *Summary, format SummaryFormat) (string, error) {
	if summary == nil {
		return "", &Error{Kind: KindInvalidParams, Message: "no summary record to format", Err: ErrNoSummary}
	}
	if format == FormatBulletPoints {
		return formatBulletPoints(summary), nil
	}
	return formatParagraph(summary), nil
}

func formatBulletPoints(s *Summary) string {
	var lines []string
	if s.Overview != "" {
		lines = append(lines, "Overview: "+s.Overview)
	}
	if len(s.ActionItems) > 0 {
		lines = append(lines, "Action Items:")
		for _, item := range s.ActionItems {
			lines = append(lines, "- "+item)
		}
	}
	if len(s.TopicsDiscussed) > 0 {
		lines = append(lines, "Topics Discussed:")
		for _, topic := range s.TopicsDiscussed {
			lines = append(lines, "- "+topic)
		}
	}
	if len(s.Keywords) > 0 {
		lines = append(lines, "Keywords: "+strings.Join(s.Keywords, ", "))
	}
	return strings.Join(lines, "\n")
}

func formatParagraph(s *Summary) string {
	var parts []string
	if s.Overview != "" {
		parts = append(parts, strings.TrimSpace(s.Overview))
	}
	if len(s.TopicsDiscussed) > 0 {
		parts = append(parts, "Topics discussed include: "+strings.Join(s.TopicsDiscussed, "; ")+".")
	}
	if len(s.ActionItems) > 0 {
		parts = append(parts, "Action items include: "+strings.Join(s.ActionItems, "; ")+".")
	}
	if len(s.Keywords) > 0 {
		parts = append(parts, "Key topics: "+strings.Join(s.Keywords, ", ")+".")
	}
	return strings.Join(parts, " ")
}
