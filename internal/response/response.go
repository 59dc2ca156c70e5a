// Package response classifies raw completion text and prepares it for display.
package response

import (
	"strings"

	"notiguard/internal/models"
)

// Sentinel protocol v1. The prompt asks the model to prefix "not found" and
// "off-topic" answers with these tokens; changing them requires changing the
// prompt in the same release.
const (
	MissingSentinel    = "TYPE:MISSING"
	IrrelevantSentinel = "TYPE:IRRELEVANT"
	normalMarker       = "TYPE:NORMAL"
)

// BulletGlyph is the bullet the prompt asks the model to use for attributes.
const BulletGlyph = "•"

// Classify derives the response kind from raw completion text. Tokens are
// matched anywhere in the text, not only as a prefix.
func Classify(raw string) models.ResponseKind {
	switch {
	case strings.Contains(raw, MissingSentinel):
		return models.KindMissing
	case strings.Contains(raw, IrrelevantSentinel):
		return models.KindIrrelevant
	default:
		return models.KindNormal
	}
}

// Clean removes protocol tokens from raw text and repairs bullet lines that
// the model collapsed onto one line.
func Clean(raw string) string {
	text := stripLeadingMarker(raw)
	text = removeSentinels(text)
	return splitBullets(strings.TrimSpace(text))
}

func stripLeadingMarker(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	for _, marker := range []string{MissingSentinel, IrrelevantSentinel, normalMarker} {
		if !strings.HasPrefix(trimmed, marker) {
			continue
		}
		rest := strings.TrimLeft(trimmed[len(marker):], " \t")
		rest = strings.TrimPrefix(rest, "\r")
		return strings.TrimPrefix(rest, "\n")
	}
	return text
}

// removeSentinels deletes tokens that drifted into the body. Removal can
// splice a new token together ("TYPE:TYPE:MISSINGMISSING"), so it repeats.
func removeSentinels(text string) string {
	for strings.Contains(text, MissingSentinel) || strings.Contains(text, IrrelevantSentinel) {
		text = strings.ReplaceAll(text, MissingSentinel, "")
		text = strings.ReplaceAll(text, IrrelevantSentinel, "")
	}
	return text
}

// splitBullets puts every bullet of a multi-bullet line on its own line.
func splitBullets(text string) string {
	lines := strings.Split(text, "\n")
	fixed := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.Count(line, BulletGlyph) < 2 {
			fixed = append(fixed, line)
			continue
		}

		parts := strings.Split(line, BulletGlyph)
		if lead := strings.TrimSpace(parts[0]); lead != "" {
			fixed = append(fixed, lead)
		}
		for _, part := range parts[1:] {
			if part = strings.TrimSpace(part); part != "" {
				fixed = append(fixed, BulletGlyph+" "+part)
			}
		}
	}

	return strings.Join(fixed, "\n")
}
