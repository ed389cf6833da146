package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
)

var enumMarkerRe = regexp.MustCompile(`^\d+\.\s*`)

// ExtractSubtopicList parses a generative response that was asked for a
// JSON array of subtopic names. Models do not reliably honor that, so
// parsing is two-tier: strict JSON first, then line-based recovery that
// strips "1." style enumeration markers. Lines that trim to nothing are
// dropped; an under-filled list still succeeds as long as it is
// non-empty.
func ExtractSubtopicList(raw string) ([]string, error) {
	text := stripCodeFence(strings.TrimSpace(raw))

	if items, wellFormed := parseStrictArray(text); wellFormed {
		// a syntactically valid array is authoritative: no line fallback
		if len(items) == 0 {
			return nil, fmt.Errorf("array of empty subtopics: %w", pkgerrors.ErrInvalidProviderOutput)
		}
		return items, nil
	}

	items := make([]string, 0, 5)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(enumMarkerRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		items = append(items, line)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no subtopics in model output: %w", pkgerrors.ErrInvalidProviderOutput)
	}
	return items, nil
}

// parseStrictArray reports wellFormed=true when text is a valid JSON
// string array, regardless of how many usable items survive trimming.
func parseStrictArray(text string) (items []string, wellFormed bool) {
	var arr []string
	if err := json.Unmarshal([]byte(text), &arr); err != nil {
		return nil, false
	}
	items = make([]string, 0, len(arr))
	for _, s := range arr {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		items = append(items, s)
	}
	return items, true
}

// stripCodeFence unwraps a ```json ... ``` block when the model wrapped
// its answer in one.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	inner := strings.TrimPrefix(text, "```")
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		// first line may carry a language tag
		head := strings.TrimSpace(inner[:idx])
		if head == "" || !strings.ContainsAny(head, " \t") {
			inner = inner[idx+1:]
		}
	}
	inner = strings.TrimSuffix(strings.TrimSpace(inner), "```")
	return strings.TrimSpace(inner)
}
