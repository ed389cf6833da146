package services

import (
	"errors"
	"testing"

	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
)

func TestExtractSubtopicList_StrictJSONArray(t *testing.T) {
	got, err := ExtractSubtopicList(`["Foo", "Bar", "Baz"]`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 3 || got[0] != "Foo" || got[1] != "Bar" || got[2] != "Baz" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestExtractSubtopicList_FencedJSONArray(t *testing.T) {
	raw := "```json\n[\"Limits\", \"Derivatives\"]\n```"
	got, err := ExtractSubtopicList(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 2 || got[0] != "Limits" || got[1] != "Derivatives" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestExtractSubtopicList_EnumeratedFallback(t *testing.T) {
	got, err := ExtractSubtopicList("1. Foo\n2. Bar\n\n3. Baz")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 3 || got[0] != "Foo" || got[1] != "Bar" || got[2] != "Baz" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestExtractSubtopicList_PlainLinesFallback(t *testing.T) {
	got, err := ExtractSubtopicList("Photosynthesis\n  Cell Respiration  \n")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 2 || got[0] != "Photosynthesis" || got[1] != "Cell Respiration" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestExtractSubtopicList_UnderFilledStillSucceeds(t *testing.T) {
	got, err := ExtractSubtopicList("1. Only One")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 1 || got[0] != "Only One" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestExtractSubtopicList_EmptyInputFails(t *testing.T) {
	_, err := ExtractSubtopicList("")
	if !errors.Is(err, pkgerrors.ErrInvalidProviderOutput) {
		t.Fatalf("expected ErrInvalidProviderOutput, got %v", err)
	}
}

func TestExtractSubtopicList_WhitespaceOnlyFails(t *testing.T) {
	_, err := ExtractSubtopicList("  \n\n   \n")
	if !errors.Is(err, pkgerrors.ErrInvalidProviderOutput) {
		t.Fatalf("expected ErrInvalidProviderOutput, got %v", err)
	}
}

func TestExtractSubtopicList_JSONArrayOfEmptiesFallsThrough(t *testing.T) {
	// a strict-parse result of all-empty strings is not a success; the
	// line fallback then sees no usable lines either
	_, err := ExtractSubtopicList(`["", "  "]`)
	if !errors.Is(err, pkgerrors.ErrInvalidProviderOutput) {
		t.Fatalf("expected ErrInvalidProviderOutput, got %v", err)
	}
}
