package services

import (
	"strings"
	"testing"

	types "github.com/yungbote/studypath-backend/internal/domain"
)

func TestBuildConversationContext_OrderAndFormat(t *testing.T) {
	history := []types.QuestionHistoryItem{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}
	got := BuildConversationContext(history)
	want := "Q: Q1\nA: A1\n\nQ: Q2\nA: A2"
	if got != want {
		t.Fatalf("unexpected context:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuildConversationContext_Empty(t *testing.T) {
	if got := BuildConversationContext(nil); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
}

func TestQuestionPrompt_EmbedsContextAndQuestion(t *testing.T) {
	key := types.LearningPathKey{Subject: "Math", Topic: "Algebra", Subtopic: "Linear Equations"}
	prompt := questionPrompt(key, "Q: Q1\nA: A1", "What is slope?")
	for _, want := range []string{"Math", "Algebra", "Linear Equations", "Q: Q1", "What is slope?"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestQuestionPrompt_NoContextSection(t *testing.T) {
	key := types.LearningPathKey{Subject: "Math", Topic: "Algebra", Subtopic: "Linear Equations"}
	prompt := questionPrompt(key, "", "What is slope?")
	if strings.Contains(prompt, "Conversation so far") {
		t.Fatalf("unexpected context section for first question:\n%s", prompt)
	}
}

func TestSubtopicsPrompt_AsksForJSONArrayOfFive(t *testing.T) {
	prompt := subtopicsPrompt("Math", "Algebra")
	if !strings.Contains(prompt, "JSON array") || !strings.Contains(prompt, "5") {
		t.Fatalf("prompt must request 5 subtopics as a JSON array:\n%s", prompt)
	}
}
