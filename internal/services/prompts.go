package services

import (
	"fmt"
	"strings"

	types "github.com/yungbote/studypath-backend/internal/domain"
)

// tutorSystemInstruction anchors every generative call; the model
// answers as a patient subject tutor, not a generic assistant.
const tutorSystemInstruction = `You are a patient, knowledgeable tutor. Explain concepts clearly for a student encountering them for the first time, using concrete examples where they help. Stay on the student's chosen subject.`

func subtopicsPrompt(subject, topic string) string {
	return fmt.Sprintf(
		`List the 5 most important subtopics a student should learn for the topic %q in the subject %q. Return ONLY a JSON array of 5 short subtopic name strings, no prose and no numbering.`,
		topic, subject,
	)
}

func explanationPrompt(key types.LearningPathKey) string {
	return fmt.Sprintf(
		`Explain %q within the topic %q in %q for a student seeing it for the first time. Cover what it is, why it matters, and one worked example.`,
		key.Subtopic, key.Topic, key.Subject,
	)
}

func questionPrompt(key types.LearningPathKey, conversationContext, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The student is studying %q > %q > %q.\n", key.Subject, key.Topic, key.Subtopic)
	if conversationContext != "" {
		b.WriteString("\nConversation so far:\n")
		b.WriteString(conversationContext)
		b.WriteString("\n")
	}
	b.WriteString("\nNew question:\n")
	b.WriteString(question)
	return b.String()
}

// BuildConversationContext renders an ordered Q/A history, oldest
// first, as the linear text block embedded in follow-up prompts. Empty
// history yields an empty string.
func BuildConversationContext(history []types.QuestionHistoryItem) string {
	if len(history) == 0 {
		return ""
	}
	parts := make([]string, 0, len(history))
	for _, item := range history {
		parts = append(parts, "Q: "+item.Question+"\nA: "+item.Answer)
	}
	return strings.Join(parts, "\n\n")
}
