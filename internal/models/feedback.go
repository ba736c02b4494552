package models

import "strings"

// NoFeedback is shown when the model gave nothing usable.
const NoFeedback = "No feedback available."

type FeedbackKind int

const (
	FeedbackText FeedbackKind = iota
	FeedbackStructured
)

// Feedback is the improvement advice returned by the model for a rejected
// candidate: either plain text or a structured object.
type Feedback struct {
	Kind   FeedbackKind
	Text   string
	Fields map[string]any
}

func TextFeedback(text string) Feedback {
	return Feedback{Kind: FeedbackText, Text: text}
}

func StructuredFeedback(fields map[string]any) Feedback {
	return Feedback{Kind: FeedbackStructured, Fields: fields}
}

// Content returns the feedback text. Structured feedback contributes its
// "text" field; anything else falls back to NoFeedback.
func (f Feedback) Content() string {
	var text string
	switch f.Kind {
	case FeedbackText:
		text = f.Text
	case FeedbackStructured:
		if v, ok := f.Fields["text"].(string); ok {
			text = v
		}
	}

	if text = strings.TrimSpace(text); text == "" {
		return NoFeedback
	}
	return text
}
