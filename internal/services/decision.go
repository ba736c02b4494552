package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

const (
	interviewThreshold = 80
	shortlistThreshold = 50

	interviewMessage = "🎉 Congratulations! You have been shortlisted for an interview."
	interviewSubject = "Interview Invitation"
	shortlistMessage = "✅ You have been shortlisted for future opportunities."
	shortlistSubject = "Shortlist Notification"
	rejectMessage    = "❌ Thank you for applying. We’ve decided to move forward with other candidates."
	rejectSubject    = "Rejection Email"

	feedbackHeader = "\n\n🧠 AI Feedback:\n"
)

// Classify maps a score onto a branch. Only scores strictly above 80 get an
// interview; 80 itself is a shortlist. NaN is treated as 0.
func Classify(score float64) models.Branch {
	switch {
	case math.IsNaN(score):
		return models.BranchReject
	case score > interviewThreshold:
		return models.BranchInterview
	case score >= shortlistThreshold:
		return models.BranchFutureShortlist
	default:
		return models.BranchReject
	}
}

type DecisionPolicy interface {
	Decide(ctx context.Context, result models.ScreeningResult) models.Decision
}

type decisionPolicy struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewDecisionPolicy(generator TextGenerator, promptBuilder *PromptBuilder, log *zap.Logger) DecisionPolicy {
	if promptBuilder == nil {
		promptBuilder = NewPromptBuilder()
	}
	return &decisionPolicy{
		generator:     generator,
		promptBuilder: promptBuilder,
		logger:        logger.OrNop(log),
	}
}

// Decide turns a screening result into the candidate-facing decision. A
// rejection carries model-written improvement feedback.
func (d *decisionPolicy) Decide(ctx context.Context, result models.ScreeningResult) models.Decision {
	switch branch := Classify(result.Score); branch {
	case models.BranchInterview:
		return models.Decision{Branch: branch, Message: interviewMessage, Subject: interviewSubject}
	case models.BranchFutureShortlist:
		return models.Decision{Branch: branch, Message: shortlistMessage, Subject: shortlistSubject}
	default:
		feedback := d.feedback(ctx, result.MissingSkills).Content()
		return models.Decision{
			Branch:   models.BranchReject,
			Message:  rejectMessage + feedbackHeader + feedback,
			Subject:  rejectSubject,
			Feedback: feedback,
		}
	}
}

func (d *decisionPolicy) feedback(ctx context.Context, missingSkills []string) models.Feedback {
	prompt, err := d.promptBuilder.BuildFeedbackPrompt(missingSkills)
	if err != nil {
		d.logger.Error("failed to build feedback prompt", zap.Error(err))
		return models.Feedback{}
	}

	response, err := d.generator.GenerateText(ctx, prompt)
	if err != nil {
		d.logger.Warn("feedback model call failed", zap.Error(err))
		return models.Feedback{}
	}

	return parseFeedback(response)
}
