package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

var (
	ErrIncompleteSubmission = errors.New("please fill in all the fields and upload your resume")
	ErrUnreadableResume     = errors.New("resume could not be read as a PDF")
)

const sendFailedMessage = "Failed to send email. Please check your credentials and try again."

type ScreeningService interface {
	Screen(ctx context.Context, submission *models.Submission) (*models.Outcome, error)
}

type screeningService struct {
	pdfParser      PDFParserService
	evaluator      EvaluatorService
	policy         DecisionPolicy
	notifier       Notifier
	jobDescription string
	logger         *zap.Logger
}

func NewScreeningService(
	pdfParser PDFParserService,
	evaluator EvaluatorService,
	policy DecisionPolicy,
	notifier Notifier,
	log *zap.Logger,
) ScreeningService {
	return &screeningService{
		pdfParser:      pdfParser,
		evaluator:      evaluator,
		policy:         policy,
		notifier:       notifier,
		jobDescription: models.JobDescription,
		logger:         logger.OrNop(log),
	}
}

// Screen runs one submission through extraction, evaluation, the decision
// policy and notification, synchronously. An incomplete submission is
// rejected before anything else happens; an unreadable PDF stops the run.
// Everything after extraction always produces an Outcome.
func (s *screeningService) Screen(ctx context.Context, submission *models.Submission) (*models.Outcome, error) {
	if !submission.IsComplete() {
		return nil, ErrIncompleteSubmission
	}

	log := s.logger.With(
		zap.String("submission_id", submission.ID.String()),
		zap.String("candidate", submission.CandidateName),
	)

	log.Info("screening resume")
	text, err := s.pdfParser.ExtractTextFromBytes(submission.ResumeBytes)
	if err != nil {
		log.Warn("failed to extract resume text", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnreadableResume, err)
	}
	submission.ResumeText = text

	result := s.evaluator.Evaluate(ctx, submission.ResumeText, s.jobDescription)
	decision := s.policy.Decide(ctx, result)
	log.Info("decision made", zap.String("branch", string(decision.Branch)), zap.Float64("score", result.Score))

	outcome := &models.Outcome{
		SubmissionID:  submission.ID.String(),
		CandidateName: submission.CandidateName,
		Email:         submission.CandidateEmail,
		Score:         result.Score,
		Skills:        result.Skills,
		Experience:    result.Experience,
		Education:     result.Education,
		MissingSkills: result.MissingSkills,
		Decision:      decision,
	}

	if decision.Branch == models.BranchInterview {
		outcome.HRNotified = s.notifier.NotifyHR(ctx, submission.CandidateName, submission.ResumeBytes)
		if !outcome.HRNotified {
			log.Warn("HR notification failed")
		}
	}

	sent := s.notifier.Send(ctx, &models.EmailMessage{
		To:      submission.CandidateEmail,
		Subject: decision.Subject,
		Body:    decision.Message,
	})

	if sent {
		outcome.EmailStatus = models.SendStatusSent
		outcome.StatusMessage = fmt.Sprintf("Email successfully sent to %s", submission.CandidateEmail)
	} else {
		outcome.EmailStatus = models.SendStatusFailed
		outcome.StatusMessage = sendFailedMessage
	}

	return outcome, nil
}
