package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

type EvaluatorService interface {
	Evaluate(ctx context.Context, resumeText, jobDescription string) models.ScreeningResult
}

type evaluatorService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewEvaluatorService(generator TextGenerator, promptBuilder *PromptBuilder, log *zap.Logger) EvaluatorService {
	if promptBuilder == nil {
		promptBuilder = NewPromptBuilder()
	}
	return &evaluatorService{
		generator:     generator,
		promptBuilder: promptBuilder,
		logger:        logger.OrNop(log),
	}
}

// Evaluate scores the résumé against the job description. It never fails:
// any problem with the prompt, the model call or its output yields the
// default result (score 0, no missing skills).
func (e *evaluatorService) Evaluate(ctx context.Context, resumeText, jobDescription string) models.ScreeningResult {
	prompt, err := e.promptBuilder.BuildScreeningPrompt(map[string]string{
		"resume_text":     resumeText,
		"job_description": jobDescription,
	})
	if err != nil {
		e.logger.Error("failed to build screening prompt", zap.Error(err))
		return models.DefaultScreeningResult()
	}

	response, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		e.logger.Error("screening model call failed", zap.Error(err))
		return models.DefaultScreeningResult()
	}

	result, err := parseScreeningResponse(response)
	if err != nil {
		e.logger.Warn("unusable screening response, using default result",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(response, maxLogPreview)),
		)
		return models.DefaultScreeningResult()
	}

	e.logger.Info("resume screened",
		zap.Float64("score", result.Score),
		zap.Strings("missing_skills", result.MissingSkills),
	)

	return result
}
