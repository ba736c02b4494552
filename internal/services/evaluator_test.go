package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
)

func TestEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		validate func(*testing.T, models.ScreeningResult)
	}{
		{
			name:     "fenced json",
			response: "```json\n{\"score\": 85, \"missing_skills\": []}\n```",
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, 85.0, r.Score)
				assert.NotNil(t, r.MissingSkills)
				assert.Empty(t, r.MissingSkills)
			},
		},
		{
			name: "full schema",
			response: `{"skills": ["Python", "PyTorch"], "experience": "5 years", "education": "MSc CS",
				"score": 72.5, "missing_skills": ["LangChain"]}`,
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, []string{"Python", "PyTorch"}, r.Skills)
				assert.Equal(t, "5 years", r.Experience)
				assert.Equal(t, "MSc CS", r.Education)
				assert.Equal(t, 72.5, r.Score)
				assert.Equal(t, []string{"LangChain"}, r.MissingSkills)
			},
		},
		{
			name:     "refusal text",
			response: "I cannot process this.",
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, models.DefaultScreeningResult(), r)
			},
		},
		{
			name:     "empty response",
			response: "",
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, models.DefaultScreeningResult(), r)
			},
		},
		{
			name: "model call error",
			err:  errors.New("quota exhausted"),
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, models.DefaultScreeningResult(), r)
			},
		},
		{
			name:     "score as string",
			response: `{"score": "64%", "missing_skills": "Docker"}`,
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, 64.0, r.Score)
				assert.Equal(t, []string{"Docker"}, r.MissingSkills)
			},
		},
		{
			name:     "non-numeric score treated as zero",
			response: `{"score": "excellent", "skills": ["Go"]}`,
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, 0.0, r.Score)
				assert.Equal(t, []string{"Go"}, r.Skills)
				assert.Empty(t, r.MissingSkills)
			},
		},
		{
			name:     "absent fields",
			response: `{}`,
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, 0.0, r.Score)
				assert.NotNil(t, r.MissingSkills)
				assert.NotNil(t, r.Skills)
			},
		},
		{
			name:     "out of range score is not clamped",
			response: `{"score": 140}`,
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, 140.0, r.Score)
			},
		},
		{
			name:     "structured experience",
			response: `{"score": 55, "experience": {"years": 3}}`,
			validate: func(t *testing.T, r models.ScreeningResult) {
				assert.Equal(t, `{"years":3}`, r.Experience)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			gen.On("GenerateText", mock.Anything, mock.Anything).Return(tt.response, tt.err).Once()

			evaluator := NewEvaluatorService(gen, nil, zap.NewNop())
			result := evaluator.Evaluate(context.Background(), "resume body", models.JobDescription)

			tt.validate(t, result)
			gen.AssertExpectations(t)
		})
	}
}

func TestEvaluator_PromptCarriesResumeAndJobDescription(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateText", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Ten years of Django") &&
			strings.Contains(prompt, models.JobDescription)
	})).Return(`{"score": 10}`, nil).Once()

	result := NewEvaluatorService(gen, NewPromptBuilder(), nil).
		Evaluate(context.Background(), "Ten years of Django", models.JobDescription)

	require.Equal(t, 10.0, result.Score)
	gen.AssertExpectations(t)
}

func TestPromptBuilder_RequiresBothVariables(t *testing.T) {
	pb := NewPromptBuilder()

	_, err := pb.BuildScreeningPrompt(map[string]string{"resume_text": "text"})
	assert.Error(t, err)

	prompt, err := pb.BuildScreeningPrompt(map[string]string{"resume_text": "", "job_description": "JD"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "JD")
}

func TestPromptBuilder_FeedbackPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt, err := pb.BuildFeedbackPrompt([]string{"Docker", "LangChain"})
	require.NoError(t, err)
	assert.Equal(t, "Suggest skills to improve for this candidate based on missing skills: ['Docker', 'LangChain']", prompt)

	prompt, err = pb.BuildFeedbackPrompt(nil)
	require.NoError(t, err)
	assert.Equal(t, "Suggest skills to improve for this candidate based on missing skills: []", prompt)
}

func TestFormatSkillList(t *testing.T) {
	tests := []struct {
		skills []string
		want   string
	}{
		{skills: nil, want: "[]"},
		{skills: []string{}, want: "[]"},
		{skills: []string{"Python"}, want: "['Python']"},
		{skills: []string{"Docker", "LangChain"}, want: "['Docker', 'LangChain']"},
		{skills: []string{"Kubernetes' operators"}, want: `["Kubernetes' operators"]`},
		{skills: []string{`it's "AI"`}, want: `['it\'s "AI"']`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSkillList(tt.skills), "skills %q", tt.skills)
	}
}
