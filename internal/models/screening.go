package models

import (
	"math"
	"strings"
)

// ScreeningResult is the parsed model verdict for one résumé. It is built from
// untrusted model output, so every field has a usable zero value.
type ScreeningResult struct {
	Skills        []string `json:"skills"`
	Experience    string   `json:"experience"`
	Education     string   `json:"education"`
	Score         float64  `json:"score"`
	MissingSkills []string `json:"missing_skills"`
}

// DefaultScreeningResult is returned whenever the model output is unusable.
func DefaultScreeningResult() ScreeningResult {
	return ScreeningResult{
		Skills:        []string{},
		Score:         0,
		MissingSkills: []string{},
	}
}

type Branch string

const (
	BranchInterview       Branch = "interview"
	BranchFutureShortlist Branch = "future_shortlist"
	BranchReject          Branch = "reject"
)

type Decision struct {
	Branch   Branch `json:"branch"`
	Message  string `json:"message"`
	Subject  string `json:"subject"`
	Feedback string `json:"feedback,omitempty"`
}

type SendStatus string

const (
	SendStatusSent   SendStatus = "sent"
	SendStatusFailed SendStatus = "failed"
)

// Outcome is everything the presentation layer needs to render a screening.
type Outcome struct {
	SubmissionID  string     `json:"submission_id"`
	CandidateName string     `json:"candidate_name"`
	Email         string     `json:"email"`
	Score         float64    `json:"score"`
	Skills        []string   `json:"skills"`
	Experience    string     `json:"experience"`
	Education     string     `json:"education"`
	MissingSkills []string   `json:"missing_skills"`
	Decision      Decision   `json:"decision"`
	HRNotified    bool       `json:"hr_notified"`
	EmailStatus   SendStatus `json:"email_status"`
	StatusMessage string     `json:"status_message"`
}

// ProgressPercent maps the score onto a 0-100 progress bar. The score itself
// is left untouched.
func (o *Outcome) ProgressPercent() int {
	switch {
	case math.IsNaN(o.Score) || o.Score <= 0:
		return 0
	case o.Score >= 100:
		return 100
	default:
		return int(o.Score)
	}
}

func (o *Outcome) MissingSkillsText() string {
	if len(o.MissingSkills) == 0 {
		return "None"
	}
	return strings.Join(o.MissingSkills, ", ")
}

func (o *Outcome) EmailSent() bool {
	return o.EmailStatus == SendStatusSent
}
