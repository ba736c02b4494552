package models

import (
	"strings"

	"github.com/google/uuid"
)

// JobDescription is the single open role every résumé is screened against.
const JobDescription = "Looking for a Python Developer with AI expertise."

// Submission is one candidate application. It lives for a single request.
type Submission struct {
	ID             uuid.UUID
	CandidateName  string
	CandidateEmail string
	ResumeFilename string
	ResumeBytes    []byte
	ResumeText     string
}

func NewSubmission(name, email, filename string, resume []byte) *Submission {
	return &Submission{
		ID:             uuid.New(),
		CandidateName:  strings.TrimSpace(name),
		CandidateEmail: strings.TrimSpace(email),
		ResumeFilename: filename,
		ResumeBytes:    resume,
	}
}

// IsComplete reports whether name, email and résumé are all present.
func (s *Submission) IsComplete() bool {
	return s != nil &&
		s.CandidateName != "" &&
		s.CandidateEmail != "" &&
		len(s.ResumeBytes) > 0
}
