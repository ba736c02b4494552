package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)

type Notifier interface {
	Validate(email string) bool
	Send(ctx context.Context, msg *models.EmailMessage) bool
	NotifyHR(ctx context.Context, candidateName string, resume []byte) bool
}

type notifier struct {
	transport MailTransport
	from      string
	hrEmail   string
	logger    *zap.Logger
}

func NewNotifier(transport MailTransport, from, hrEmail string, log *zap.Logger) Notifier {
	return &notifier{
		transport: transport,
		from:      from,
		hrEmail:   hrEmail,
		logger:    logger.OrNop(log),
	}
}

// Validate is a syntactic check only: local part, "@", domain and a TLD of
// at least two letters.
func (n *notifier) Validate(email string) bool {
	return emailPattern.MatchString(email)
}

// Send submits one message and reports whether it was accepted. Failures are
// logged and never retried.
func (n *notifier) Send(ctx context.Context, msg *models.EmailMessage) bool {
	if msg == nil {
		return false
	}

	log := n.logger.With(zap.String("to", msg.To), zap.String("subject", msg.Subject))

	if !n.Validate(msg.To) {
		log.Warn("invalid email format, message not sent")
		return false
	}

	if err := ctx.Err(); err != nil {
		log.Warn("context cancelled before sending email", zap.Error(err))
		return false
	}

	raw, err := composeMessage(n.from, msg)
	if err != nil {
		log.Error("email error", zap.Error(err))
		return false
	}

	if err := n.transport.SendMail(n.from, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		log.Error("email error", zap.Error(err))
		return false
	}

	log.Info("email sent", zap.Bool("with_attachment", msg.Attachment != nil))
	return true
}

// NotifyHR tells HR about an interview-grade candidate and forwards the résumé.
func (n *notifier) NotifyHR(ctx context.Context, candidateName string, resume []byte) bool {
	candidateName = strings.TrimSpace(candidateName)

	return n.Send(ctx, &models.EmailMessage{
		To:      n.hrEmail,
		Subject: fmt.Sprintf("🎉 %s shortlisted for Interview", candidateName),
		Body: fmt.Sprintf(
			"The candidate %s has been shortlisted for an interview. Please review their application.",
			candidateName,
		),
		Attachment: &models.Attachment{
			Filename: ResumeAttachmentName(candidateName),
			Content:  resume,
		},
	})
}

func ResumeAttachmentName(candidateName string) string {
	return fmt.Sprintf("%s_Resume.pdf", candidateName)
}
