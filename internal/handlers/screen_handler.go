package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

const (
	incompleteWarning = "Please fill in all the fields and upload your resume."
	unexpectedError   = "Something went wrong while screening your resume. Please try again."
)

type pageData struct {
	Name    string
	Email   string
	Warning string
	Error   string
	Outcome *models.Outcome
}

type ScreenHandler struct {
	screener services.ScreeningService
	uploads  services.UploadService
	logger   *zap.Logger
}

func NewScreenHandler(
	screener services.ScreeningService,
	uploads services.UploadService,
	log *zap.Logger,
) *ScreenHandler {
	return &ScreenHandler{
		screener: screener,
		uploads:  uploads,
		logger:   logger.OrNop(log),
	}
}

// HandleForm handles GET /
func (h *ScreenHandler) HandleForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, pageData{})
}

// HandleSubmit handles POST / and renders the outcome into the same page.
func (h *ScreenHandler) HandleSubmit(c *fiber.Ctx) error {
	data := pageData{
		Name:  strings.TrimSpace(c.FormValue("name")),
		Email: strings.TrimSpace(c.FormValue("email")),
	}

	outcome, status, err := h.screen(c)
	if err != nil {
		if status == fiber.StatusBadRequest {
			data.Warning = userMessage(err)
		} else {
			data.Error = userMessage(err)
		}
		return h.render(c, status, data)
	}

	data.Outcome = outcome
	return h.render(c, fiber.StatusOK, data)
}

// HandleScreenAPI handles POST /api/v1/screen
func (h *ScreenHandler) HandleScreenAPI(c *fiber.Ctx) error {
	outcome, status, err := h.screen(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{
			"error": userMessage(err),
		})
	}

	return c.JSON(outcome)
}

// screen reads the form and runs the screening. The returned status is the
// HTTP status matching the failure domain of err.
func (h *ScreenHandler) screen(c *fiber.Ctx) (*models.Outcome, int, error) {
	submission, err := h.readSubmission(c)
	if err != nil {
		return nil, fiber.StatusBadRequest, err
	}

	outcome, err := h.screener.Screen(c.UserContext(), submission)
	switch {
	case err == nil:
		return outcome, fiber.StatusOK, nil
	case errors.Is(err, services.ErrIncompleteSubmission):
		return nil, fiber.StatusBadRequest, err
	case errors.Is(err, services.ErrUnreadableResume):
		return nil, fiber.StatusUnprocessableEntity, err
	default:
		h.logger.Error("screening failed", zap.Error(err))
		return nil, fiber.StatusInternalServerError, err
	}
}

func (h *ScreenHandler) readSubmission(c *fiber.Ctx) (*models.Submission, error) {
	name := c.FormValue("name")
	email := c.FormValue("email")

	file, err := c.FormFile("resume")
	if err != nil || file == nil || strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, services.ErrIncompleteSubmission
	}

	resume, err := h.uploads.ReadPDF(file)
	if err != nil {
		return nil, err
	}

	return models.NewSubmission(name, email, file.Filename, resume), nil
}

func (h *ScreenHandler) render(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrIncompleteSubmission):
		return incompleteWarning
	case errors.Is(err, services.ErrInvalidFileType),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrUnreadableResume):
		return err.Error()
	default:
		return unexpectedError
	}
}
