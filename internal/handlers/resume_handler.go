package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/common"
	"resume-analyzer/internal/repositories"
	"resume-analyzer/internal/services"
)

type ResumeHandler struct {
	analyzerService services.AnalyzerService
	resumeRepo      repositories.ResumeRepository
	maxFileSize     int64
}

func NewResumeHandler(
	analyzerService services.AnalyzerService,
	resumeRepo repositories.ResumeRepository,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		analyzerService: analyzerService,
		resumeRepo:      resumeRepo,
		maxFileSize:     maxFileSize,
	}
}

// HandleUpload handles POST /api/resume/upload.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		// Missing file is still the coordinator's validation to report
		file = nil
	}

	if file != nil && file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	response, err := h.analyzerService.ProcessUpload(c.Context(), file)
	if err != nil {
		var validationErr *common.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Message,
			})
		}

		log.Printf("❌ Upload pipeline failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Server error",
			"details": err.Error(),
		})
	}

	return c.JSON(response)
}

// HandleList handles GET /api/resume.
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	summaries, err := h.resumeRepo.FindAll()
	if err != nil {
		log.Printf("❌ Failed to list resumes: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Server error",
			"details": err.Error(),
		})
	}

	return c.JSON(summaries)
}
