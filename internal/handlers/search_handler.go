package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"resume-analyzer/internal/services"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// HandleSearch handles GET /api/resume/search?q=...&limit=n.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'q' is required",
		})
	}

	limit := c.QueryInt("limit", 10)

	hits, err := h.searchService.Search(c.Context(), query, limit)
	if err != nil {
		log.Printf("❌ Search failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Server error",
			"details": err.Error(),
		})
	}

	return c.JSON(hits)
}
