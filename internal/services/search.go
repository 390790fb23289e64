package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resume-analyzer/internal/models"
	"resume-analyzer/internal/repositories"
)

// SearchService answers semantic queries against the indexed resumes.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
}

type searchService struct {
	resumeRepo    repositories.ResumeRepository
	geminiService GeminiService
	qdrantService QdrantService
}

func NewSearchService(
	resumeRepo repositories.ResumeRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
) SearchService {
	return &searchService{
		resumeRepo:    resumeRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
	}
}

// Search implements SearchService. Multiple chunk hits for the same resume
// collapse into one result carrying the best-scoring snippet.
func (s *searchService) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Over-fetch so per-resume dedup still fills the page
	chunkHits, err := s.qdrantService.SearchSimilar(ctx, embedding, uint64(limit*3))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]ChunkHit)
	var order []string
	for _, hit := range chunkHits {
		if _, ok := seen[hit.ResumeID]; ok {
			continue
		}
		seen[hit.ResumeID] = hit
		order = append(order, hit.ResumeID)
		if len(order) == limit {
			break
		}
	}

	ids := make([]uuid.UUID, 0, len(order))
	for _, idStr := range order {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []models.SearchHit{}, nil
	}

	resumes, err := s.resumeRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Resume, len(resumes))
	for _, resume := range resumes {
		byID[resume.ID.String()] = resume
	}

	hits := make([]models.SearchHit, 0, len(order))
	for _, idStr := range order {
		resume, ok := byID[idStr]
		if !ok {
			continue
		}
		chunkHit := seen[idStr]
		hits = append(hits, models.SearchHit{
			ID:        idStr,
			Filename:  resume.Filename,
			CreatedAt: resume.CreatedAt,
			Score:     chunkHit.Score,
			Snippet:   snippet(chunkHit.Chunk, 200),
		})
	}

	return hits, nil
}

func snippet(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "…"
}
