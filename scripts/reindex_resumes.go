package main

import (
	"context"
	"log"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/repositories"
	"resume-analyzer/internal/services"
)

// One-shot backfill: re-embeds every stored resume into the qdrant collection.
func main() {
	log.Println("🚀 Starting resume reindex...")

	cfg := config.Load()
	if !cfg.SearchEnabled() {
		log.Fatal("❌ QDRANT_URL is not set; nothing to reindex into")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Printf("❌ Failed to close database: %v", err)
		}
	}()

	resumeRepo := repositories.NewResumeRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	resumes, err := resumeRepo.FindAllWithText()
	if err != nil {
		log.Fatalf("❌ Failed to load resumes: %v", err)
	}

	chunker := services.NewTextChunker()
	ctx := context.Background()

	successCount := 0
	failCount := 0

	for _, resume := range resumes {
		log.Printf("📄 Indexing %s (%s)", resume.Filename, resume.ID)

		chunks := chunker.ChunkText(services.CleanText(resume.RawText), 1000, 100)

		failed := false
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i, err)
				failed = true
				break
			}

			if err := qdrantService.UpsertChunk(ctx, resume.ID.String(), resume.Filename, i, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to upsert chunk %d: %v", i, err)
				failed = true
				break
			}
		}

		if failed {
			failCount++
			continue
		}

		log.Printf("   ✅ Indexed %d chunks", len(chunks))
		successCount++
	}

	log.Printf("🏁 Reindex complete: %d succeeded, %d failed", successCount, failCount)
}
