package services

import (
	"context"
	"log"
	"sync"
)

const (
	indexChunkSize    = 1000
	indexChunkOverlap = 100
)

// IndexJob carries one successfully persisted resume into the search index.
type IndexJob struct {
	ResumeID string
	Filename string
	Text     string
}

// ResumeIndexer indexes resumes into qdrant in the background. Indexing is
// best-effort: failures are logged and never surfaced to the upload response.
type ResumeIndexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job IndexJob)
}

type resumeIndexer struct {
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
	jobQueue      chan IndexJob
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewResumeIndexer(
	geminiService GeminiService,
	qdrantService QdrantService,
	concurrency int,
	queueSize int,
) ResumeIndexer {
	return &resumeIndexer{
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       NewTextChunker(),
		jobQueue:      make(chan IndexJob, queueSize),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements ResumeIndexer.
func (r *resumeIndexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting indexer with %d workers\n", r.concurrency)

	for i := 0; i < r.concurrency; i++ {
		r.wg.Add(1)
		go r.processJobs(ctx, i+1)
	}
}

// Stop implements ResumeIndexer. Queued jobs that have not started are dropped.
func (r *resumeIndexer) Stop() {
	close(r.stopChan)
	r.wg.Wait()
	log.Println("✅ Indexer stopped")
}

// Enqueue implements ResumeIndexer. It never blocks the upload path: when the
// queue is full the job is dropped and logged.
func (r *resumeIndexer) Enqueue(job IndexJob) {
	select {
	case r.jobQueue <- job:
	default:
		log.Printf("⚠️  Index queue full, dropping resume %s\n", job.ResumeID)
	}
}

func (r *resumeIndexer) processJobs(ctx context.Context, workerID int) {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopChan:
			return
		case job := <-r.jobQueue:
			if err := r.IndexResume(ctx, job); err != nil {
				log.Printf("❌ Indexer #%d failed on resume %s: %v\n", workerID, job.ResumeID, err)
			}
		}
	}
}

// IndexResume chunks, embeds, and upserts one resume.
func (r *resumeIndexer) IndexResume(ctx context.Context, job IndexJob) error {
	chunks := r.chunker.ChunkText(CleanText(job.Text), indexChunkSize, indexChunkOverlap)

	for i, chunk := range chunks {
		embedding, err := r.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return err
		}

		if err := r.qdrantService.UpsertChunk(ctx, job.ResumeID, job.Filename, i, chunk, embedding); err != nil {
			return err
		}
	}

	return nil
}
