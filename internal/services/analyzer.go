package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analyzer/internal/common"
	"resume-analyzer/internal/models"
	"resume-analyzer/internal/repositories"
)

// AnalyzerService runs the upload-analyze-persist pipeline for one request.
// It owns no state across calls.
type AnalyzerService interface {
	ProcessUpload(ctx context.Context, file *multipart.FileHeader) (*models.UploadResponse, error)
}

type analyzerService struct {
	resumeRepo     repositories.ResumeRepository
	storageService StorageService
	pdfParser      PDFParserService
	geminiService  GeminiService
	indexer        ResumeIndexer
}

// NewAnalyzerService wires the pipeline. indexer may be nil when semantic
// search is not configured.
func NewAnalyzerService(
	resumeRepo repositories.ResumeRepository,
	storageService StorageService,
	pdfParser PDFParserService,
	geminiService GeminiService,
	indexer ResumeIndexer,
) AnalyzerService {
	return &analyzerService{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		geminiService:  geminiService,
		indexer:        indexer,
	}
}

// ProcessUpload stages the upload, validates it, extracts its text, analyzes
// it, and persists exactly one record on success. The staged file is deleted
// on every exit path.
func (a *analyzerService) ProcessUpload(ctx context.Context, file *multipart.FileHeader) (*models.UploadResponse, error) {
	if file == nil {
		return nil, &common.ValidationError{Message: "No file uploaded"}
	}

	stagedPath, err := a.storageService.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	defer func() {
		if err := a.storageService.DeleteFile(stagedPath); err != nil {
			log.Printf("⚠️  Failed to clean up staged file %s: %v\n", stagedPath, err)
		}
	}()

	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return nil, &common.ValidationError{Message: "Only PDF files allowed"}
	}

	data, err := os.ReadFile(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged file: %w", err)
	}

	resumeText, err := a.pdfParser.ExtractText(data)
	if err != nil {
		return nil, err
	}

	// Even empty extracted text still goes to the analysis service
	analysis, err := a.geminiService.AnalyzeResume(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, &common.AnalysisServiceError{Err: fmt.Errorf("marshal analysis: %w", err)}
	}

	resume := &models.Resume{
		ID:        uuid.New(),
		Filename:  file.Filename,
		RawText:   resumeText,
		Analysis:  models.AnalysisJSON(analysisJSON),
		Rating:    analysis.Rating(),
		CreatedAt: time.Now(),
	}

	if err := a.resumeRepo.Create(resume); err != nil {
		return nil, err
	}

	if a.indexer != nil {
		a.indexer.Enqueue(IndexJob{
			ResumeID: resume.ID.String(),
			Filename: resume.Filename,
			Text:     resumeText,
		})
	}

	return &models.UploadResponse{
		ID:       resume.ID.String(),
		Analysis: analysis,
	}, nil
}
