package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-analyzer/internal/common"
	"resume-analyzer/internal/handlers"
	"resume-analyzer/internal/models"
	"resume-analyzer/internal/services"
)

const testMaxFileSize = 10 * 1024 * 1024

type stubParser struct {
	text string
	err  error
}

func (s *stubParser) ExtractText(data []byte) (string, error) {
	return s.text, s.err
}

type stubGemini struct {
	result *models.AnalysisResult
	err    error
}

func (s *stubGemini) AnalyzeResume(ctx context.Context, resumeText string) (*models.AnalysisResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1}, nil
}

type memoryRepo struct {
	created []*models.Resume
}

func (m *memoryRepo) Create(resume *models.Resume) error {
	m.created = append(m.created, resume)
	return nil
}

func (m *memoryRepo) FindAll() ([]models.ResumeSummary, error) {
	summaries := make([]models.ResumeSummary, 0, len(m.created))
	for i := len(m.created) - 1; i >= 0; i-- {
		resume := m.created[i]
		summaries = append(summaries, models.ResumeSummary{
			ID:        resume.ID.String(),
			Filename:  resume.Filename,
			CreatedAt: resume.CreatedAt,
			Analysis:  resume.Analysis,
		})
	}
	return summaries, nil
}

func (m *memoryRepo) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, resume := range m.created {
		for _, id := range ids {
			if resume.ID == id {
				out = append(out, *resume)
			}
		}
	}
	return out, nil
}

func (m *memoryRepo) FindAllWithText() ([]models.Resume, error) {
	out := make([]models.Resume, 0, len(m.created))
	for _, resume := range m.created {
		out = append(out, *resume)
	}
	return out, nil
}

func ratedAnalysis(rating float64) *models.AnalysisResult {
	result := &models.AnalysisResult{}
	result.PersonalDetails.Name = "John Doe"
	result.PersonalDetails.Email = "john@x.com"
	result.AIFeedback.Rating = &rating
	result.Normalize()
	return result
}

func newTestApp(t *testing.T, parser services.PDFParserService, gemini services.GeminiService, repo *memoryRepo) *fiber.App {
	t.Helper()

	storage := services.NewStorageService(t.TempDir())
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("ensure upload dir: %v", err)
	}

	analyzer := services.NewAnalyzerService(repo, storage, parser, gemini, nil)
	handler := handlers.NewResumeHandler(analyzer, repo, testMaxFileSize)

	app := fiber.New()
	resume := app.Group("/api/resume")
	resume.Post("/upload", handler.HandleUpload)
	resume.Get("/", handler.HandleList)
	return app
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func decodeBody(t *testing.T, body io.Reader, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestUploadNoFile(t *testing.T) {
	repo := &memoryRepo{}
	app := newTestApp(t, &stubParser{}, &stubGemini{}, repo)

	// Multipart form with no "resume" part
	var empty bytes.Buffer
	writer := multipart.NewWriter(&empty)
	if err := writer.WriteField("note", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/resume/upload", &empty)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var payload map[string]string
	decodeBody(t, resp.Body, &payload)
	if payload["error"] != "No file uploaded" {
		t.Fatalf("error = %q", payload["error"])
	}
	if len(repo.created) != 0 {
		t.Fatal("store touched on missing file")
	}
}

func TestUploadRejectsTxt(t *testing.T) {
	repo := &memoryRepo{}
	app := newTestApp(t, &stubParser{text: "text"}, &stubGemini{result: ratedAnalysis(8)}, repo)

	body, contentType := multipartUpload(t, "resume.txt", "plain text resume")
	req := httptest.NewRequest("POST", "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var payload map[string]string
	decodeBody(t, resp.Body, &payload)
	if payload["error"] != "Only PDF files allowed" {
		t.Fatalf("error = %q", payload["error"])
	}
	if len(repo.created) != 0 {
		t.Fatal("record created for rejected file")
	}
}

func TestUploadSuccess(t *testing.T) {
	repo := &memoryRepo{}
	parser := &stubParser{text: "John Doe, john@x.com"}
	app := newTestApp(t, parser, &stubGemini{result: ratedAnalysis(8)}, repo)

	body, contentType := multipartUpload(t, "resume.pdf", "%PDF-1.4 fake body")
	req := httptest.NewRequest("POST", "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		ID       string                `json:"id"`
		Analysis models.AnalysisResult `json:"analysis"`
	}
	decodeBody(t, resp.Body, &payload)

	if payload.Analysis.AIFeedback.Rating == nil || *payload.Analysis.AIFeedback.Rating != 8 {
		t.Fatalf("response rating = %v, want 8", payload.Analysis.AIFeedback.Rating)
	}

	if len(repo.created) != 1 {
		t.Fatalf("creates = %d, want 1", len(repo.created))
	}
	record := repo.created[0]
	if payload.ID != record.ID.String() {
		t.Fatalf("response id %q != record id %q", payload.ID, record.ID)
	}
	if record.Rating == nil || *record.Rating != 8 {
		t.Fatalf("persisted rating = %v, want 8", record.Rating)
	}
	if record.Filename != "resume.pdf" {
		t.Fatalf("filename = %q", record.Filename)
	}
}

func TestUploadAnalysisFailureIs500(t *testing.T) {
	repo := &memoryRepo{}
	gemini := &stubGemini{err: &common.AnalysisServiceError{Err: fmt.Errorf("response is not valid JSON")}}
	app := newTestApp(t, &stubParser{text: "text"}, gemini, repo)

	body, contentType := multipartUpload(t, "resume.pdf", "%PDF-")
	req := httptest.NewRequest("POST", "/api/resume/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var payload map[string]string
	decodeBody(t, resp.Body, &payload)
	if payload["error"] != "Server error" {
		t.Fatalf("error = %q", payload["error"])
	}
	if payload["details"] == "" {
		t.Fatal("details missing from 500 response")
	}
	if len(repo.created) != 0 {
		t.Fatal("record created after analysis failure")
	}
}

func TestListNewestFirstAndByteExact(t *testing.T) {
	repo := &memoryRepo{}
	analysisA := models.AnalysisJSON(`{"aiFeedback":{"rating":5,"improvementAreas":[],"suggestedSkillsToLearn":[]}}`)
	analysisB := models.AnalysisJSON(`{"aiFeedback":{"rating":9,"improvementAreas":[],"suggestedSkillsToLearn":[]}}`)

	base := time.Now()
	_ = repo.Create(&models.Resume{ID: uuid.New(), Filename: "a.pdf", Analysis: analysisA, CreatedAt: base})
	_ = repo.Create(&models.Resume{ID: uuid.New(), Filename: "b.pdf", Analysis: analysisB, CreatedAt: base.Add(time.Minute)})

	app := newTestApp(t, &stubParser{}, &stubGemini{}, repo)

	req := httptest.NewRequest("GET", "/api/resume/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var rows []struct {
		ID       string          `json:"id"`
		Filename string          `json:"filename"`
		Analysis json.RawMessage `json:"analysis"`
	}
	decodeBody(t, resp.Body, &rows)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Filename != "b.pdf" || rows[1].Filename != "a.pdf" {
		t.Fatalf("order = [%s, %s], want [b.pdf, a.pdf]", rows[0].Filename, rows[1].Filename)
	}
	if string(rows[1].Analysis) != string(analysisA) {
		t.Fatalf("analysis not byte-exact: %s", rows[1].Analysis)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	handler := handlers.NewSearchHandler(stubSearch{})

	app := fiber.New()
	app.Get("/api/resume/search", handler.HandleSearch)

	req := httptest.NewRequest("GET", "/api/resume/search", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

type stubSearch struct{}

func (stubSearch) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	return []models.SearchHit{{ID: "id-1", Filename: "r.pdf", Score: 0.9, Snippet: "golang"}}, nil
}

func TestSearchReturnsHits(t *testing.T) {
	handler := handlers.NewSearchHandler(stubSearch{})

	app := fiber.New()
	app.Get("/api/resume/search", handler.HandleSearch)

	req := httptest.NewRequest("GET", "/api/resume/search?q=golang", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var hits []models.SearchHit
	decodeBody(t, resp.Body, &hits)
	if len(hits) != 1 || hits[0].ID != "id-1" {
		t.Fatalf("hits = %+v", hits)
	}
}
