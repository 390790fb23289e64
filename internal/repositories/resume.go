package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"resume-analyzer/internal/common"
	"resume-analyzer/internal/models"
)

// ResumeRepository is the persistence boundary for analyzed resumes. Records
// are created exactly once and never updated or deleted here.
type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindAll() ([]models.ResumeSummary, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	FindAllWithText() ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return &common.StorageError{Err: err}
	}

	return nil
}

// FindAll implements ResumeRepository. Rows come back newest-first, fully
// materialized.
func (r *resumeRepository) FindAll() ([]models.ResumeSummary, error) {
	var resumes []models.Resume
	err := r.db.
		Select("id", "filename", "created_at", "analysis").
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, &common.StorageError{Err: err}
	}

	summaries := make([]models.ResumeSummary, 0, len(resumes))
	for _, resume := range resumes {
		summaries = append(summaries, models.ResumeSummary{
			ID:        resume.ID.String(),
			Filename:  resume.Filename,
			CreatedAt: resume.CreatedAt,
			Analysis:  resume.Analysis,
		})
	}

	return summaries, nil
}

// FindAllWithText implements ResumeRepository. Used by the reindex script,
// which needs the raw text the listing omits.
func (r *resumeRepository) FindAllWithText() ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Select("id", "filename", "raw_text").
		Order("created_at ASC").
		Find(&resumes).Error
	if err != nil {
		return nil, &common.StorageError{Err: err}
	}

	return resumes, nil
}

// FindByIDs implements ResumeRepository.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, &common.StorageError{Err: err}
	}

	return resumes, nil
}
