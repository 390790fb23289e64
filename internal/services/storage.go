package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StorageService owns the transient staging area that uploads land in before
// processing. Staged files never outlive the request that created them.
type StorageService interface {
	SaveFile(file *multipart.FileHeader) (string, error)
	DeleteFile(path string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stages the upload under a unique name and returns the staged path.
func (s *storageService) SaveFile(file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	stagedName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	stagedPath := filepath.Join(s.uploadPath, stagedName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(stagedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to stage file: %w", err)
	}

	return stagedPath, nil
}

func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete staged file: %w", err)
	}
	return nil
}
