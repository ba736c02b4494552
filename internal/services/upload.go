package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidFileType = errors.New("only PDF resumes are accepted")
	ErrFileTooLarge    = errors.New("resume file too large")
)

// UploadService reads uploaded résumés into memory. Nothing is written to disk.
type UploadService interface {
	ReadPDF(file *multipart.FileHeader) ([]byte, error)
	MaxFileSize() int64
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{maxFileSize: maxFileSize}
}

func (s *uploadService) MaxFileSize() int64 {
	return s.maxFileSize
}

func (s *uploadService) ReadPDF(file *multipart.FileHeader) ([]byte, error) {
	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidFileType, ext)
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	limit := s.maxFileSize
	if limit <= 0 {
		limit = file.Size
	}

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, limit)
	}

	return data, nil
}
