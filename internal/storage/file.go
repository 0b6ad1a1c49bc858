package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bilgisen/lawgate/internal/models"
)

// FileArchive keeps one JSON file per submission on local disk
type FileArchive struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileArchive(basePath string) (*FileArchive, error) {
	root := filepath.Join(basePath, "submissions")
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileArchive{
		basePath: root,
	}, nil
}

// Save writes sub to disk and records the file path on it
func (s *FileArchive) Save(ctx context.Context, sub *models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := filepath.Join(s.basePath, filepath.FromSlash(datedName(sub)))
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create date directory: %w", err)
	}

	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write submission file: %w", err)
	}

	sub.FilePath = filePath
	return nil
}

// Get retrieves a submission by its ID
func (s *FileArchive) Get(ctx context.Context, id string) (*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(id)
}

func (s *FileArchive) get(id string) (*models.Submission, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if matchesID(filepath.ToSlash(file), id) {
			return readSubmission(file)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List retrieves a paginated list of submissions
func (s *FileArchive) List(ctx context.Context, page, pageSize int) ([]*models.Submission, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.files()
	if err != nil {
		return nil, 0, err
	}
	sortNewestFirst(files)

	start, end := pageBounds(page, pageSize, len(files))
	subs := make([]*models.Submission, 0, end-start)
	for _, file := range files[start:end] {
		sub, err := readSubmission(file)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, sub)
	}

	return subs, len(files), nil
}

// Delete deletes a submission by its ID
func (s *FileArchive) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.get(id)
	if err != nil {
		return err
	}

	if err := os.Remove(sub.FilePath); err != nil {
		return fmt.Errorf("failed to delete submission file: %w", err)
	}
	return nil
}

func (s *FileArchive) files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}
	return files, nil
}

func readSubmission(path string) (*models.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var sub models.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
	}
	sub.FilePath = path
	return &sub, nil
}
