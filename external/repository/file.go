package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/foxseedlab/quizwadidaw/internal/repository"
)

// FileRepository stores the leaderboard as one JSON document.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) repository.ScoreRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Load(_ context.Context) (repository.Scores, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(repository.Scores), nil
		}
		return nil, err
	}
	scores := make(repository.Scores)
	if err := json.Unmarshal(b, &scores); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return scores, nil
}

// Save rewrites the file through a temp file so a crash never leaves a
// truncated document behind.
func (r *FileRepository) Save(_ context.Context, scores repository.Scores) error {
	b, err := json.MarshalIndent(scores, "", "    ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
