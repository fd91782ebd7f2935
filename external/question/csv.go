package question

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/foxseedlab/quizwadidaw/internal/question"
)

const csvFetchTimeout = 15 * time.Second

// CSVSource downloads the pool from a published CSV export, e.g. a sheet
// shared via "publish to web".
type CSVSource struct {
	url    string
	client *http.Client
}

func NewCSVSource(url string) question.Source {
	return &CSVSource{
		url:    url,
		client: &http.Client{Timeout: csvFetchTimeout},
	}
}

func (s *CSVSource) Load(ctx context.Context) ([]question.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch question csv: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch question csv: unexpected status %d", resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse question csv: %w", err)
	}
	return question.ParseRows(rows)
}
