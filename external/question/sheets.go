package question

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/auth/credentials"
	"github.com/foxseedlab/quizwadidaw/internal/question"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetsReadonlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

type SheetsConfig struct {
	SpreadsheetID   string
	Range           string
	CredentialsJSON string
	APIKey          string
	// ClientOptions are appended after the auth options.
	ClientOptions []option.ClientOption
}

// SheetsSource reads the question pool from a Google Sheets range whose
// first row is the header.
type SheetsSource struct {
	cfg SheetsConfig
}

func NewSheetsSource(cfg SheetsConfig) question.Source {
	return &SheetsSource{cfg: cfg}
}

func (s *SheetsSource) Load(ctx context.Context) ([]question.Question, error) {
	opts, err := s.clientOptions()
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	resp, err := svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.cfg.Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet range %s: %w", s.cfg.Range, err)
	}
	slog.Info("question sheet fetched", "spreadsheet_id", s.cfg.SpreadsheetID, "range", resp.Range, "rows", len(resp.Values))
	return question.ParseRows(stringRows(resp.Values))
}

func (s *SheetsSource) clientOptions() ([]option.ClientOption, error) {
	var opts []option.ClientOption
	switch {
	case s.cfg.CredentialsJSON != "":
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsJSON: []byte(s.cfg.CredentialsJSON),
			Scopes:          []string{sheetsReadonlyScope},
		})
		if err != nil {
			return nil, fmt.Errorf("detect credentials: %w", err)
		}
		opts = append(opts, option.WithAuthCredentials(creds))
	case s.cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(s.cfg.APIKey))
	}
	return append(opts, s.cfg.ClientOptions...), nil
}

func stringRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		row := make([]string, len(v))
		for i, cell := range v {
			if cell == nil {
				continue
			}
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows
}
