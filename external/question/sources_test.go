package question

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foxseedlab/quizwadidaw/internal/question"
	"google.golang.org/api/option"
)

const sampleCSV = `Question,A,B,C,D,Correct
Capital of France?,Paris,Rome,Berlin,Madrid,A
2+2?,3,4,5,22,B

Largest planet?,Mars,Venus,Jupiter,Earth,C
`

func TestCSVSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	questions, err := NewCSVSource(srv.URL).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	if questions[1].Answer != "4" || questions[2].Answer != "Jupiter" {
		t.Fatalf("unexpected answers: %+v", questions)
	}
}

func TestCSVSource_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewCSVSource(srv.URL).Load(context.Background()); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSheetsSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v4/spreadsheets/sheet-1/values/") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Sheet1!A1:F3",
			"majorDimension": "ROWS",
			"values": [
				["Question", "A", "B", "C", "D", "Correct"],
				["Capital of France?", "Paris", "Rome", "Berlin", "Madrid", "A"],
				["Square root of 81?", 7, 8, 9, 10, "C"]
			]
		}`))
	}))
	defer srv.Close()

	src := NewSheetsSource(SheetsConfig{
		SpreadsheetID: "sheet-1",
		Range:         "Sheet1!A1:F",
		ClientOptions: []option.ClientOption{
			option.WithEndpoint(srv.URL + "/"),
			option.WithHTTPClient(srv.Client()),
		},
	})
	questions, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[1].Answer != "9" || questions[1].Options[0] != "7" {
		t.Fatalf("expected numeric cells rendered as text, got %+v", questions[1])
	}
}

type stubSource struct {
	pool []question.Question
	err  error
}

func (s stubSource) Load(context.Context) ([]question.Question, error) {
	return s.pool, s.err
}

func TestLoadBank(t *testing.T) {
	if _, err := LoadBank(context.Background(), stubSource{}); !errors.Is(err, question.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	boom := errors.New("boom")
	if _, err := LoadBank(context.Background(), stubSource{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	bank, err := LoadBank(context.Background(), stubSource{pool: []question.Question{
		{Prompt: "Q?", Options: []string{"a", "b", "c", "d"}, Answer: "b"},
	}})
	if err != nil || bank.Size() != 1 {
		t.Fatalf("unexpected result: %v %v", bank, err)
	}
}
