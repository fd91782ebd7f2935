package question

import (
	"fmt"
	"strings"
)

const (
	columnQuestion = "question"
	columnCorrect  = "correct"
)

var optionColumns = [OptionCount]string{"a", "b", "c", "d"}

// ParseRows converts a spreadsheet-shaped table into questions. The first row
// is a header with the columns Question, A, B, C, D and Correct in any order;
// Correct holds the letter of the right option. Fully blank rows are skipped.
func ParseRows(rows [][]string) ([]Question, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyPool
	}
	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		q, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, ErrEmptyPool
	}
	return questions, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	required := append([]string{columnQuestion, columnCorrect}, optionColumns[:]...)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("header is missing column %q", name)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (Question, error) {
	cell := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	options := make([]string, 0, OptionCount)
	for _, name := range optionColumns {
		options = append(options, cell(name))
	}
	letter := strings.ToLower(cell(columnCorrect))
	correct := -1
	for i, name := range optionColumns {
		if letter == name {
			correct = i
			break
		}
	}
	if correct < 0 {
		return Question{}, fmt.Errorf("correct option %q is not one of A-D", cell(columnCorrect))
	}

	q := Question{
		Prompt:  cell(columnQuestion),
		Options: options,
		Answer:  options[correct],
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
