package quiz

import "time"

// Output is a rendering directive produced by a state transition.
type Output interface {
	output()
}

type QuestionPosted struct {
	GroupID  string
	Number   int
	Total    int
	Prompt   string
	Options  []string
	Token    string
	Duration time.Duration
}

type AnswerResult struct {
	UserID  string
	Answer  string
	Correct bool
	// Rank is the position among correct answerers, -1 for a wrong answer.
	Rank   int
	Points int
}

type QuestionResolved struct {
	GroupID       string
	Number        int
	Total         int
	CorrectAnswer string
	TimedOut      bool
	// Results are in arrival order.
	Results       []AnswerResult
	NonResponders []string
	Names         map[string]string
}

type Standing struct {
	UserID string
	Score  int
}

type QuizFinished struct {
	GroupID   string
	Standings []Standing
	Names     map[string]string
}

func (QuestionPosted) output()   {}
func (QuestionResolved) output() {}
func (QuizFinished) output()     {}
