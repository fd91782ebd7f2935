package quiz

type Phase int

const (
	PhaseForming Phase = iota
	PhaseSelectingLimit
	// PhaseAwaitingQuestion only holds while a question is being resolved.
	PhaseAwaitingQuestion
	PhaseQuestionActive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseForming:
		return "forming"
	case PhaseSelectingLimit:
		return "selecting_limit"
	case PhaseAwaitingQuestion:
		return "awaiting_question"
	case PhaseQuestionActive:
		return "question_active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func (p Phase) started() bool {
	return p == PhaseAwaitingQuestion || p == PhaseQuestionActive
}
