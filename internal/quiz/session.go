package quiz

import (
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/foxseedlab/quizwadidaw/internal/question"
	"github.com/google/uuid"
)

type Participant struct {
	UserID      string
	DisplayName string
	Score       int
}

type Status struct {
	Number   int
	Total    int
	Answered []string
	Pending  []string
	Names    map[string]string
}

// Session is one group's quiz run. Inbound commands and the countdown both
// mutate it, always under mu.
type Session struct {
	env     *sessionEnv
	groupID string

	mu           sync.Mutex
	phase        Phase
	participants []string
	joined       map[string]struct{}
	displayNames map[string]string
	scores       map[string]int
	limit        int
	questions    []question.Question
	index        int
	token        string
	options      []string
	answers      map[string]string
	answerOrder  []string
	countdown    Timer

	// closed is set once the session reaches PhaseFinished; the registry
	// reads it without taking mu.
	closed atomic.Bool
}

func newSession(groupID string, env *sessionEnv) *Session {
	return &Session{
		env:          env,
		groupID:      groupID,
		phase:        PhaseForming,
		joined:       make(map[string]struct{}),
		displayNames: make(map[string]string),
		scores:       make(map[string]int),
		answers:      make(map[string]string),
	}
}

func (s *Session) GroupID() string {
	return s.groupID
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// Join adds a participant. Joining is open until the first question is posted.
func (s *Session) Join(userID, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseForming, PhaseSelectingLimit:
	case PhaseFinished:
		return ErrSessionClosed
	default:
		return ErrAlreadyStarted
	}
	if displayName != "" {
		s.displayNames[userID] = displayName
	}
	if _, ok := s.joined[userID]; ok {
		return ErrAlreadyJoined
	}
	s.joined[userID] = struct{}{}
	s.participants = append(s.participants, userID)
	s.scores[userID] = 0
	slog.Info("participant joined", "group_id", s.groupID, "user_id", userID, "participants", len(s.participants))
	return nil
}

// RequestStart moves the session to limit selection.
func (s *Session) RequestStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseForming, PhaseSelectingLimit:
	case PhaseFinished:
		return ErrSessionClosed
	default:
		return ErrAlreadyStarted
	}
	if len(s.participants) == 0 {
		return ErrNoParticipants
	}
	s.phase = PhaseSelectingLimit
	return nil
}

func (s *Session) ChooseLimit(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseSelectingLimit:
	case PhaseForming:
		return ErrNotSelectingLimit
	case PhaseFinished:
		return ErrSessionClosed
	default:
		return ErrAlreadyStarted
	}
	if s.limit != 0 {
		return ErrLimitAlreadyChosen
	}
	if !slices.Contains(s.env.limits, n) {
		return ErrInvalidLimit
	}
	if n > s.env.bank.Size() {
		return question.ErrNotEnoughQuestions
	}
	s.limit = n
	slog.Info("question limit chosen", "group_id", s.groupID, "limit", n)
	return nil
}

// Begin draws the questions and posts the first one.
func (s *Session) Begin() ([]Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseSelectingLimit:
	case PhaseForming:
		return nil, ErrNotSelectingLimit
	case PhaseFinished:
		return nil, ErrSessionClosed
	default:
		return nil, ErrAlreadyStarted
	}
	if s.limit == 0 {
		return nil, ErrLimitNotChosen
	}
	questions, err := s.env.bank.Sample(s.limit)
	if err != nil {
		return nil, err
	}
	s.questions = questions
	s.index = 0
	slog.Info("quiz started", "group_id", s.groupID, "limit", s.limit, "participants", len(s.participants))
	return []Output{s.enterQuestionLocked()}, nil
}

// SubmitAnswer records a participant's answer to the posting identified by
// token. When the last participant answers, the question resolves at once.
func (s *Session) SubmitAnswer(userID, optionText, token string) ([]Output, error) {
	s.mu.Lock()
	outputs, err := s.submitLocked(userID, optionText, token)
	s.mu.Unlock()
	s.settle(outputs)
	return outputs, err
}

// SubmitChoice is SubmitAnswer addressed by the option's position in the
// posted (shuffled) order.
func (s *Session) SubmitChoice(userID, token string, optionIndex int) ([]Output, error) {
	s.mu.Lock()
	outputs, err := s.submitChoiceLocked(userID, token, optionIndex)
	s.mu.Unlock()
	s.settle(outputs)
	return outputs, err
}

func (s *Session) submitChoiceLocked(userID, token string, optionIndex int) ([]Output, error) {
	if err := s.checkActiveLocked(token); err != nil {
		return nil, err
	}
	if optionIndex < 0 || optionIndex >= len(s.options) {
		return nil, ErrUnknownOption
	}
	return s.submitLocked(userID, s.options[optionIndex], token)
}

func (s *Session) submitLocked(userID, optionText, token string) ([]Output, error) {
	if err := s.checkActiveLocked(token); err != nil {
		return nil, err
	}
	if _, ok := s.joined[userID]; !ok {
		return nil, ErrNotParticipant
	}
	if _, ok := s.answers[userID]; ok {
		return nil, ErrAlreadyAnswered
	}
	if !slices.Contains(s.options, optionText) {
		return nil, ErrUnknownOption
	}
	s.answers[userID] = optionText
	s.answerOrder = append(s.answerOrder, userID)
	slog.Debug("answer recorded", "group_id", s.groupID, "user_id", userID, "token", token, "answered", len(s.answers))

	if len(s.answers) == len(s.participants) {
		return s.resolveLocked(token, false), nil
	}
	return nil, nil
}

func (s *Session) checkActiveLocked(token string) error {
	if s.phase != PhaseQuestionActive {
		return ErrNoActiveQuestion
	}
	if token != s.token {
		return ErrExpiredQuestion
	}
	return nil
}

func (s *Session) enterQuestionLocked() Output {
	q := s.questions[s.index]
	options := slices.Clone(q.Options)
	s.env.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	s.options = options
	s.token = uuid.NewString()
	s.answers = make(map[string]string, len(s.participants))
	s.answerOrder = nil
	s.phase = PhaseQuestionActive

	token := s.token
	s.countdown = s.env.afterFunc(s.env.timeout, func() {
		s.expire(token)
	})
	slog.Info("question posted", "group_id", s.groupID, "number", s.index+1, "total", s.limit, "token", token)

	return QuestionPosted{
		GroupID:  s.groupID,
		Number:   s.index + 1,
		Total:    s.limit,
		Prompt:   q.Prompt,
		Options:  slices.Clone(options),
		Token:    token,
		Duration: s.env.timeout,
	}
}

func (s *Session) expire(token string) {
	s.mu.Lock()
	outputs := s.resolveLocked(token, true)
	s.mu.Unlock()
	s.settle(outputs)
	if len(outputs) > 0 {
		s.env.notify(s.groupID, outputs)
	}
}

// resolveLocked scores the posting identified by token and advances. It runs
// at most once per token; the losing trigger of the timer/last-answer race
// finds the token replaced and returns nothing.
func (s *Session) resolveLocked(token string, timedOut bool) []Output {
	if s.phase != PhaseQuestionActive || token != s.token {
		return nil
	}
	s.phase = PhaseAwaitingQuestion
	s.token = ""
	s.stopCountdownLocked()

	q := s.questions[s.index]
	results := scoreAnswers(q.Answer, s.answerOrder, s.answers)
	for _, r := range results {
		s.scores[r.UserID] += r.Points
	}
	nonResponders := make([]string, 0, len(s.participants)-len(s.answers))
	for _, userID := range s.participants {
		if _, ok := s.answers[userID]; !ok {
			nonResponders = append(nonResponders, userID)
		}
	}
	resolved := QuestionResolved{
		GroupID:       s.groupID,
		Number:        s.index + 1,
		Total:         s.limit,
		CorrectAnswer: q.Answer,
		TimedOut:      timedOut,
		Results:       results,
		NonResponders: nonResponders,
		Names:         s.namesLocked(),
	}
	slog.Info("question resolved", "group_id", s.groupID, "number", s.index+1, "timed_out", timedOut, "answered", len(results), "non_responders", len(nonResponders))

	s.index++
	s.answers = make(map[string]string)
	s.answerOrder = nil

	if s.index < s.limit {
		return []Output{resolved, s.enterQuestionLocked()}
	}
	return []Output{resolved, s.finishLocked()}
}

func (s *Session) finishLocked() Output {
	s.phase = PhaseFinished
	s.closed.Store(true)
	slog.Info("quiz finished", "group_id", s.groupID, "participants", len(s.participants))
	return QuizFinished{
		GroupID:   s.groupID,
		Standings: s.standingsLocked(),
		Names:     s.namesLocked(),
	}
}

// settle hands a finished run's totals to the registry. It must be called
// without mu held.
func (s *Session) settle(outputs []Output) {
	for _, out := range outputs {
		finished, ok := out.(QuizFinished)
		if !ok {
			continue
		}
		totals := make(map[string]int, len(finished.Standings))
		for _, st := range finished.Standings {
			totals[st.UserID] = st.Score
		}
		s.env.finalize(s, totals)
	}
}

// standingsLocked ranks by score; equal scores keep join order.
func (s *Session) standingsLocked() []Standing {
	standings := make([]Standing, 0, len(s.participants))
	for _, userID := range s.participants {
		standings = append(standings, Standing{UserID: userID, Score: s.scores[userID]})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings
}

func (s *Session) namesLocked() map[string]string {
	names := make(map[string]string, len(s.displayNames))
	for id, name := range s.displayNames {
		names[id] = name
	}
	return names
}

func (s *Session) stopCountdownLocked() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
}

// Discard ends the session without scoring it.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCountdownLocked()
	s.phase = PhaseFinished
	s.closed.Store(true)
	s.token = ""
}

func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseFinished {
		return Status{}, ErrSessionClosed
	}
	if !s.phase.started() {
		return Status{}, ErrNotStarted
	}
	st := Status{
		Number: s.index + 1,
		Total:  s.limit,
		Names:  s.namesLocked(),
	}
	for _, userID := range s.participants {
		if _, ok := s.answers[userID]; ok {
			st.Answered = append(st.Answered, userID)
		} else {
			st.Pending = append(st.Pending, userID)
		}
	}
	return st, nil
}

func (s *Session) Participants() []Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Participant, 0, len(s.participants))
	for _, userID := range s.participants {
		out = append(out, Participant{
			UserID:      userID,
			DisplayName: s.displayNames[userID],
			Score:       s.scores[userID],
		})
	}
	return out
}

// Score reports a participant's points in this run while the quiz is in
// progress.
func (s *Session) Score(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.phase.started() {
		return 0, false
	}
	if _, ok := s.joined[userID]; !ok {
		return 0, false
	}
	return s.scores[userID], true
}
