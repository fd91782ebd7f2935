package quiz

import "errors"

// Rejections of out-of-sequence commands. None of them mutate session state.
var (
	ErrSessionClosed      = errors.New("quiz session is closed")
	ErrAlreadyStarted     = errors.New("quiz already started")
	ErrAlreadyJoined      = errors.New("user already joined")
	ErrNoParticipants     = errors.New("no participants joined")
	ErrNotSelectingLimit  = errors.New("question limit is not being selected")
	ErrInvalidLimit       = errors.New("question limit is not allowed")
	ErrLimitAlreadyChosen = errors.New("question limit already chosen")
	ErrLimitNotChosen     = errors.New("question limit not chosen")
	ErrNotStarted         = errors.New("quiz not started")
	ErrNoActiveQuestion   = errors.New("no active question")
	ErrExpiredQuestion    = errors.New("question expired")
	ErrNotParticipant     = errors.New("user is not a participant")
	ErrAlreadyAnswered    = errors.New("user already answered")
	ErrUnknownOption      = errors.New("option is not offered")
)
