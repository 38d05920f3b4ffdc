package pvp

import (
	"errors"
	"fmt"

	"github.com/park285/chess-duel/internal/msgcat"
	"github.com/park285/chess-duel/pkg/chessdto"
)

// State is the lifecycle of a session.
type State string

const (
	StateOpen     State = "OPEN"
	StateFull     State = "FULL"
	StateFinished State = "FINISHED"
)

// Router delivers a message to whichever connection currently holds token.
type Router interface {
	Deliver(token string, msg chessdto.Message) error
}

var (
	ErrUnknownToken   = errors.New("token is not bound to this session")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNotYourPiece   = errors.New("piece belongs to the opponent")
	ErrIllegalMove    = errors.New("destination not reachable")
	ErrAlreadyStarted = errors.New("session already has two players")
	ErrAlreadyJoined  = errors.New("token already plays in this session")
	ErrBadSnapshot    = errors.New("invalid game snapshot")
	ErrUnexpected     = errors.New("unexpected message kind")
)

// RejectError is an input error that is reported back to the client that caused it.
// Reason is a msgcat key; Data feeds its template.
type RejectError struct {
	Reason string
	Data   map[string]any
	Err    error
}

func (e *RejectError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *RejectError) Unwrap() error { return e.Err }

// Reject builds a RejectError. kv are alternating template keys and values.
func Reject(reason string, err error, kv ...any) *RejectError {
	r := &RejectError{Reason: reason, Err: err}
	if len(kv) > 1 {
		r.Data = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				r.Data[k] = kv[i+1]
			}
		}
	}
	return r
}

// Notice renders err as a server chat line. Errors that are not a RejectError become
// the generic "something went wrong" text.
func Notice(cat *msgcat.Catalog, err error) chessdto.Message {
	var rej *RejectError
	if errors.As(err, &rej) {
		return chessdto.NoticeMessage(cat.Text(rej.Reason, rej.Data))
	}
	return chessdto.NoticeMessage(cat.Text("reject.something_wrong", nil))
}
