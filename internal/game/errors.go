package game

// Kind classifies a domain error so the gateway can shape the failure ack
// (and handlers an HTTP status) without matching on message strings.
type Kind string

const (
	KindAuth          Kind = "authentication"
	KindNotFound      Kind = "not_found"
	KindStateConflict Kind = "state_conflict"
	KindValidation    Kind = "validation"
	KindInternal      Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func conflict(msg string) *Error   { return &Error{Kind: KindStateConflict, Message: msg} }
func validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

var (
	ErrRoomNotFound     = &Error{Kind: KindNotFound, Message: "room not found"}
	ErrInvalidTicket    = &Error{Kind: KindAuth, Message: "invalid or expired ticket"}
	ErrRoomClosed       = conflict("room is closed")
	ErrRoomNotActive    = conflict("room is not active")
	ErrNotYourTurn      = conflict("not your turn")
	ErrTherapistOnly    = conflict("therapist role required")
	ErrConsentRequired  = conflict("consent required")
	ErrTherapistOffline = conflict("therapist is offline")
	ErrJourneyComplete  = conflict("journey already complete")
	ErrMoveLocked       = conflict("move is no longer editable")
	ErrNotYourMove      = conflict("move belongs to another participant")
	ErrNotJoined        = validation("join a room first")
	ErrInternal         = &Error{Kind: KindInternal, Message: "internal error"}
)

// KindOf returns the taxonomy kind for err, defaulting to internal for
// anything that did not originate in this package.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}
