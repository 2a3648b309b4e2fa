package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrInvalidDescriptor    = errors.New("invalid command descriptor")
	ErrDuplicateCommand     = fmt.Errorf("%w: duplicate command name", ErrInvalidDescriptor)
	ErrRegistryClosed       = errors.New("command registry closed")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrResourceAccessDenied = errors.New("resource access denied")
	ErrWrongResourceKind    = errors.New("resource is not of the expected kind")
	ErrAlreadyAcknowledged  = errors.New("interaction already acknowledged")
	ErrNotAcknowledged      = errors.New("interaction not yet acknowledged")
	ErrNotInGuild           = errors.New("interaction outside of a guild")
	ErrSendingReplyFailed   = errors.New("failed to send reply")
)

const (
	// InitialResponseWindow is how long the platform accepts an initial
	// response after an interaction is received.
	InitialResponseWindow = 3 * time.Second
	// InteractionTokenLifespan bounds follow-ups and edits.
	InteractionTokenLifespan = 15 * time.Minute
)

// GenericFailureMessage is the only failure text end users ever see.
const GenericFailureMessage = "There was an error while executing this command!"
