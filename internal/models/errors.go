package daily

import (
	"errors"
	"fmt"
	"time"
)

type ErrorKind string

const (
	InvalidIdentity    ErrorKind = "InvalidIdentity"
	InvalidDisplayName ErrorKind = "InvalidDisplayName"
	Blacklisted        ErrorKind = "Blacklisted"
	AlreadyClaimed     ErrorKind = "AlreadyClaimed"
	ServiceUnavailable ErrorKind = "ServiceUnavailable"
	RateLimited        ErrorKind = "RateLimited"
	Internal           ErrorKind = "Internal"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")
)

// Ошибка начисления с данными для отображения пользователю
type ClaimError struct {
	Kind    ErrorKind
	Message string

	// AlreadyClaimed
	TimeLeft  string
	NextClaim time.Time
	Balance   int64

	// Blacklisted (временная блокировка)
	Remaining time.Duration
	ExpiresAt *time.Time

	// RateLimited
	RetryAfter time.Duration

	cause error
}

func (e *ClaimError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ClaimError) Unwrap() error {
	return e.cause
}

func NewClaimError(kind ErrorKind, msg string) *ClaimError {
	return &ClaimError{Kind: kind, Message: msg}
}

// Ошибка с причиной, причина не отдается клиенту
func WrapClaimError(kind ErrorKind, msg string, cause error) *ClaimError {
	return &ClaimError{Kind: kind, Message: msg, cause: cause}
}

// Kind ошибки, Internal для всех неизвестных
func KindOf(err error) ErrorKind {
	var ce *ClaimError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return Internal
}
