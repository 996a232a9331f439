package util

import (
	"errors"
	"fmt"
)

// ErrorKind partitions service errors so controllers can map them to HTTP
// statuses without inspecting message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindNotFound
	KindUpstream
	KindInternal
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// Upstream marks a failure of the AI service. The submission that hit it is
// safely retryable because nothing has been persisted yet.
func Upstream(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for anything untyped.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrInvalidCredentials = Validation("invalid email or password")
	ErrEmailRegistered    = Conflict("email already registered")
	ErrExamNotFound       = NotFoundError("exam not found")
	ErrSchemaNotFound     = NotFoundError("exam schema not found")
	ErrPaperNotFound      = NotFoundError("no exam paper assigned for this exam")
	ErrSheetNotFound      = NotFoundError("answer sheet not found")
	ErrResultNotFound     = NotFoundError("result not found")
	ErrQueryNotFound      = NotFoundError("query not found")
	ErrAlreadySubmitted   = Conflict("answers already submitted for this exam")
	ErrExamWindowClosed   = Validation("exam is not active")
)
