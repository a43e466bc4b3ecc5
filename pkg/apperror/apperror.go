package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPreconditionFailed
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error servis katmanından controller'a taşınan yapılandırılmış hata.
// Code kararlı bir snake_case nedenidir, Message kullanıcıya gösterilir.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]interface{}
	Err     error
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is aynı Code'a sahip hataları eşit sayar, böylece detay taşıyan
// kopyalar sentinel değerle errors.Is üzerinden eşleşir.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails hatanın detaylı bir kopyasını döner
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap hatayı bir neden ile sarar, sentinel değişmez
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

var ErrInternal = New(KindInternal, "internal_server_error", "Server error")

// Internal beklenmeyen hatayı Internal türüne çevirir
func Internal(err error) *Error {
	return ErrInternal.Wrap(err)
}

// From herhangi bir hatayı *Error'a çevirir
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
