// Package errors provides structured error types for the sohbet client.
// These errors carry the operation that failed and a Kind that decides
// which localized message the user sees.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnection
	KindNotFound
	KindServer
	KindDecode
	KindInvalid
	KindConfig
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection error"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	case KindDecode:
		return "decode error"
	case KindInvalid:
		return "invalid"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Localized messages shown in the error banner.
const (
	MsgConnection = "Backend sunucusuna bağlanılamıyor. Lütfen backend'in çalıştığından emin olun."
	MsgNotFound   = "Chat API endpoint bulunamadı."
	MsgServer     = "Sunucu hatası. Lütfen daha sonra tekrar deneyin."
	MsgUnknown    = "Bilinmeyen bir hata oluştu."
	MsgDecode     = "Sunucudan geçersiz yanıt alındı."
	MsgGeneric    = "Bir hata oluştu"
)

// Error is the structured error type for sohbet.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context

	// Status is the HTTP status code, when the failure came from a response.
	Status int
	// Detail is the message the backend put in its error payload, if any.
	Detail string
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return MsgGeneric
	}
	switch e.Kind {
	case KindConnection:
		return MsgConnection
	case KindNotFound:
		return MsgNotFound
	case KindServer:
		return MsgServer
	case KindDecode:
		return MsgDecode
	case KindUnknown:
		if e.Detail != "" {
			return e.Detail
		}
		return MsgUnknown
	default:
		return MsgGeneric
	}
}

// HTTPStatus builds the error for a non-2xx backend response.
func HTTPStatus(op Op, status int, detail string) error {
	kind := KindUnknown
	switch {
	case status == 404:
		kind = KindNotFound
	case status >= 500:
		kind = KindServer
	}
	return &Error{
		Op:     op,
		Kind:   kind,
		Err:    fmt.Errorf("unexpected status %d", status),
		Status: status,
		Detail: detail,
	}
}

// Unreachable wraps a transport failure (refused, reset, timeout).
func Unreachable(op Op, err error) error {
	return E(op, KindConnection, err)
}

// Malformed wraps a response body that failed validated decoding.
func Malformed(op Op, reason string) error {
	return E(op, KindDecode, fmt.Sprintf("malformed response: %s", reason))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Session errors
func SessionNotFound(id string) error {
	return E(Op("session.Get"), KindNotFound, fmt.Sprintf("session %s not found", id))
}
