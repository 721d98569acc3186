package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindConnection, "connection error"},
		{KindNotFound, "not found"},
		{KindServer, "server error"},
		{KindDecode, "decode error"},
		{KindInvalid, "invalid"},
		{KindConfig, "configuration error"},
		{KindIO, "I/O error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "backend.Send", Context: "some context", Err: errors.New("underlying error")},
			expected: "backend.Send: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "backend.Send", Err: errors.New("underlying error")},
			expected: "backend.Send: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name     string
		args     []interface{}
		wantOp   Op
		wantKind Kind
	}{
		{
			name:     "with all args",
			args:     []interface{}{Op("test.Op"), KindNotFound, "context", errors.New("error")},
			wantOp:   "test.Op",
			wantKind: KindNotFound,
		},
		{
			name:     "context becomes the error",
			args:     []interface{}{Op("test.Op"), KindInvalid, "just a message"},
			wantOp:   "test.Op",
			wantKind: KindInvalid,
		},
		{
			name:     "with just error",
			args:     []interface{}{errors.New("simple error")},
			wantOp:   "",
			wantKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}
			if e.Op != tt.wantOp {
				t.Errorf("E().Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("E().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Err == nil {
				t.Error("E().Err should never be nil")
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{"matching kind", E(Op("test"), KindNotFound, "not found"), KindNotFound, true},
		{"non-matching kind", E(Op("test"), KindNotFound, "not found"), KindServer, false},
		{"plain error", errors.New("regular error"), KindNotFound, false},
		{"nil error", nil, KindNotFound, false},
		{"wrapped error", fmt.Errorf("wrapped: %w", Unreachable("test", errors.New("refused"))), KindConnection, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(E(Op("test"), KindDecode, "bad")); got != KindDecode {
		t.Errorf("GetKind() = %v, want %v", got, KindDecode)
	}
	if got := GetKind(errors.New("regular")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want %v", got, KindUnknown)
	}
	if got := GetKind(nil); got != KindUnknown {
		t.Errorf("GetKind(nil) = %v, want %v", got, KindUnknown)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		status   int
		detail   string
		wantKind Kind
		wantMsg  string
	}{
		{404, "", KindNotFound, MsgNotFound},
		{500, "boom", KindServer, MsgServer},
		{503, "", KindServer, MsgServer},
		{400, "Mesaj boş olamaz", KindUnknown, "Mesaj boş olamaz"},
		{422, "", KindUnknown, MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := HTTPStatus("backend.Send", tt.status, tt.detail)
			if got := GetKind(err); got != tt.wantKind {
				t.Errorf("kind = %v, want %v", got, tt.wantKind)
			}
			if got := UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"connection", Unreachable("backend.Send", errors.New("dial tcp: connection refused")), MsgConnection},
		{"decode", Malformed("backend.Send", "missing message id"), MsgDecode},
		{"plain error", errors.New("something"), MsgGeneric},
		{"config kind", ConfigInvalid("bad url"), MsgGeneric},
		{"wrapped server", fmt.Errorf("send: %w", HTTPStatus("backend.Send", 502, "")), MsgServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionNotFound(t *testing.T) {
	err := SessionNotFound("test-session-123")

	if !Is(err, KindNotFound) {
		t.Error("SessionNotFound should return KindNotFound error")
	}

	if e, ok := err.(*Error); ok {
		if e.Op != "session.Get" {
			t.Errorf("Op = %q, want %q", e.Op, "session.Get")
		}
	} else {
		t.Error("SessionNotFound should return *Error")
	}
}

func TestConfigErrors(t *testing.T) {
	underlying := errors.New("permission denied")
	if err := ConfigLoadFailed("/path/to/config", underlying); !Is(err, KindConfig) || !errors.Is(err, underlying) {
		t.Error("ConfigLoadFailed should return a KindConfig error wrapping the cause")
	}
	if err := ConfigSaveFailed("/path/to/config", underlying); !Is(err, KindConfig) {
		t.Error("ConfigSaveFailed should return KindConfig error")
	}
	if err := ConfigInvalid("api url is empty"); !Is(err, KindInvalid) {
		t.Error("ConfigInvalid should return KindInvalid error")
	}
}

func TestErrorChaining(t *testing.T) {
	innerErr := errors.New("original error")
	middleErr := E(Op("middle.Op"), KindIO, innerErr)
	outerErr := E(Op("outer.Op"), KindConfig, middleErr)

	if !errors.Is(outerErr, innerErr) {
		t.Error("Should be able to find inner error through chain")
	}
	if GetKind(outerErr) != KindConfig {
		t.Error("GetKind should return outer error's kind")
	}
}
