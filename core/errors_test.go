package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EINVALID, "line index %d out of range", 7)
	if Code(err) != EINVALID {
		t.Errorf("expected code %d, is %d", EINVALID, Code(err))
	}
	if UserMessage(err) != "line index 7 out of range" {
		t.Errorf("unexpected user message: %q", UserMessage(err))
	}
	wrapped := fmt.Errorf("rendering: %w", err)
	if Code(wrapped) != EINVALID {
		t.Errorf("expected wrapped error to keep code %d, is %d", EINVALID, Code(wrapped))
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("no lexer")
	err := WrapError(base, EMISSING, "language %q unknown", "cobol2")
	if !errors.Is(err, base) {
		t.Errorf("expected wrapped error to unwrap to base error")
	}
	if Code(err) != EMISSING {
		t.Errorf("expected code EMISSING, is %d", Code(err))
	}
	if Code(nil) != NOERROR || UserMessage(nil) != "" {
		t.Errorf("expected nil error to map to NOERROR and empty message")
	}
	if Code(base) != EINTERNAL {
		t.Errorf("expected plain error to map to EINTERNAL")
	}
	if ErrorWithCode(nil, EINVALID).Error() != "[123] invalid" {
		t.Errorf("unexpected error text %q", ErrorWithCode(nil, EINVALID).Error())
	}
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("import: %w", Error(EINVALID, "duplicate line id %d", 3))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected error chain to match ErrInvalid")
	}
	if errors.Is(err, ErrMissing) {
		t.Errorf("expected EINVALID error not to match ErrMissing")
	}
	if s := err.Error(); s != "import: [123] duplicate line id 3: invalid" {
		t.Errorf("unexpected error text %q", s)
	}
}
