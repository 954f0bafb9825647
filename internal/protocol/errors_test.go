package protocol

import "testing"

func TestIsKnownCode(t *testing.T) {
	cases := []string{
		"",
		ErrBadRequest,
		ErrInvalidScenario,
		ErrInternal,
	}
	for _, c := range cases {
		if !IsKnownCode(c) {
			t.Fatalf("expected known code: %q", c)
		}
	}
	if IsKnownCode("E_NOT_DEFINED") {
		t.Fatalf("expected unknown code rejected")
	}
}

func TestDecodeBase(t *testing.T) {
	m, err := DecodeBase([]byte(`{"type":"RUN","protocol_version":"1.0","scenario":"4\n1\n1\n"}`))
	if err != nil {
		t.Fatalf("DecodeBase: %v", err)
	}
	if m.Type != TypeRun || m.ProtocolVersion != Version {
		t.Fatalf("unexpected base: %+v", m)
	}
	if _, err := DecodeBase([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed message")
	}
}

func TestNewError(t *testing.T) {
	e := NewError(ErrInvalidScenario, "Invalid board size")
	if e.Type != TypeError || e.ProtocolVersion != Version || e.Code != ErrInvalidScenario {
		t.Fatalf("unexpected error msg: %+v", e)
	}
}
