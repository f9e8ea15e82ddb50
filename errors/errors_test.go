package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindUnknownType,
				Path:   []string{"Point", "x"},
				Pos:    "geometry.udl:3:5",
				Type:   "Coord",
				Detail: "no type named \"Coord\"",
			},
			contains: []string{"[resolve]", "unknown_type", "Point.x", "geometry.udl:3:5", "Coord"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseCheck,
				Kind:  KindConsistency,
			},
			contains: []string{"[check]", "consistency_violation"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidInput,
				Detail: "bad record",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_input", "bad record", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseResolve,
		Kind:  KindUnknownType,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseResolve, Kind: KindUnknownType}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseDiscover, Kind: KindUnknownType}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseResolve, Kind: KindDuplicateDefinition}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrUnknownType) {
		t.Error("kind-only sentinel should match any phase")
	}
	if errors.Is(err, ErrConsistency) {
		t.Error("sentinel of a different kind should not match")
	}

	wrapped := fmt.Errorf("build: %w", err)
	if !Is(wrapped, ErrUnknownType) {
		t.Error("Is should see through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindUnknownType).
		Path("Point", "x").
		Pos("a.udl:1:1").
		Type("Coord").
		Cause(cause).
		Detail("expected %s, got %s", "declared", "nothing").
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindUnknownType {
		t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownType)
	}
	if len(err.Path) != 2 || err.Path[0] != "Point" || err.Path[1] != "x" {
		t.Errorf("Path = %v, want [Point x]", err.Path)
	}
	if err.Name() != "Point" {
		t.Errorf("Name() = %q, want Point", err.Name())
	}
	if err.Pos != "a.udl:1:1" {
		t.Errorf("Pos = %v, want a.udl:1:1", err.Pos)
	}
	if err.Type != "Coord" {
		t.Errorf("Type = %v, want Coord", err.Type)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected declared, got nothing" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("DuplicateDefinition", func(t *testing.T) {
		err := DuplicateDefinition(PhaseDiscover, "compute")
		if err.Kind != KindDuplicateDefinition {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicateDefinition)
		}
		if err.Name() != "compute" {
			t.Errorf("Name() = %q, want compute", err.Name())
		}
		if !strings.Contains(err.Error(), "compute") {
			t.Errorf("message should name the declaration: %s", err)
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		err := UnknownType([]string{"Point", "x"}, "Coord")
		if err.Kind != KindUnknownType || err.Phase != PhaseResolve {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if err.Type != "Coord" {
			t.Errorf("Type = %v, want Coord", err.Type)
		}
	})

	t.Run("UnsupportedAttribute", func(t *testing.T) {
		err := UnsupportedAttribute([]string{"hello"}, "function", "ByRef")
		if err.Kind != KindUnsupportedAttribute {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupportedAttribute)
		}
		if !strings.Contains(err.Detail, "ByRef") || !strings.Contains(err.Detail, "function") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("ConsistencyViolation", func(t *testing.T) {
		err := ConsistencyViolation("", "missing namespace definition")
		if err.Kind != KindConsistency || err.Phase != PhaseCheck {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if len(err.Path) != 0 {
			t.Errorf("Path = %v, want empty", err.Path)
		}
	})

	t.Run("InternalMapping", func(t *testing.T) {
		err := InternalMapping([]string{"f"}, "Weird")
		if err.Kind != KindInternalMapping || err.Phase != PhaseDerive {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("io")
		err := Wrap(PhaseLoad, KindInvalidInput, cause, "read metadata")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause chain")
		}
	})
}

func TestWithPosAndPrefix(t *testing.T) {
	err := UnknownType([]string{"x"}, "Coord")

	got := WithPos(err, "a.udl:2:3")
	if err.Pos != "a.udl:2:3" {
		t.Errorf("Pos = %q, want a.udl:2:3", err.Pos)
	}

	WithPos(got, "b.udl:9:9")
	if err.Pos != "a.udl:2:3" {
		t.Errorf("existing Pos must not be overwritten, got %q", err.Pos)
	}

	Prefix(err, "Point")
	if strings.Join(err.Path, ".") != "Point.x" {
		t.Errorf("Path = %v, want [Point x]", err.Path)
	}

	plain := errors.New("plain")
	if WithPos(plain, "p") != plain || Prefix(plain, "q") != plain {
		t.Error("non-structured errors must be returned unchanged")
	}
}
