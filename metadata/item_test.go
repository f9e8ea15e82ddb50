package metadata

import (
	"testing"

	"github.com/wippyai/bindgen/errors"
)

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name string
		item Item
		ok   bool
	}{
		{"function", Item{Kind: KindFunction, Name: "f"}, true},
		{"method", Item{Kind: KindMethod, Name: "m", SelfName: "T", SelfByArc: true}, true},
		{"unknown kind", Item{Kind: "trait", Name: "x"}, false},
		{"missing name", Item{Kind: KindRecord}, false},
		{"method without owner", Item{Kind: KindMethod, Name: "m"}, false},
		{"constructor without owner", Item{Kind: KindConstructor, Name: "new"}, false},
		{"record with variants", Item{Kind: KindRecord, Name: "R", Variants: []Variant{{Name: "A"}}}, false},
		{"enum with fields", Item{Kind: KindEnum, Name: "E", Fields: []Field{{Name: "a", Type: "u8"}}}, false},
		{"self_by_arc on function", Item{Kind: KindFunction, Name: "f", SelfByArc: true}, false},
		{"input without type", Item{Kind: KindFunction, Name: "f", Inputs: []Param{{Name: "a"}}}, false},
		{"field without name", Item{Kind: KindRecord, Name: "R", Fields: []Field{{Type: "u8"}}}, false},
		{"unnamed variant", Item{Kind: KindEnum, Name: "E", Variants: []Variant{{}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.ok {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("err = %v, want invalid input", err)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	items := []Item{
		{Kind: KindFunction, Name: "b"},
		{Kind: KindMethod, SelfName: "T", Name: "m"},
		{Kind: KindFunction, Name: "a"},
		{Kind: KindObject, Name: "T"},
		{Kind: KindRecord, Name: "R"},
	}
	got := Group(items)

	want := []string{"R", "T", "m", "a", "b"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("item %d = %s, want %s", i, got[i].Name, name)
		}
	}
	if items[0].Name != "b" {
		t.Error("Group modified its input")
	}

	byKind := ByKind(got)
	if len(byKind[KindFunction]) != 2 || byKind[KindFunction][0].Name != "a" {
		t.Errorf("ByKind functions = %+v", byKind[KindFunction])
	}
}
