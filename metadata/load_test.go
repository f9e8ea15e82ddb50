package metadata

import (
	"context"
	"strings"
	"testing"

	"github.com/wippyai/bindgen/errors"
)

func TestLoadDir(t *testing.T) {
	items, err := LoadDir(context.Background(), "testdata/bank")
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	want := []struct {
		kind Kind
		name string
	}{
		{KindRecord, "Owner"},
		{KindEnum, "Currency"},
		{KindError, "BankError"},
		{KindObject, "Account"},
		{KindConstructor, "new"},
		{KindMethod, "deposit"},
		{KindFunction, "open_account"},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(items), len(want), items)
	}
	for i, w := range want {
		if items[i].Kind != w.kind || items[i].Name != w.name {
			t.Errorf("item %d = %s %s, want %s %s", i, items[i].Kind, items[i].Name, w.kind, w.name)
		}
		if items[i].Source == "" {
			t.Errorf("item %d has no source", i)
		}
	}

	deposit := items[5]
	if deposit.SelfName != "Account" || deposit.Module != "bank" || !deposit.SelfByArc {
		t.Errorf("deposit = %+v", deposit)
	}
	if deposit.Throws != "BankError" || deposit.Output != "u64" {
		t.Errorf("deposit signature = %+v", deposit)
	}
	if open := items[6]; len(open.Inputs) != 1 || open.Output != "Account" {
		t.Errorf("open_account = %+v", open)
	}
}

func TestLoadDir_Invalid(t *testing.T) {
	_, err := LoadDir(context.Background(), "testdata/broken")
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if !strings.Contains(err.Error(), "mod.bank.impl.Account.fn.bad.yaml") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(context.Background(), "testdata/nope"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadDir_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadDir(ctx, "testdata/bank"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestDecode_MultiDocument(t *testing.T) {
	src := `kind: record
name: A
fields:
  - {name: x, type: u8}
---
kind: fn
name: f
output: A
`
	items, err := Decode(strings.NewReader(src), "inline.yaml")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(items) != 2 || items[0].Name != "A" || items[1].Kind != KindFunction {
		t.Errorf("items = %+v", items)
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("kind: [unterminated"), "bad.yaml")
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestHintFromFileName(t *testing.T) {
	tests := []struct {
		file string
		want fileHint
	}{
		{"mod.shop.fn.checkout.json", fileHint{kind: KindFunction, module: "shop", name: "checkout"}},
		{"mod.shop.impl.Cart.fn.add.json", fileHint{kind: KindMethod, module: "shop", selfName: "Cart", name: "add"}},
		{"type.Cart.yaml", fileHint{name: "Cart", isType: true}},
		{"objects.yaml", fileHint{}},
		{"mod.shop.yaml", fileHint{}},
	}
	for _, tt := range tests {
		if got := hintFromFileName(tt.file); got != tt.want {
			t.Errorf("hintFromFileName(%q) = %+v, want %+v", tt.file, got, tt.want)
		}
	}
}

func TestIsMetadataFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.json":     true,
		"a.YAML":     true,
		"a.yml":      true,
		"README.txt": false,
		"noext":      false,
	} {
		if got := IsMetadataFile(name); got != want {
			t.Errorf("IsMetadataFile(%q) = %v, want %v", name, got, want)
		}
	}
}
