package component

import (
	"testing"

	"github.com/wippyai/bindgen/errors"
	"github.com/wippyai/bindgen/ffi"
	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/metadata"
	"github.com/wippyai/bindgen/types"
)

func accountItems() []metadata.Item {
	// Deliberately out of dependency order.
	return []metadata.Item{
		{Kind: metadata.KindMethod, SelfName: "Account", Name: "deposit",
			Inputs: []metadata.Param{{Name: "amount", Type: "u64"}}, Output: "u64", Throws: "BankError"},
		{Kind: metadata.KindFunction, Name: "open_account",
			Inputs: []metadata.Param{{Name: "owner", Type: "Owner"}}, Output: "Account"},
		{Kind: metadata.KindConstructor, SelfName: "Account", Name: "new",
			Inputs: []metadata.Param{{Name: "owner", Type: "Owner"}}},
		{Kind: metadata.KindMethod, SelfName: "Account", Name: "owner", Output: "Owner", SelfByArc: true},
		{Kind: metadata.KindObject, Name: "Account"},
		{Kind: metadata.KindError, Name: "BankError", Variants: []metadata.Variant{
			{Name: "Insufficient", Fields: []metadata.Field{{Name: "missing", Type: "u64"}}},
			{Name: "Frozen"},
		}},
		{Kind: metadata.KindRecord, Name: "Owner", Fields: []metadata.Field{
			{Name: "name", Type: "String"},
			{Name: "tags", Type: "Vec<String>", Default: "[]"},
			{Name: "limit", Type: "Option<u32>", Default: "null"},
		}},
	}
}

func TestBuild_Metadata(t *testing.T) {
	iface, err := NewBuilder().WithNamespace("bank").AddMetadata(accountItems()...).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	owner := iface.GetRecordDefinition("Owner")
	if owner == nil {
		t.Fatal("record Owner not found")
	}
	fields := owner.Fields()
	if !fields[0].Required || fields[1].Required || fields[2].Required {
		t.Errorf("required flags = %v %v %v", fields[0].Required, fields[1].Required, fields[2].Required)
	}
	if fields[1].Type != (types.Sequence{Inner: types.String{}}) {
		t.Errorf("tags type = %v", fields[1].Type)
	}
	if fields[2].Default == nil || fields[2].Default.Kind != LiteralNull {
		t.Errorf("limit default = %v", fields[2].Default)
	}

	be := iface.GetErrorDefinition("BankError")
	if be == nil || be.IsFlat() {
		t.Fatalf("BankError = %+v", be)
	}

	acct := iface.GetObjectDefinition("Account")
	if acct == nil {
		t.Fatal("object Account not found")
	}
	if acct.PrimaryConstructor() == nil {
		t.Error("Account has no primary constructor")
	}
	deposit := acct.GetMethod("deposit")
	if deposit == nil || deposit.Throws() != "BankError" {
		t.Fatalf("deposit = %+v", deposit)
	}
	if !acct.GetMethod("owner").TakesSelfByArc() {
		t.Error("owner should take self by handle")
	}

	open := iface.GetFunctionDefinition("open_account").FFIFunc()
	if open.Name != iface.FFINamespace()+"_open_account" {
		t.Errorf("open_account symbol = %q", open.Name)
	}
	if open.ReturnType == nil || *open.ReturnType != ffi.Handle {
		t.Errorf("open_account returns %v", open.ReturnType)
	}
}

func TestBuild_MetadataOrderIndependent(t *testing.T) {
	items := accountItems()
	reversed := make([]metadata.Item, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}

	a, err := NewBuilder().WithNamespace("bank").AddMetadata(items...).Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBuilder().WithNamespace("bank").AddMetadata(reversed...).Build()
	if err != nil {
		t.Fatal(err)
	}
	if a.Checksum() != b.Checksum() {
		t.Error("metadata order changed the checksum")
	}
}

func TestBuild_MetadataErrors(t *testing.T) {
	tests := []struct {
		name  string
		items []metadata.Item
		want  error
	}{
		{
			name:  "method on missing object",
			items: []metadata.Item{{Kind: metadata.KindMethod, SelfName: "Ghost", Name: "boo"}},
			want:  errors.ErrUnknownType,
		},
		{
			name:  "unknown field type",
			items: []metadata.Item{{Kind: metadata.KindRecord, Name: "R", Fields: []metadata.Field{{Name: "x", Type: "Nope"}}}},
			want:  errors.ErrUnknownType,
		},
		{
			name:  "malformed type",
			items: []metadata.Item{{Kind: metadata.KindFunction, Name: "f", Output: "Vec<"}},
			want:  errors.ErrInvalidInput,
		},
		{
			name: "duplicate function",
			items: []metadata.Item{
				{Kind: metadata.KindFunction, Name: "f"},
				{Kind: metadata.KindFunction, Name: "f"},
			},
			want: errors.ErrDuplicateDefinition,
		},
		{
			name:  "enum with fields",
			items: []metadata.Item{{Kind: metadata.KindEnum, Name: "E", Fields: []metadata.Field{{Name: "x", Type: "u8"}}}},
			want:  errors.ErrInvalidInput,
		},
		{
			name:  "method without owner",
			items: []metadata.Item{{Kind: metadata.KindMethod, Name: "m"}},
			want:  errors.ErrInvalidInput,
		},
		{
			name:  "undeclared error",
			items: []metadata.Item{{Kind: metadata.KindFunction, Name: "f", Throws: "Oops"}},
			want:  errors.ErrConsistency,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().WithNamespace("ns").AddMetadata(tt.items...).Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_MixedSources(t *testing.T) {
	d := doc(
		namespace("mixed"),
		&idl.Interface{Name: "Account", Members: []idl.Member{&idl.Constructor{}}},
	)
	items := []metadata.Item{
		{Kind: metadata.KindObject, Name: "Account"},
		{Kind: metadata.KindMethod, SelfName: "Account", Name: "balance", Output: "u64"},
	}
	iface, err := NewBuilder().AddDocument(d).AddMetadata(items...).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	acct := iface.GetObjectDefinition("Account")
	if len(acct.Constructors()) != 1 || acct.GetMethod("balance") == nil {
		t.Errorf("metadata did not merge into the IDL object")
	}
}
