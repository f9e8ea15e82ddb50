package component

import (
	"strings"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bindgen/idl"
)

func todoDoc() *idl.Document {
	return doc(
		namespace("todo",
			op("list_items", idl.Sequence(named("TodoItem")), arg("filter", idl.Optional(named("Status")))),
		),
		dictionary("TodoItem",
			member("title", named("string")),
			member("tags", idl.Map(named("string"), named("u32"))),
		),
		&idl.Enum{Name: "Status", Values: []string{"Open", "Done"}},
		&idl.Interface{Name: "TodoError", Attributes: idl.Attributes{idl.Flag("Error")}, Members: []idl.Member{
			op("NotFound", nil, arg("id", named("u64"))),
			op("Invalid", nil, arg("field", named("string")), arg("reason", named("string"))),
			op("Unknown", nil),
		}},
		&idl.Interface{Name: "Store", Members: []idl.Member{
			&idl.Constructor{},
			&idl.Operation{
				Name:       "get",
				ReturnType: named("TodoItem"),
				Arguments:  []*idl.Argument{arg("id", named("u64"))},
				Attributes: idl.Attributes{idl.KeyValue("Throws", "TodoError")},
			},
			op("merge", nil, &idl.Argument{
				Name:       "other",
				Type:       named("Store"),
				Attributes: idl.Attributes{idl.Flag("ByRef")},
			}),
		}},
	)
}

func TestWITTypeDefs(t *testing.T) {
	iface := mustBuild(t, todoDoc())
	defs, err := iface.WITTypeDefs()
	if err != nil {
		t.Fatalf("WITTypeDefs failed: %v", err)
	}
	if len(defs) != 4 {
		t.Fatalf("got %d definitions, want 4", len(defs))
	}

	tests := []struct {
		name string
		kind string
	}{
		{"todo-item", "record"},
		{"status", "enum"},
		{"todo-error", "variant"},
		{"store", "resource"},
	}
	for i, tt := range tests {
		def := defs[i]
		if def.Name == nil || *def.Name != tt.name {
			t.Errorf("def %d name = %v, want %s", i, def.Name, tt.name)
			continue
		}
		var kind string
		switch def.Kind.(type) {
		case *wit.Record:
			kind = "record"
		case *wit.Enum:
			kind = "enum"
		case *wit.Variant:
			kind = "variant"
		case *wit.Resource:
			kind = "resource"
		}
		if kind != tt.kind {
			t.Errorf("%s kind = %T, want %s", tt.name, def.Kind, tt.kind)
		}
	}

	record := defs[0].Kind.(*wit.Record)
	if len(record.Fields) != 2 || record.Fields[1].Name != "tags" {
		t.Errorf("record fields = %+v", record.Fields)
	}
}

func TestWIT_Render(t *testing.T) {
	iface := mustBuild(t, todoDoc())
	out, err := iface.WIT()
	if err != nil {
		t.Fatalf("WIT failed: %v", err)
	}

	for _, want := range []string{
		"package local:todo;",
		"interface todo {",
		"    record todo-item {\n        title: string,\n        tags: list<tuple<string, u32>>,\n    }",
		"    enum status {\n        open,\n        done,\n    }",
		"        not-found(u64),",
		"        invalid(tuple<string, string>),",
		"        unknown,",
		"    resource store {\n        constructor();",
		"        get: func(id: u64) -> result<todo-item, todo-error>;",
		"        merge: func(other: borrow<store>);",
		"    list-items: func(filter: option<status>) -> list<todo-item>;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output not terminated:\n%s", out)
	}
}

func TestWIT_CustomAndExternal(t *testing.T) {
	iface := mustBuild(t, doc(
		namespace("net", op("fetch", named("Body"), arg("url", named("Url")))),
		&idl.Typedef{Name: "Url", Type: named("string"), Attributes: idl.Attributes{idl.Flag("Custom")}},
		&idl.Typedef{Name: "Body", Attributes: idl.Attributes{idl.KeyValue("External", "http")}},
	))
	out, err := iface.WIT()
	if err != nil {
		t.Fatalf("WIT failed: %v", err)
	}
	for _, want := range []string{
		"    type url = string;",
		"    resource body;",
		"    fetch: func(url: url) -> body;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestWITIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Point", "point"},
		{"TodoItem", "todo-item"},
		{"PointXY", "point-xy"},
		{"HTTPServer", "http-server"},
		{"get_name", "get-name"},
		{"Vec2", "vec2"},
		{"_private", "private"},
		{"type", "%type"},
		{"Record", "%record"},
	}
	for _, tt := range tests {
		if got := witIdent(tt.in); got != tt.want {
			t.Errorf("witIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
