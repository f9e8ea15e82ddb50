package component

import (
	"testing"

	"github.com/wippyai/bindgen/idl"
	"github.com/wippyai/bindgen/types"
)

func TestIterTypesInItem_MutualRecursion(t *testing.T) {
	iface := mustBuild(t, doc(
		namespace("tree"),
		dictionary("Node", member("children", idl.Sequence(named("Edge")))),
		dictionary("Edge", member("target", idl.Optional(named("Node")))),
	))

	counts := map[string]int{}
	total := 0
	for ty := range iface.IterTypesInItem(types.Record{Name: "Node"}) {
		total++
		if name, ok := types.DeclName(ty); ok {
			counts[name]++
		}
	}
	if counts["Node"] != 1 || counts["Edge"] != 1 {
		t.Errorf("named types yielded %v, want each once", counts)
	}
	// Node, sequence<Edge>, Edge, Node?
	if total != 4 {
		t.Errorf("yielded %d types, want 4", total)
	}
}

func TestIterTypesInItem_SelfReference(t *testing.T) {
	iface := mustBuild(t, doc(
		namespace("list"),
		dictionary("Cell", member("value", named("u16")), member("next", idl.Optional(named("Cell")))),
	))
	if !iface.ItemContainsUnsignedTypes(types.Record{Name: "Cell"}) {
		t.Error("Cell holds a u16")
	}
	if iface.ItemContainsObjectReferences(types.Record{Name: "Cell"}) {
		t.Error("Cell holds no object")
	}
}

func TestIterTypesInItem_ObjectMembers(t *testing.T) {
	iface := mustBuild(t, doc(
		namespace("db"),
		&idl.Interface{Name: "Conn", Members: []idl.Member{
			&idl.Constructor{Arguments: []*idl.Argument{arg("dsn", named("string"))}},
			op("query", idl.Sequence(named("Row")), arg("sql", named("string"))),
		}},
		dictionary("Row", member("id", named("u64"))),
	))

	var got []string
	for ty := range iface.IterTypesInItem(types.Object{Name: "Conn"}) {
		got = append(got, ty.String())
	}
	// method types come before constructor types
	want := []string{"Conn", "string", "sequence<Row>", "Row", "string", "u64"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("type %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestIterTypesInItem_EarlyStop(t *testing.T) {
	iface := mustBuild(t, doc(
		namespace("ns"),
		dictionary("A", member("b", named("B"))),
		dictionary("B", member("a", named("A"))),
	))
	n := 0
	for range iface.IterTypesInItem(types.Record{Name: "A"}) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterated %d times after break", n)
	}
}
