package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bindgen/config"
	"github.com/wippyai/bindgen/metadata"
)

const bankDir = "../../metadata/testdata/bank"

func bankProject(t *testing.T) *project {
	t.Helper()
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Namespace = ""
	cfg.Metadata.Dir = bankDir
	p, err := loadProject(context.Background(), cfg)
	if err != nil {
		t.Fatalf("loadProject failed: %v", err)
	}
	return p
}

func TestLoadProject_NamespaceFromModule(t *testing.T) {
	p := bankProject(t)
	if got := p.iface.Namespace(); got != "bank" {
		t.Errorf("Namespace = %q, want bank", got)
	}
	if !strings.HasPrefix(p.iface.FFINamespace(), "bank_") {
		t.Errorf("FFINamespace = %q", p.iface.FFINamespace())
	}
	if len(p.items) != 7 {
		t.Errorf("got %d items, want 7", len(p.items))
	}
}

func TestNamespaceFor(t *testing.T) {
	items := []metadata.Item{{Name: "a"}, {Name: "b", Module: "shop"}}
	tests := []struct {
		name string
		cfg  string
		want string
	}{
		{"configured", "store", "store"},
		{"from items", "", "shop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := namespaceFor(&config.Config{Namespace: tt.cfg}, items); got != tt.want {
				t.Errorf("namespaceFor = %q, want %q", got, tt.want)
			}
		})
	}
	if got := namespaceFor(&config.Config{}, nil); got != "" {
		t.Errorf("namespaceFor(no items) = %q", got)
	}
}

func TestWriteInspect(t *testing.T) {
	p := bankProject(t)
	ffins := p.iface.FFINamespace()

	var buf bytes.Buffer
	if err := writeInspect(&buf, "text", p); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		checksumHex(p.iface.Checksum()),
		ffins,
		"Owner",
		"BankError",
		"ffi_" + ffins + "_Account_object_free",
		ffins + "_open_account",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	buf.Reset()
	if err := writeInspect(&buf, "yaml", p); err != nil {
		t.Fatal(err)
	}
	var s summary
	if err := yaml.Unmarshal(buf.Bytes(), &s); err != nil {
		t.Fatalf("yaml output: %v", err)
	}
	if s.Namespace != "bank" || s.FFINamespace != ffins {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Objects) != 1 || s.Objects[0] != "Account" {
		t.Errorf("objects = %v", s.Objects)
	}
	if s.Items["method"] != 1 || s.Items["record"] != 1 {
		t.Errorf("items = %v", s.Items)
	}
}

func TestWriteFFI(t *testing.T) {
	p := bankProject(t)
	ffins := p.iface.FFINamespace()

	var buf bytes.Buffer
	if err := writeFFI(&buf, "yaml", p.iface.IterFFIFunctionDefinitions(), true); err != nil {
		t.Fatal(err)
	}
	var syms []symbol
	if err := yaml.Unmarshal(buf.Bytes(), &syms); err != nil {
		t.Fatalf("yaml output: %v", err)
	}
	if len(syms) == 0 || syms[0].Name != "ffi_"+ffins+"_Account_object_free" {
		t.Fatalf("first symbol = %+v", syms)
	}
	last := syms[len(syms)-1]
	if last.Name != "ffi_"+ffins+"_rustbuffer_reserve" {
		t.Errorf("last symbol = %s", last.Name)
	}
	for _, s := range syms {
		if s.Wasm == "" {
			t.Errorf("%s has no wasm signature", s.Name)
		}
	}

	buf.Reset()
	if err := writeFFI(&buf, "text", p.iface.IterUserFFIFunctionDefinitions(), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "rustbuffer") {
		t.Errorf("user listing includes buffer built-ins:\n%s", out)
	}
	if strings.Contains(out, "wasm ") {
		t.Errorf("wasm signatures shown without --wasm:\n%s", out)
	}
}

func TestWriteChecksum(t *testing.T) {
	p := bankProject(t)

	var buf bytes.Buffer
	if err := writeChecksum(&buf, "text", p.iface); err != nil {
		t.Fatal(err)
	}
	want := checksumHex(p.iface.Checksum()) + "  " + p.iface.FFINamespace() + "\n"
	if buf.String() != want {
		t.Errorf("checksum = %q, want %q", buf.String(), want)
	}
}

func TestEntries(t *testing.T) {
	got := entries(bankProject(t).iface)
	want := []struct {
		kind string
		name string
	}{
		{"record", "Owner"},
		{"enum", "Currency"},
		{"error", "BankError"},
		{"object", "Account"},
		{"function", "open_account"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].kind != w.kind || got[i].name != w.name {
			t.Errorf("entry %d = %s %s, want %s %s", i, got[i].kind, got[i].name, w.kind, w.name)
		}
	}

	account := got[3]
	if len(account.detail) != 2 {
		t.Errorf("Account detail = %v", account.detail)
	}
	if !strings.Contains(account.detail[1], "deposit(amount: u64) -> u64 throws BankError") {
		t.Errorf("deposit line = %q", account.detail[1])
	}
	if len(account.symbols) != 3 {
		t.Errorf("Account symbols = %v", account.symbols)
	}
	if got[2].detail[0] != "Insufficient { missing: u64 }" {
		t.Errorf("BankError variant = %q", got[2].detail[0])
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel(t *testing.T) {
	cfg := &config.Config{Metadata: config.MetadataConfig{Dir: bankDir}}
	m := newBrowseModel(context.Background(), cfg)
	if view := m.View(); !strings.Contains(view, "Building") {
		t.Errorf("initial view = %q", view)
	}

	msg := m.Init()()
	m.Update(msg)
	if m.err != nil {
		t.Fatalf("load failed: %v", m.err)
	}
	if len(m.visible) != 5 {
		t.Fatalf("visible = %d, want 5", len(m.visible))
	}

	m.Update(key("down"))
	m.Update(key("down"))
	m.Update(key("enter"))
	if m.state != stateDetail {
		t.Fatalf("state = %d, want detail", m.state)
	}
	if view := m.View(); !strings.Contains(view, "BankError") || !strings.Contains(view, "Frozen") {
		t.Errorf("detail view:\n%s", view)
	}
	m.Update(key("esc"))
	if m.state != stateList {
		t.Errorf("state = %d, want list", m.state)
	}

	m.Update(key("/"))
	for _, r := range "acc" {
		m.Update(key(string(r)))
	}
	m.Update(key("enter"))
	if m.state != stateList {
		t.Fatalf("after filter: state %d, want list", m.state)
	}
	var names []string
	for _, idx := range m.visible {
		names = append(names, m.entries[idx].name)
	}
	if strings.Join(names, ",") != "Account,open_account" {
		t.Errorf("filtered to %v, want [Account open_account]", names)
	}

	m.filter.SetValue("function")
	m.applyFilter()
	if len(m.visible) != 1 || m.entries[m.visible[0]].name != "open_account" {
		t.Errorf("kind filter kept %d entries", len(m.visible))
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestBrowseModel_LoadError(t *testing.T) {
	cfg := &config.Config{Metadata: config.MetadataConfig{Dir: "testdata/missing"}}
	m := newBrowseModel(context.Background(), cfg)
	m.Update(m.Init()())
	if m.err == nil {
		t.Fatal("expected load error")
	}
	if !strings.Contains(m.View(), "Error") {
		t.Errorf("view = %q", m.View())
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := newLogger(config.LoggingConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !logger.Core().Enabled(-1) {
			t.Errorf("%s: debug not enabled", format)
		}
	}
	if _, err := newLogger(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestRootCommand(t *testing.T) {
	t.Setenv("BINDGEN_OUTPUT_COLOR", "never")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"checksum"}, "bank_"},
		{[]string{"wit"}, "package local:bank;"},
		{[]string{"ffi", "--wasm"}, "wasm ("},
		{[]string{"inspect"}, "FFI symbols"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetArgs(append([]string{"-c", "testdata/none.yaml", "-m", bankDir}, tt.args...))
			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q\n%s", tt.want, buf.String())
			}
		})
	}
}
