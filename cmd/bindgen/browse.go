package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/bindgen/component"
	"github.com/wippyai/bindgen/config"
	"github.com/wippyai/bindgen/types"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the interface in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		if !isTerminal(os.Stdin) {
			return fmt.Errorf("browse needs an interactive terminal")
		}

		prog := tea.NewProgram(newBrowseModel(cmd.Context(), cfg), tea.WithAltScreen())
		_, err = prog.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// entry is one declaration shown in the browser.
type entry struct {
	kind    string
	name    string
	detail  []string
	symbols []string
}

type browseModel struct {
	ctx      context.Context
	cfg      *config.Config
	err      error
	title    string
	entries  []entry
	visible  []int
	filter   textinput.Model
	selected int
	state    browseState
	loaded   bool
}

type browseState int

const (
	stateList browseState = iota
	stateFilter
	stateDetail
)

type projectMsg struct {
	err   error
	title string
	items []entry
}

func newBrowseModel(ctx context.Context, cfg *config.Config) *browseModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.Width = 40
	return &browseModel{ctx: ctx, cfg: cfg, filter: ti, state: stateList}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load
}

func (m *browseModel) load() tea.Msg {
	p, err := loadProject(m.ctx, m.cfg)
	if err != nil {
		return projectMsg{err: err}
	}
	return projectMsg{
		title: fmt.Sprintf("%s  %s", p.iface.FFINamespace(), checksumHex(p.iface.Checksum())),
		items: entries(p.iface),
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.filter.Blur()
				m.state = stateList
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateList {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			if m.state == stateList && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
			}

		case "r":
			m.loaded = false
			return m, m.load
		}

	case projectMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.title = msg.title
			m.entries = msg.items
			m.applyFilter()
		}
	}
	return m, nil
}

// applyFilter recomputes the visible entries from the filter text.
func (m *browseModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.name), q) || strings.Contains(e.kind, q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit.", m.err))
	}
	if !m.loaded {
		return "Building interface..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("bindgen"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	switch m.state {
	case stateList, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, idx := range m.visible {
			e := m.entries[idx]
			line := fmt.Sprintf("%-10s %s", e.kind, e.name)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + typeStyle.Render(fmt.Sprintf("%-10s", e.kind)) + " " + e.name)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • r rebuild • q quit"))

	case stateDetail:
		e := m.entries[m.visible[m.selected]]
		b.WriteString(fmt.Sprintf("%s %s\n\n", typeStyle.Render(e.kind), nameStyle.Render(e.name)))
		for _, line := range e.detail {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(e.symbols) > 0 {
			b.WriteString("\n")
			b.WriteString(headerStyle.Render("FFI"))
			b.WriteString("\n")
			for _, s := range e.symbols {
				b.WriteString("  ")
				b.WriteString(s)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}
	return b.String()
}

// entries flattens the interface into browser rows in declaration order.
func entries(c *component.Interface) []entry {
	var out []entry
	for _, r := range c.RecordDefinitions() {
		out = append(out, entry{kind: "record", name: r.Name(), detail: fieldLines(r.Fields())})
	}
	for _, e := range c.EnumDefinitions() {
		out = append(out, entry{kind: "enum", name: e.Name(), detail: variantLines(e.Variants())})
	}
	for _, e := range c.ErrorDefinitions() {
		out = append(out, entry{kind: "error", name: e.Name(), detail: variantLines(e.Variants())})
	}
	for _, o := range c.ObjectDefinitions() {
		e := entry{kind: "object", name: o.Name()}
		for _, ctor := range o.Constructors() {
			e.detail = append(e.detail, "constructor "+signature(ctor.Name(), ctor.Arguments(), nil, ctor.Throws()))
		}
		for _, meth := range o.Methods() {
			e.detail = append(e.detail, "method "+signature(meth.Name(), meth.Arguments(), meth.ReturnType(), meth.Throws()))
		}
		for f := range o.IterFFIFunctionDefinitions() {
			e.symbols = append(e.symbols, f.String())
		}
		out = append(out, e)
	}
	for _, cb := range c.CallbackInterfaceDefinitions() {
		e := entry{kind: "callback", name: cb.Name()}
		for _, meth := range cb.Methods() {
			e.detail = append(e.detail, "method "+signature(meth.Name(), meth.Arguments(), meth.ReturnType(), meth.Throws()))
		}
		e.symbols = []string{cb.FFIInitCallback().String()}
		out = append(out, e)
	}
	for _, f := range c.FunctionDefinitions() {
		out = append(out, entry{
			kind:    "function",
			name:    f.Name(),
			detail:  []string{signature(f.Name(), f.Arguments(), f.ReturnType(), f.Throws())},
			symbols: []string{f.FFIFunc().String()},
		})
	}
	return out
}

func fieldLines(fields []component.Field) []string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		line := f.Name + ": " + f.Type.String()
		if f.Default != nil {
			line += " = " + f.Default.String()
		}
		lines = append(lines, line)
	}
	return lines
}

func variantLines(variants []component.Variant) []string {
	lines := make([]string, 0, len(variants))
	for _, v := range variants {
		if !v.HasFields() {
			lines = append(lines, v.Name)
			continue
		}
		lines = append(lines, v.Name+" { "+strings.Join(fieldLines(v.Fields), ", ")+" }")
	}
	return lines
}

func signature(name string, args []component.Argument, ret types.Type, throws string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Name + ": " + a.Type.String()
	}
	s := name + "(" + strings.Join(parts, ", ") + ")"
	if ret != nil {
		s += " -> " + ret.String()
	}
	if throws != "" {
		s += " throws " + throws
	}
	return s
}
