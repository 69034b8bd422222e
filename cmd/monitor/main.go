// Command monitor is an interactive bubbletea TUI debugger: registers,
// flags, the stack, a memory window, and a live disassembly following
// the program counter, with single-step, run, breakpoint, and
// goto-address support.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kschmidt/mos6502/bus"
	"github.com/kschmidt/mos6502/cpu"
	"github.com/kschmidt/mos6502/disassembler"
)

type stepTick struct{}

func doStep() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return stepTick{}
	})
}

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(32)

	stackStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(32)

	disasmStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(40)

	memoryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(50)

	changedStyle      = lipgloss.NewStyle().Foreground(changed).Bold(true)
	currentLineStyle  = lipgloss.NewStyle().Background(highlight).Foreground(lipgloss.Color("#ffffff"))
	selectedLineStyle = lipgloss.NewStyle().Foreground(highlight)
	breakpointStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

// monitor is the bubbletea model driving the debugger view.
type monitor struct {
	mem *bus.Flat
	cpu *cpu.CPU

	paused  bool
	width   int
	height  int

	lines         []disassembler.Line
	selectedIndex int

	lastState  cpu.Snapshot
	lastMemory [64]uint8

	memoryAddress uint16
	activePane    string

	gotoInput   textinput.Model
	showingGoto bool

	breakpoints map[uint16]bool
}

func newMonitor(c *cpu.CPU, mem *bus.Flat) *monitor {
	ti := textinput.New()
	ti.Placeholder = "hex address (e.g. FF00)"
	ti.CharLimit = 4
	ti.Width = 10

	m := &monitor{
		mem:         mem,
		cpu:         c,
		paused:      true,
		activePane:  "disasm",
		gotoInput:   ti,
		breakpoints: make(map[uint16]bool),
	}
	m.refreshDisassembly()
	m.relocate()
	return m
}

// refreshDisassembly re-disassembles a window around the current PC.
// Live self-modifying code invalidates stale lines, so this runs every
// time execution stops at a new address.
func (m *monitor) refreshDisassembly() {
	start := m.cpu.PC
	if start > 0x0100 {
		start -= 0x0100
	} else {
		start = 0
	}
	length := 0x0400
	if int(start)+length > 1<<16 {
		length = 1<<16 - int(start)
	}
	lines, err := disassembler.Range(m.mem, start, length)
	if err == nil {
		m.lines = lines
	}
}

func (m *monitor) relocate() {
	for i, l := range m.lines {
		if l.Addr == m.cpu.PC {
			m.selectedIndex = i
			return
		}
	}
	m.selectedIndex = 0
}

func (m *monitor) captureMemoryState() {
	for i := 0; i < 64; i++ {
		v, _ := m.mem.Read(m.memoryAddress + uint16(i))
		m.lastMemory[i] = v
	}
}

func (m *monitor) snapshotAndStep() error {
	m.lastState = m.cpu.State()
	m.captureMemoryState()
	_, err := m.cpu.Step()
	m.refreshDisassembly()
	m.relocate()
	return err
}

func (m monitor) Init() tea.Cmd { return nil }

func (m monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTick:
		if m.paused || m.breakpoints[m.cpu.PC] {
			m.paused = true
			return m, nil
		}
		_ = m.snapshotAndStep()
		return m, doStep()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.showingGoto {
			switch msg.Type {
			case tea.KeyEnter:
				if addr, err := strconv.ParseUint(m.gotoInput.Value(), 16, 16); err == nil {
					m.memoryAddress = uint16(addr)
					m.captureMemoryState()
				}
				m.showingGoto = false
				return m, nil
			case tea.KeyEsc:
				m.showingGoto = false
				return m, nil
			}
			var cmd tea.Cmd
			m.gotoInput, cmd = m.gotoInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "g":
			m.showingGoto = true
			m.gotoInput.Focus()
			return m, textinput.Blink
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if m.paused {
				_ = m.snapshotAndStep()
			}
		case "b":
			if len(m.lines) > m.selectedIndex {
				addr := m.lines[m.selectedIndex].Addr
				if m.breakpoints[addr] {
					delete(m.breakpoints, addr)
				} else {
					m.breakpoints[addr] = true
				}
			}
		case "n":
			if m.paused && len(m.breakpoints) > 0 {
				m.paused = false
				return m, doStep()
			}
		case "p":
			m.paused = !m.paused
		case "tab":
			if m.activePane == "disasm" {
				m.activePane = "memory"
			} else {
				m.activePane = "disasm"
			}
		case "up":
			if m.activePane == "disasm" {
				if m.selectedIndex > 0 {
					m.selectedIndex--
				}
			} else if m.memoryAddress >= 8 {
				m.memoryAddress -= 8
				m.captureMemoryState()
			}
		case "down":
			if m.activePane == "disasm" {
				if m.selectedIndex < len(m.lines)-1 {
					m.selectedIndex++
				}
			} else if m.memoryAddress <= 0xFFF8 {
				m.memoryAddress += 8
				m.captureMemoryState()
			}
		}
	}
	return m, nil
}

func (m monitor) formatReg8(name string, current, last uint8) string {
	v := fmt.Sprintf("%s: $%02X", name, current)
	if current != last {
		return changedStyle.Render(v)
	}
	return v
}

func (m monitor) formatReg16(name string, current, last uint16) string {
	v := fmt.Sprintf("%s: $%04X", name, current)
	if current != last {
		return changedStyle.Render(v)
	}
	return v
}

func (m monitor) formatFlags() string {
	flags := []struct {
		name string
		bit  uint8
	}{
		{"N", cpu.FlagN}, {"V", cpu.FlagV}, {"B", cpu.FlagB}, {"D", cpu.FlagD},
		{"I", cpu.FlagI}, {"Z", cpu.FlagZ}, {"C", cpu.FlagC},
	}
	var out strings.Builder
	st := m.cpu.State()
	for _, f := range flags {
		current := st.P&f.bit != 0
		last := m.lastState.P&f.bit != 0
		switch {
		case !current:
			out.WriteString("- ")
		case current != last:
			out.WriteString(changedStyle.Render(f.name + " "))
		default:
			out.WriteString(f.name + " ")
		}
	}
	return out.String()
}

func (m monitor) formatStack() string {
	var out strings.Builder
	sp := uint16(m.cpu.State().SP)
	for i := uint16(0xFF); i >= sp && i <= 0xFF; i-- {
		v, _ := m.mem.Read(0x0100 + i)
		out.WriteString(fmt.Sprintf("$%02X: %02X\n", i, v))
		if i == sp {
			break
		}
	}
	return out.String()
}

func (m monitor) formatMemory() string {
	var out strings.Builder
	addr := m.memoryAddress
	for row := 0; row < 8; row++ {
		out.WriteString(fmt.Sprintf("$%04X: ", addr))
		var ascii strings.Builder
		for col := 0; col < 8; col++ {
			offset := row*8 + col
			v, _ := m.mem.Read(addr + uint16(col))
			last := m.lastMemory[offset]
			hex := fmt.Sprintf("%02X ", v)
			glyph := "."
			if v >= 32 && v <= 126 {
				glyph = string(v)
			}
			if v != last {
				out.WriteString(changedStyle.Render(hex))
				ascii.WriteString(changedStyle.Render(glyph))
			} else {
				out.WriteString(hex)
				ascii.WriteString(glyph)
			}
		}
		out.WriteString(" | ")
		out.WriteString(ascii.String())
		out.WriteString("\n")
		addr += 8
	}
	return out.String()
}

func (m monitor) disassemble() string {
	var out strings.Builder
	windowStart := m.selectedIndex - 5
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := windowStart + 20
	if windowEnd > len(m.lines) {
		windowEnd = len(m.lines)
	}
	for i := windowStart; i < windowEnd; i++ {
		l := m.lines[i]
		line := l.String()
		switch {
		case m.breakpoints[l.Addr] && l.Addr == m.cpu.PC:
			line = currentLineStyle.Render("● " + line)
		case m.breakpoints[l.Addr]:
			line = breakpointStyle.Render("● " + line)
		case l.Addr == m.cpu.PC:
			line = currentLineStyle.Render(line)
		case i == m.selectedIndex:
			line = selectedLineStyle.Render(line)
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

func (m monitor) View() string {
	disasm := disasmStyle.Render(fmt.Sprintf("Disassembly\n\n%s", m.disassemble()))

	st := m.cpu.State()
	cpuState := infoStyle.Render(fmt.Sprintf(
		"CPU State\n\n%s    %s    %s\n%s  %s\n\nFlags: %s\n",
		m.formatReg8("A", st.A, m.lastState.A),
		m.formatReg8("X", st.X, m.lastState.X),
		m.formatReg8("Y", st.Y, m.lastState.Y),
		m.formatReg16("PC", st.PC, m.lastState.PC),
		m.formatReg8("SP", st.SP, m.lastState.SP),
		m.formatFlags(),
	))

	stack := stackStyle.Render(fmt.Sprintf("Stack\n\n%s", m.formatStack()))
	memory := memoryStyle.Render(fmt.Sprintf("Memory (↑↓ to scroll)\n\n%s", m.formatMemory()))

	right := lipgloss.JoinVertical(lipgloss.Left, cpuState, stack, memory)

	var help string
	if !m.paused {
		help = titleStyle.Render("p: pause - q: quit")
	} else {
		help = titleStyle.Render(
			"s: step - n: run to break - p: pause/resume - b: toggle break - " +
				"up/down: scroll - tab: switch pane - g: goto - q: quit",
		)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, disasm, lipgloss.PlaceHorizontal(3, lipgloss.Left, right))

	if m.showingGoto {
		dialog := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1).
			Width(30).
			Render("Go to address:\n\n" + m.gotoInput.View())
		return lipgloss.JoinVertical(lipgloss.Center, content, help, dialog)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, help)
}

func loadAndReset(c *cpu.CPU, mem *bus.Flat, filename string, origin uint16) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading binary file: %w", err)
	}
	if int(origin)+len(data) > 1<<16 {
		return fmt.Errorf("binary file too large to fit at $%04X", origin)
	}
	if err := mem.LoadROM(origin, data); err != nil {
		return err
	}
	if err := mem.Write16(0xFFFC, origin); err != nil {
		return err
	}
	return c.Reset()
}

func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing start address %q: %w", s, err)
	}
	return uint16(v), nil
}

func main() {
	inputFile := flag.String("i", "", "input binary file")
	startAddr := flag.String("a", "0x8000", "start address")
	flag.Parse()

	origin, err := parseAddress(*startAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
		os.Exit(1)
	}

	mem := bus.NewFlat()
	c := cpu.NewCPU(mem)
	if *inputFile != "" {
		if err := loadAndReset(c, mem, *inputFile, origin); err != nil {
			fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := mem.Write16(0xFFFC, origin); err != nil {
			fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
			os.Exit(1)
		}
		if err := c.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(newMonitor(c, mem))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
		os.Exit(1)
	}
}
