package cpu

import "github.com/davecgh/go-spew/spew"

// Snapshot is a read-only copy of the architectural state, the accessor
// named in §6 for testing and debugging — taking one never aliases the
// live CPU, so a host can stash it across Steps for comparison.
type Snapshot struct {
	A, X, Y uint8
	PC      uint16
	SP      uint8
	P       uint8
}

// State returns a Snapshot of the current architectural state.
func (c *CPU) State() Snapshot {
	return Snapshot{A: c.A, X: c.X, Y: c.Y, PC: c.PC, SP: c.SP, P: c.P}
}

// DebugState renders the full register/flag state for a breakpoint or
// crash dump, field-labeled rather than packed hex, for a monitor
// session to print verbatim.
func (c *CPU) DebugState() string {
	return spew.Sdump(c.State())
}
