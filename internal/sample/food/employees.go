package food

import (
	"fmt"
	"strings"
)

// Employee is implemented by every kind of staff member.
type Employee interface {
	fmt.Stringer
	Profile() *AbstractEmployee
}

// AbstractEmployee holds the attributes every employee shares. Concrete
// employees embed it with the inherit marker.
type AbstractEmployee struct {
	Name  string `brew:"name,attr"`
	Shift string `brew:"shift,attr" default:"day"`
	Years int    `brew:"years,attr"`
}

// Profile returns the shared employee attributes.
func (e *AbstractEmployee) Profile() *AbstractEmployee { return e }

func (e *AbstractEmployee) describe(kind string, extra string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s, %s shift, %d years", kind, e.Name, e.Shift, e.Years)
	if extra != "" {
		sb.WriteString(", ")
		sb.WriteString(extra)
	}
	return sb.String()
}

// Cook works the line.
type Cook struct {
	AbstractEmployee `brew:",inherit"`
	Catchphrase      string `brew:"catchphrase,attr"`
}

func (c *Cook) String() string {
	if c.Catchphrase == "" {
		return c.describe("Cook", "")
	}
	return c.describe("Cook", fmt.Sprintf("catchphrase %q", c.Catchphrase))
}

// Waiter serves the floor.
type Waiter struct {
	AbstractEmployee `brew:",inherit"`
	Tips             float64 `brew:"tips,attr" default:"0.0"`
}

func (w *Waiter) String() string {
	return w.describe("Waiter", fmt.Sprintf("tips %.2f", w.Tips))
}

// FunctionalProgrammer keeps the ordering system running.
type FunctionalProgrammer struct {
	AbstractEmployee `brew:",inherit"`
	Language         string `brew:"language,attr" default:"haskell"`
}

func (p *FunctionalProgrammer) String() string {
	return p.describe("FunctionalProgrammer", "language "+p.Language)
}
