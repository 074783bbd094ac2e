package food

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/brewmaster/internal/binding"
)

// EmployeeDirector is the root of a staff script. It is a singleton: every
// reference to it within one build resolves to the same instance.
type EmployeeDirector struct {
	binding.Meta `brew:"Employees,singleton"`

	Employees  binding.OrderedMap[Employee] `brew:"employees,mapped" key:"name"`
	Programmer *FunctionalProgrammer        `brew:"programmer,child"`

	initializeCount int
}

// Initialize implements binding.Initializer.
func (d *EmployeeDirector) Initialize(context.Context) error {
	d.initializeCount++
	return nil
}

// InitializeCount reports how many times the director was initialized.
func (d *EmployeeDirector) InitializeCount() int { return d.initializeCount }

// String renders the staff list, one employee per line.
func (d *EmployeeDirector) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Employees (%d)\n", d.Employees.Len())
	for name, e := range d.Employees.All() {
		fmt.Fprintf(&sb, "  %s: %s\n", name, e)
	}
	if d.Programmer != nil {
		fmt.Fprintf(&sb, "Programmer: %s\n", d.Programmer)
	}
	return sb.String()
}

// NewRegistry returns a registry that knows every Employee variant.
func NewRegistry(opts ...binding.Option) (*binding.Registry, error) {
	opts = append([]binding.Option{
		binding.WithVariants[Employee](Cook{}, Waiter{}, FunctionalProgrammer{}),
	}, opts...)
	return binding.NewRegistry(opts...)
}
