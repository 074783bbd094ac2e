package app

import (
	"fmt"
	"reflect"

	"github.com/vk/brewmaster/internal/binding"
	"github.com/vk/brewmaster/internal/sample/food"
)

// Target is a domain the application can bind scripts into.
type Target struct {
	Name     string
	RootName string
	Type     reflect.Type // pointer to struct or interface with variants
	Registry *binding.Registry
}

// CoreTargets returns the domains compiled into the binary. The first one is
// the default.
func CoreTargets() ([]Target, error) {
	reg, err := food.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build the food registry: %w", err)
	}
	return []Target{
		{Name: "employees", RootName: "Employees", Type: reflect.TypeFor[*food.EmployeeDirector](), Registry: reg},
		{Name: "employee", RootName: "Employees", Type: reflect.TypeFor[food.Employee](), Registry: reg},
	}, nil
}
