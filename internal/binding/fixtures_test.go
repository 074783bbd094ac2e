package binding

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Worker is the polymorphic base of the fixtures.
type Worker interface {
	profile() *Person
}

type Person struct {
	Name  string `brew:"name,attr"`
	Shift string `brew:"shift,attr" default:"day"`
	Years int    `brew:"years,attr"`
}

func (p *Person) profile() *Person { return p }

type Chef struct {
	Meta        `brew:"Cook"`
	Person      `brew:",inherit"`
	Catchphrase string `brew:"catchphrase,attr"`
}

type Server struct {
	Meta   `brew:"Waiter"`
	Person `brew:",inherit"`
	Tips   float64 `brew:"tips,attr" default:"0.0"`
}

type Hacker struct {
	Meta     `brew:"FunctionalProgrammer"`
	Person   `brew:",inherit"`
	Language string `brew:"language,attr" default:"haskell"`
}

// SousChef inherits through two levels and overrides the shift default.
type SousChef struct {
	Chef    `brew:",inherit"`
	Station string `brew:"station,attr"`
	Shift   string `brew:"shift,attr" default:"night"`
}

type Director struct {
	Meta       `brew:"Employees,singleton"`
	Staff      OrderedMap[Worker] `brew:"employees,mapped"`
	Programmer *Hacker            `brew:"programmer,child"`
}

type Roster struct {
	Members   OrderedMap[Worker] `brew:"members,mapped" key:"name"`
	Seniority map[int]*Chef      `brew:",mapped" key:"years"`
}

type Crew struct {
	Lead Worker `brew:"lead,child" discriminator:"role" variants:"Cook"`
}

type Kitchen struct {
	Meta `brew:",singleton"`
	Head string `brew:"head,attr"`
}

type Wing struct {
	Kitchen *Kitchen `brew:"kitchen,child"`
}

type Restaurant struct {
	Kitchen *Kitchen         `brew:"kitchen,child"`
	Wings   OrderedMap[*Wing] `brew:"wings,mapped" key:"name"`
}

type Link struct {
	ID   int   `brew:"id,attr"`
	Next *Link `brew:"next,child"`
}

type Timer struct {
	Every   time.Duration `brew:"every,attr" default:"1m"`
	Addr    netip.Addr    `brew:"addr,attr"`
	Enabled bool          `brew:"enabled,attr"`
	Label   string        `brew:"label,attr"`
	Ignored string
	Skipped string `brew:"-"`
}

// Gateway has a default whose Go value shares backing storage when copied.
type Gateway struct {
	Addr net.IP `brew:"addr,attr" default:"10.0.0.1"`
}

// Impostor claims the Cook tag a second time.
type Impostor struct {
	Meta   `brew:"Cook"`
	Person `brew:",inherit"`
}

type badDefault struct {
	Count int `brew:"count,attr" default:"many"`
}

type nonScalarAttr struct {
	Tags []string `brew:"tags,attr"`
}

type unexportedField struct {
	hidden int `brew:"hidden,attr"`
}

type valueChild struct {
	Chef Chef `brew:"chef,child"`
}

type sliceCollection struct {
	Chefs []*Chef `brew:"chefs,mapped"`
}

type unknownKind struct {
	Name string `brew:"name,attribute"`
}

type namedInherit struct {
	Base Person `brew:",inherit"`
}

type unregisteredBase struct {
	Lead interface{ Run() } `brew:"lead,child"`
}

type unknownSubset struct {
	Lead Worker `brew:"lead,child" variants:"Sommelier"`
}

type duplicateNames struct {
	A string `brew:"x,attr"`
	B string `brew:"x,attr"`
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	opts = append([]Option{WithVariants[Worker](Chef{}, Server{}, &Hacker{})}, opts...)
	reg, err := NewRegistry(opts...)
	require.NoError(t, err)
	return reg
}

// Pantry counts its initializations and fails when told to.
type Pantry struct {
	Meta  `brew:",singleton"`
	Fail  bool `brew:"fail,attr"`
	inits int
}

func (p *Pantry) Initialize(context.Context) error {
	p.inits++
	if p.Fail {
		return errors.New("pantry is empty")
	}
	return nil
}

type Store struct {
	Front *Pantry             `brew:"front,child"`
	Back  OrderedMap[*Pantry] `brew:"back,mapped"`
}
