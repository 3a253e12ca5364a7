package anchor

import (
	"fmt"
	"sync"

	"github.com/binstack/cellpack/internal/entity"
)

// Generator produces an ordered list of candidate placement points for a
// cage. Implementations must be deterministic: the same cage state
// always yields the same ordered slice.
type Generator interface {
	Name() string
	Anchors(cage *entity.Cage) []entity.Point3
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Generator)
)

// Register adds a generator to the global registry under name. It
// panics if name is already registered: registration happens once, at
// init time, and a duplicate name is a programming error.
func Register(name string, g Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("anchor: generator %q already registered", name))
	}
	registry[name] = g
}

// Get retrieves a registered generator by name, or nil if not found.
func Get(name string) Generator {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry[name]
}

// List returns all registered generator names.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	Register("cp", &CornerPointGenerator{})
	Register("ems", &ExtremeSurfaceGenerator{})
}
