package solver

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/konchunas/rellic/internal/minilogic"
)

// Status is the answer of a backend to a satisfiability query.
type Status int

const (
	Unknown Status = iota
	Sat
	Unsat
)

func (s Status) String() string {
	switch s {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Backend decides satisfiability of formulas. A backend that gives up,
// for any reason, answers Unknown.
type Backend interface {
	Check(f minilogic.Expr) Status
	Close() error
}

// Config selects and tunes a backend.
type Config struct {
	Backend        string `yaml:"backend"`
	MaxAssignments int    `yaml:"max-assignments"`
	TimeoutMillis  int    `yaml:"timeout-ms,omitempty"`
}

// DefaultBackend is used when Config.Backend is empty.
const DefaultBackend = "minilogic"

// DefaultConfig returns the configuration of the built-in backend.
func DefaultConfig() Config {
	return Config{
		Backend:        DefaultBackend,
		MaxAssignments: minilogic.DefaultMaxAssignments,
	}
}

// Factory creates a backend instance.
type Factory func(cfg Config) (Backend, error)

var ErrUnknownBackend = errors.New("unknown solver backend")

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// RegisterBackend makes a backend available under name. Registering the
// same name twice replaces the earlier factory.
func RegisterBackend(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewBackend instantiates the backend named by cfg.
func NewBackend(cfg Config) (Backend, error) {
	name := cfg.Backend
	if name == "" {
		name = DefaultBackend
	}
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	b, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating %s backend: %w", name, err)
	}
	return b, nil
}
