package check

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all registered checks.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]Check
}

// NewRegistry creates an empty check registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Check),
	}
}

// Register adds a check to the registry.
// If a check with the same ID already exists, it is replaced.
func (r *Registry) Register(check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[check.ID()] = check
}

// Get retrieves a check by ID.
func (r *Registry) Get(id string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	check, ok := r.byID[id]
	return check, ok
}

// Checks returns all registered checks, sorted by ID for deterministic
// execution order.
func (r *Registry) Checks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Check, 0, len(r.byID))
	for _, check := range r.byID {
		result = append(result, check)
	}

	slices.SortFunc(result, func(a, b Check) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered check IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in checks.
//
//nolint:gochecknoglobals // Global registry is intentional for check registration
var DefaultRegistry = NewRegistry()
