package behavior

import (
	"fmt"
	"sort"
	"sync"
)

// reg is an in-memory role table.
type reg struct {
	mu    sync.RWMutex
	roles map[Role]RoleBehavior
}

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return &reg{roles: make(map[Role]RoleBehavior)}
}

// NewBuiltinRegistry returns a registry holding every built-in role.
func NewBuiltinRegistry() Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// Register installs b under b.Role(), replacing any previous behavior.
func (r *reg) Register(b RoleBehavior) {
	r.mu.Lock()
	r.roles[b.Role()] = b
	r.mu.Unlock()
}

func (r *reg) Lookup(role Role) (RoleBehavior, error) {
	r.mu.RLock()
	b := r.roles[role]
	r.mu.RUnlock()
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return b, nil
}

func (r *reg) Roles() []Role {
	r.mu.RLock()
	out := make([]Role, 0, len(r.roles))
	for role := range r.roles {
		out = append(out, role)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
