package domain

import "sync"

// Role is a semantic category attached to a tracked variable. Handlers use it
// to decide how a value should be treated (logged, exported, validated).
type Role int

const (
	// RoleNone marks a variable that is bound normally and never routed
	// through handlers.
	RoleNone Role = iota
	// RoleParameter marks a configuration parameter.
	RoleParameter
	// RoleMetric marks a measured quantity.
	RoleMetric
	// RoleArtifact marks a produced file or blob reference.
	RoleArtifact
	// RoleTraced marks a generic traced value with no further semantics.
	RoleTraced
)

// String resolves the role against the default registry.
func (r Role) String() string {
	return Default().Name(r)
}

// Roles maps display names to role tags and back. The zero value is not
// usable; construct with NewRoles or use Default.
//
// Registration is expected to happen during program initialization, before
// concurrent use begins, but the registry is guarded anyway so that late
// lookups from handler goroutines are safe.
type Roles struct {
	mu     sync.RWMutex
	byName map[string]Role
	byTag  map[Role]string
}

// NewRoles returns a registry preloaded with the built-in roles.
func NewRoles() *Roles {
	r := &Roles{
		byName: make(map[string]Role),
		byTag:  make(map[Role]string),
	}
	r.Register("Parameter", RoleParameter)
	r.Register("Metric", RoleMetric)
	r.Register("Artifact", RoleArtifact)
	r.Register("Traced", RoleTraced)
	return r
}

var defaultRoles = NewRoles()

// Default returns the shared role registry used when no explicit one is
// provided. Custom registries can be injected wherever a *Roles is accepted.
func Default() *Roles {
	return defaultRoles
}

// Register records a role tag under a display name. Registering the same name
// twice is allowed; the last write wins.
func (r *Roles) Register(name string, tag Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byName[name]; ok {
		delete(r.byTag, old)
	}
	r.byName[name] = tag
	r.byTag[tag] = name
}

// ByName returns the role registered under name.
func (r *Roles) ByName(name string) (Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.byName[name]
	return tag, ok
}

// Name reverse-maps a role tag to its display name, for reporting. Unknown
// tags render as "Unknown".
func (r *Roles) Name(tag Role) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.byTag[tag]; ok {
		return name
	}
	return "Unknown"
}

// Names returns the registered display names. Order is unspecified.
func (r *Roles) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}
