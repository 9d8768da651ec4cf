package hooksett

import (
	_ "embed"

	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/registry"
)

// Version is the library version, embedded at build time.
//
//go:embed VERSION
var Version string

// Registry routes tracked values through handler chains.
// See package registry for the full API.
type Registry = registry.Registry

// InputHandler resolves and validates tracked values.
type InputHandler = registry.InputHandler

// OutputHandler receives every reported tracked value.
type OutputHandler = registry.OutputHandler

// Role tags a tracked variable with its intent.
type Role = domain.Role

// Built-in roles.
const (
	RoleParameter = domain.RoleParameter
	RoleMetric    = domain.RoleMetric
	RoleArtifact  = domain.RoleArtifact
	RoleTraced    = domain.RoleTraced
)

// Sentinel errors surfaced by handler chains.
var (
	ErrNoHandlers = domain.ErrNoHandlers
	ErrUnresolved = domain.ErrUnresolved
	ErrValidation = domain.ErrValidation
)

// New creates an empty registry. Alias for registry.New.
func New(opts ...registry.Option) *Registry {
	return registry.New(opts...)
}
