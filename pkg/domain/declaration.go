package domain

// Owner identifies which kind of variable a tracked declaration belongs to.
type Owner int

const (
	OwnerField Owner = iota
	OwnerParam
	OwnerLocal
)

func (o Owner) String() string {
	switch o {
	case OwnerField:
		return "field"
	case OwnerParam:
		return "parameter"
	case OwnerLocal:
		return "local"
	}
	return "unknown"
}

// Declaration describes a single tracked variable: where it lives, what it is
// called, which role it carries and whether it has a declared default.
type Declaration struct {
	Owner      Owner
	Name       string
	Role       Role
	HasDefault bool
	Default    any
}
