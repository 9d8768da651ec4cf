// Package domain contains the core vocabulary of hooksett: role tags, the
// role registry, tracked declarations and the sentinel errors shared by every
// other package.
//
// It has no dependencies on the rest of the module so that handler
// implementations can depend on it without pulling in the interception
// machinery.
package domain
