package field_test

import (
	"testing"

	"github.com/aretw0/hooksett/internal/testutils"
	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/field"
	"github.com/aretw0/hooksett/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DefaultShortCircuits(t *testing.T) {
	reg := registry.New()
	in := testutils.NewRecordingInput(map[string]any{"batch_size": 64})
	reg.AddInput(in)

	f := field.WithDefault(reg, "batch_size", domain.RoleParameter, 32)

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 32, v)
	assert.Empty(t, in.LoadCalls, "defaults consult no handlers")
}

func TestGet_ResolvesOnceAndCaches(t *testing.T) {
	reg := registry.New()
	empty := testutils.NewRecordingInput(nil)
	source := testutils.NewRecordingInput(map[string]any{"learning_rate": 0.01})
	reg.AddInput(empty)
	reg.AddInput(source)

	f := field.New[float64](reg, "learning_rate", domain.RoleParameter)

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.01, v)
	require.Len(t, empty.LoadCalls, 1)
	require.Len(t, source.LoadCalls, 1)
	require.Len(t, empty.ValidateCalls, 1)
	require.Len(t, source.ValidateCalls, 1)

	// Second read: cached, zero further handler calls.
	v, err = f.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.01, v)
	assert.Len(t, empty.LoadCalls, 1)
	assert.Len(t, source.LoadCalls, 1)
	assert.Len(t, empty.ValidateCalls, 1)
	assert.Len(t, source.ValidateCalls, 1)
}

func TestGet_NoHandlersNoDefault(t *testing.T) {
	reg := registry.New()
	f := field.New[string](reg, "model_path", domain.RoleArtifact)

	_, err := f.Get()
	assert.ErrorIs(t, err, domain.ErrNoHandlers)
}

func TestGet_Unresolved(t *testing.T) {
	reg := registry.New()
	reg.AddInput(testutils.NewRecordingInput(nil))
	f := field.New[string](reg, "model_path", domain.RoleArtifact)

	_, err := f.Get()
	assert.ErrorIs(t, err, domain.ErrUnresolved)
}

func TestGet_WeakCoercion(t *testing.T) {
	reg := registry.New()
	// YAML-ish source: numbers may arrive as strings or wider types.
	reg.AddInput(testutils.NewRecordingInput(map[string]any{"epochs": "12"}))
	f := field.New[int](reg, "epochs", domain.RoleParameter)

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 12, v)
}

func TestSet_ValidatesAndNotifies(t *testing.T) {
	reg := registry.New()
	in := testutils.NewRecordingInput(map[string]any{"batch_size": 64})
	out := &testutils.RecordingOutput{}
	reg.AddInput(in)
	reg.AddOutput(out)

	f := field.WithDefault(reg, "batch_size", domain.RoleParameter, 32)
	require.NoError(t, f.Set(100))

	// Set never loads, always validates, notifies exactly once.
	assert.Empty(t, in.LoadCalls)
	require.Len(t, in.ValidateCalls, 1)
	assert.Equal(t, 100, in.ValidateCalls[0].Value)
	require.Len(t, out.Saved("batch_size"), 1)
	assert.Equal(t, 100, out.Saved("batch_size")[0].Value)

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}

func TestInstancesDoNotShareState(t *testing.T) {
	reg := registry.New()
	reg.AddInput(testutils.NewRecordingInput(map[string]any{"lr": 0.1}))

	type model struct {
		LR *field.Field[float64]
	}
	a := model{LR: field.New[float64](reg, "lr", domain.RoleParameter)}
	b := model{LR: field.New[float64](reg, "lr", domain.RoleParameter)}

	require.NoError(t, a.LR.Set(0.5))

	bv, err := b.LR.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.1, bv, "b resolves independently of a's write")

	av, err := a.LR.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.5, av)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	reg := registry.New()
	f := field.New[int](reg, "x", domain.RoleParameter)
	assert.Panics(t, func() { f.MustGet() })
}
