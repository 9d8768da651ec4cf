package call_test

import (
	"context"
	"testing"

	"github.com/aretw0/hooksett/internal/testutils"
	"github.com/aretw0/hooksett/pkg/call"
	"github.com/aretw0/hooksett/pkg/domain"
	"github.com/aretw0/hooksett/pkg/local"
	"github.com/aretw0/hooksett/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarness(values map[string]any) (*registry.Registry, *testutils.RecordingInput, *testutils.RecordingOutput) {
	reg := registry.New()
	in := testutils.NewRecordingInput(values)
	out := &testutils.RecordingOutput{}
	reg.AddInput(in)
	reg.AddOutput(out)
	return reg, in, out
}

func TestCall_ResolvesAbsentTrackedParam(t *testing.T) {
	reg, in, out := newHarness(map[string]any{"param1": "hook_value"})

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return args.String("param1") + "-" + args.String("param2"), nil
	}, []call.Param{
		call.P("param1", domain.RoleTraced),
		call.WithDefault("param2", domain.RoleTraced, 42),
	})

	result, err := fn.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hook_value-42", result)

	require.Len(t, in.LoadCalls, 1, "only the absent parameter resolves")
	assert.Equal(t, "param1", in.LoadCalls[0].Name)

	// Both tracked params are reported once each, declaration order.
	require.Len(t, out.SaveCalls, 2)
	assert.Equal(t, "param1", out.SaveCalls[0].Name)
	assert.Equal(t, "hook_value", out.SaveCalls[0].Value)
	assert.Equal(t, "param2", out.SaveCalls[1].Name)
	assert.Equal(t, 42, out.SaveCalls[1].Value)
}

func TestCall_ExplicitValueValidatedNotLoaded(t *testing.T) {
	reg, in, out := newHarness(map[string]any{"param1": "from_handler"})

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return args.String("param1"), nil
	}, []call.Param{call.P("param1", domain.RoleTraced)})

	result, err := fn.Call(context.Background(), map[string]any{"param1": "explicit"})
	require.NoError(t, err)
	assert.Equal(t, "explicit", result)

	assert.Empty(t, in.LoadCalls)
	require.Len(t, in.ValidateCalls, 1)
	assert.Equal(t, "explicit", in.ValidateCalls[0].Value)
	require.Len(t, out.Saved("param1"), 1)
	assert.Equal(t, "explicit", out.Saved("param1")[0].Value)
}

func TestCall_PositionalBinding(t *testing.T) {
	reg, _, out := newHarness(nil)

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return args.Float("lr") * float64(args.Int("epochs")), nil
	}, []call.Param{
		call.P("lr", domain.RoleParameter),
		call.WithDefault("epochs", domain.RoleNone, 10),
	})

	result, err := fn.CallPositional(context.Background(), 0.5, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result)
	require.Len(t, out.Saved("lr"), 1)
	assert.Empty(t, out.Saved("epochs"), "untracked parameters are never reported")
}

func TestCall_NoHandlersPreflight(t *testing.T) {
	reg := registry.New()
	out := &testutils.RecordingOutput{}
	reg.AddOutput(out)

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return nil, nil
	}, []call.Param{call.P("lr", domain.RoleParameter)})

	_, err := fn.Call(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoHandlers)
	assert.Empty(t, out.SaveCalls, "preflight fails before any handler work")
}

func TestCall_AbsentSentinelForcesResolution(t *testing.T) {
	reg, in, _ := newHarness(map[string]any{"lr": 0.9})

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return args.Float("lr"), nil
	}, []call.Param{call.WithDefault("lr", domain.RoleParameter, 0.1)})

	result, err := fn.Call(context.Background(), map[string]any{"lr": call.Absent})
	require.NoError(t, err)
	assert.Equal(t, 0.9, result)
	assert.Len(t, in.LoadCalls, 1)
}

func TestCall_BindingErrors(t *testing.T) {
	reg, _, _ := newHarness(nil)
	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return nil, nil
	}, []call.Param{call.P("a", domain.RoleNone)})

	t.Run("unknown name", func(t *testing.T) {
		_, err := fn.Call(context.Background(), map[string]any{"nope": 1})
		assert.ErrorContains(t, err, "unknown argument")
	})
	t.Run("too many positional", func(t *testing.T) {
		_, err := fn.CallPositional(context.Background(), 1, 2)
		assert.ErrorContains(t, err, "positional arguments")
	})
	t.Run("double binding", func(t *testing.T) {
		_, err := fn.CallArgs(context.Background(), []any{1}, map[string]any{"a": 2})
		assert.ErrorContains(t, err, "bound both")
	})
	t.Run("missing untracked", func(t *testing.T) {
		_, err := fn.Call(context.Background(), nil)
		assert.ErrorContains(t, err, "missing argument")
	})
}

func TestCall_ValidationFailureAborts(t *testing.T) {
	reg := registry.New()
	out := &testutils.RecordingOutput{}
	reg.AddOutput(out)
	reg.AddInput(rejecting{})

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		t.Fatal("body must not run after a validation failure")
		return nil, nil
	}, []call.Param{call.P("ratio", domain.RoleParameter)})

	_, err := fn.Call(context.Background(), map[string]any{"ratio": 2.0})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, out.SaveCalls, "rejected values never reach notify")
}

type rejecting struct{}

func (rejecting) Load(string, domain.Role) (any, bool, error) { return nil, false, nil }
func (rejecting) Validate(name string, v any, _ domain.Role) (any, error) {
	return nil, domain.ErrValidation
}

func TestCall_TrackedLocalsInsideWrappedBody(t *testing.T) {
	reg, _, out := newHarness(map[string]any{"lr": 0.2})

	fn := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		accuracy := local.Metric(0.0)
		for i := 0; i < 3; i++ {
			accuracy.Store(accuracy.Load() + args.Float("lr"))
		}
		return accuracy.Load(), nil
	}, []call.Param{call.P("lr", domain.RoleParameter)})

	result, err := fn.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, result.(float64), 1e-9)

	// lr reported before the body, accuracy once at exit.
	require.Len(t, out.SaveCalls, 2)
	assert.Equal(t, "lr", out.SaveCalls[0].Name)
	acc := out.Saved("accuracy")
	require.Len(t, acc, 1)
	assert.InDelta(t, 0.6, acc[0].Value.(float64), 1e-9)
}
