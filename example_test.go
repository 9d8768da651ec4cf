package hooksett_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/hooksett"
	"github.com/aretw0/hooksett/pkg/call"
	"github.com/aretw0/hooksett/pkg/field"
	"github.com/aretw0/hooksett/pkg/handlers/rangecheck"
	"github.com/aretw0/hooksett/pkg/handlers/yamlconfig"
)

// ExampleNew demonstrates resolving a field from a YAML source and validating
// writes through the same chain.
func ExampleNew() {
	reg := hooksett.New()

	cfg, err := yamlconfig.FromBytes([]byte("learning_rate: 0.01\nepochs: 20\n"))
	if err != nil {
		log.Fatal(err)
	}
	reg.AddInput(cfg)
	reg.AddInput(rangecheck.New(map[string]rangecheck.Range{
		"learning_rate": {Min: 0, Max: 1},
	}))

	lr := field.New[float64](reg, "learning_rate", hooksett.RoleParameter)
	v, err := lr.Get()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("learning_rate:", v)

	// A write outside the declared range is rejected.
	if err := lr.Set(2.5); err != nil {
		fmt.Println("rejected:", err != nil)
	}

	// Output:
	// learning_rate: 0.01
	// rejected: true
}

// ExampleWrap shows a function whose missing parameters are resolved from the
// chain before the body runs.
func ExampleWrap() {
	reg := hooksett.New()

	cfg, err := yamlconfig.FromBytes([]byte("epochs: 3\n"))
	if err != nil {
		log.Fatal(err)
	}
	reg.AddInput(cfg)

	train := call.Wrap(reg, func(ctx context.Context, args call.Args) (any, error) {
		return fmt.Sprintf("training for %d epochs", args.Int("epochs")), nil
	}, []call.Param{
		call.P("epochs", hooksett.RoleParameter),
	})

	out, err := train.Call(context.Background(), nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)

	// Output:
	// training for 3 epochs
}
