/*
Package hooksett intercepts variables at their declaration and routes them
through ordered handler chains. Tag a struct field, a function parameter, or a
plain local with a role (Parameter, Metric, Artifact, Traced) and every read
can be resolved from configured sources, every write validated and delivered
to configured sinks, without the surrounding code knowing who is listening.

# Concept

A Registry holds two ordered chains. Input handlers resolve values (the first
one that knows a name wins) and validate writes (every handler gets a say, and
may transform the value on the way through). Output handlers receive each
reported value in registration order. Handlers are plain interfaces, so a YAML
file, an environment prefix, a range check, a Prometheus gauge, or a Redis
hash all plug in the same way.

Three declaration surfaces share the chains:

  - field.Field[T]: a struct-shaped cell with explicit Get and Set.
  - call.Wrap: function parameters resolved and reported before the body runs.
  - local.Var[T]: plain locals inside a tracked frame, reported once per
    invocation with their final value, however the function exits.

# Usage

	package main

	import (
		"log"

		"github.com/aretw0/hooksett"
		"github.com/aretw0/hooksett/pkg/field"
		"github.com/aretw0/hooksett/pkg/handlers/yamlconfig"
	)

	func main() {
		reg := hooksett.New()

		cfg, err := yamlconfig.New("params.yaml")
		if err != nil {
			log.Fatal(err)
		}
		reg.AddInput(cfg)

		lr := field.New[float64](reg, "learning_rate", hooksett.RoleParameter)
		v, err := lr.Get() // resolved from params.yaml
		if err != nil {
			log.Fatal(err)
		}
		log.Println("learning_rate:", v)
	}

For locals, install a frame at the top of the function and declare through the
role constructors:

	func trainStep(reg *hooksett.Registry) error {
		stop := local.Track(reg)
		defer stop()

		loss := local.Metric(1.0)
		for i := 0; i < steps; i++ {
			loss.Store(step(i))
		}
		return nil // final loss value is reported exactly once
	}
*/
package hooksett
