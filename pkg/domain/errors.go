package domain

import "errors"

// ErrNoHandlers is returned when a value must be resolved but the registry
// holds no input handlers. This is a setup fault: register handlers during
// initialization or give the variable a default.
var ErrNoHandlers = errors.New("no input handlers registered")

// ErrUnresolved is returned when every input handler was consulted and none
// produced a value.
var ErrUnresolved = errors.New("no input handler produced a value")

// ErrValidation is returned (wrapped) when an input handler rejects a value.
var ErrValidation = errors.New("value rejected by validation")
