package upload

import (
	"context"
)

// Kind discriminates gating behaviors from side-effecting ones.
type Kind int

const (
	// KindValidator behaviors run sequentially and may veto the submission
	KindValidator Kind = iota
	// KindEffect behaviors run concurrently and perform the actual writes
	KindEffect
)

// Behavior is one pluggable unit of upload processing. Behaviors are
// registered in an explicit ordered registry; the pipeline iterates
// the registry rather than discovering behaviors at runtime.
type Behavior interface {
	// Name identifies the behavior in logs
	Name() string
	// Kind reports whether the behavior gates or writes
	Kind() Kind
	// ShouldExecute decides from the parameters whether the behavior applies
	ShouldExecute(params *Parameters) bool
	// Execute runs the behavior. Validators return a *domain.ValidationError
	// to veto; effects return storage faults for the pipeline to log.
	Execute(ctx context.Context, params *Parameters) error
}
