package transform

import (
	"errors"
	"fmt"
	"sync"

	"nebula-mapper/internal/common"
)

// Func converts v using params. Implementations return an error wrapping
// ErrMissingParam, ErrInvalidParam or ErrInvalidValue on failure.
type Func func(v Value, params map[string]string) (Value, error)

// Registry holds named transforms.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewEmptyRegistry returns a registry without any transforms.
func NewEmptyRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// NewRegistry returns a registry holding the built-in transforms.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for name, fn := range builtins {
		r.funcs[name] = fn
	}

	return r
}

// Register adds or replaces the transform called name.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return errors.New("transform name cannot be empty")
	}

	if fn == nil {
		return fmt.Errorf("transform %q: nil function", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.funcs[name] = fn

	return nil
}

// Has returns true if a transform called name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.funcs[name]

	return ok
}

// Names returns the registered transform names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return common.SortedKeys(r.funcs)
}

// Apply runs the transform called name on v. Failures are returned as *Error.
func (r *Registry) Apply(name string, v Value, params map[string]string) (Value, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()

	if !ok {
		return Value{}, &Error{Transform: name, Err: ErrNotFound}
	}

	out, err := fn(v, params)
	if err != nil {
		var te *Error
		if errors.As(err, &te) {
			return Value{}, err
		}

		return Value{}, &Error{Transform: name, Err: err}
	}

	if out.TargetType == "" {
		out.TargetType = v.TargetType
	}

	return out, nil
}
