package ports

import "context"

// InterpreterResolver locates a concrete interpreter for a basepython
// selector such as "2.7".
//
//go:generate go run go.uber.org/mock/mockgen -source=interpreter.go -destination=mocks/mock_interpreter.go -package=mocks
type InterpreterResolver interface {
	// Resolve returns the absolute path of an interpreter satisfying the
	// selector and the version string it reported. It returns
	// domain.ErrInterpreterNotFound when nothing on the host satisfies it.
	Resolve(ctx context.Context, selector string) (path string, version string, err error)
}
