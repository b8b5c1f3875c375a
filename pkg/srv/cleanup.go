package srv

import "context"

// CloseFunc is a Service with nothing to start. Shutdown runs the func.
type CloseFunc func() error

func (f CloseFunc) Start(context.Context) error { return nil }

func (f CloseFunc) Shutdown(context.Context) error {
	if f == nil {
		return nil
	}
	return f()
}

// NewCleanup registers a closer, such as a database handle, for shutdown.
func NewCleanup(fn func() error) Service {
	return CloseFunc(fn)
}
