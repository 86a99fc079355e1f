package vkcontext

import "github.com/cockroachdb/errors"

// CreateSurface binds a presentable surface to window. Failure is fatal to
// startup; there is no retry.
func CreateSurface(instance Instance, window Window) (Surface, error) {
	surface, err := instance.CreateSurface(window)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to create window surface"), ErrSurfaceCreationFailed)
	}
	if surface == nil {
		return nil, ErrSurfaceCreationFailed
	}
	return surface, nil
}
