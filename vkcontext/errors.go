package vkcontext

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrValidationLayerUnavailable  = errors.New("validation layers requested, but not available")
	ErrRequiredExtensionMissing    = errors.New("required instance extension missing")
	ErrSurfaceCreationFailed       = errors.New("failed to create window surface")
	ErrNoGPUFound                  = errors.New("failed to find GPUs with Vulkan support")
	ErrNoSuitableGPU               = errors.New("failed to find a suitable GPU")
	ErrLogicalDeviceCreationFailed = errors.New("failed to create logical device")
)

// MissingExtensionsError lists the instance extensions the window system
// needs but the API does not offer.
type MissingExtensionsError struct {
	Names []string
}

func (e *MissingExtensionsError) Error() string {
	var b strings.Builder
	b.WriteString("required instance extension")
	if len(e.Names) > 1 {
		b.WriteString("s")
	}
	b.WriteString(" missing: ")
	for i, name := range e.Names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
	}
	return b.String()
}

func missingExtensions(names []string) error {
	return errors.Mark(&MissingExtensionsError{Names: names}, ErrRequiredExtensionMissing)
}
