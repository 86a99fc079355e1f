package vkcontext

import (
	"github.com/cockroachdb/errors"
)

// ValidationLayers are enabled on the instance, and on the device for older
// implementations, when validation is requested.
var ValidationLayers = []string{"VK_LAYER_KHRONOS_validation"}

type InstanceConfig struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	Validation         bool
}

// CreateInstance creates the API instance with the extensions window needs
// and, if requested, the validation layers.
//
// The required extensions are checked against the catalog after the
// instance exists. When that check fails the instance is returned together
// with the error so the caller can release it.
func CreateInstance(catalog *Catalog, window Window, config InstanceConfig) (Instance, error) {
	options := InstanceOptions{
		ApplicationName:    config.ApplicationName,
		ApplicationVersion: config.ApplicationVersion,
		EngineName:         config.EngineName,
		EngineVersion:      config.EngineVersion,
		Debug:              config.Validation,
	}

	if config.Validation {
		layers, err := catalog.InstanceLayers()
		if err != nil {
			return nil, err
		}

		if missing := layers.Missing(ValidationLayers); len(missing) > 0 {
			return nil, errors.Mark(
				errors.Newf("validation layers requested, but not available: %v", missing),
				ErrValidationLayerUnavailable)
		}
		options.LayerNames = append(options.LayerNames, ValidationLayers...)
	}

	required := window.RequiredInstanceExtensions()
	options.ExtensionNames = append(options.ExtensionNames, required...)

	instance, err := catalog.driver.CreateInstance(options)
	if err != nil {
		return nil, err
	}

	available, err := catalog.InstanceExtensions()
	if err != nil {
		return instance, err
	}

	if missing := available.Missing(required); len(missing) > 0 {
		return instance, missingExtensions(missing)
	}

	return instance, nil
}
