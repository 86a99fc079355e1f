// Package vkng implements the vkcontext platform interfaces with vkngwrapper.
package vkng

import (
	"sort"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/vkboot/vkcontext"
)

// Driver is the global Vulkan driver loaded from a vkGetInstanceProcAddr.
type Driver struct {
	global core1_0.GlobalDriver
	log    logrus.FieldLogger

	surfaceDriver func(core1_0.CoreInstanceDriver) khr_surface.ExtensionDriver
	debugDriver   func(core1_0.CoreInstanceDriver) ext_debug_utils.ExtensionDriver
}

// NewDriver loads the driver from procAddr, usually
// sdl.VulkanGetVkGetInstanceProcAddr(). Validation messages are written to
// log, or to the standard logger when log is nil.
func NewDriver(procAddr unsafe.Pointer, log logrus.FieldLogger) (*Driver, error) {
	global, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Wrap(err, "load vulkan driver")
	}

	return newDriver(global, log), nil
}

func newDriver(global core1_0.GlobalDriver, log logrus.FieldLogger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Driver{
		global:        global,
		log:           log,
		surfaceDriver: khr_surface.CreateExtensionDriverFromCoreDriver,
		debugDriver:   ext_debug_utils.CreateExtensionDriverFromCoreDriver,
	}
}

func (d *Driver) AvailableLayers() ([]string, error) {
	layers, _, err := d.global.AvailableLayers()
	if err != nil {
		return nil, err
	}
	return keys(layers), nil
}

func (d *Driver) AvailableExtensions() ([]string, error) {
	extensions, _, err := d.global.AvailableExtensions()
	if err != nil {
		return nil, err
	}
	return keys(extensions), nil
}

func (d *Driver) CreateInstance(options vkcontext.InstanceOptions) (vkcontext.Instance, error) {
	app, engine := options.ApplicationVersion, options.EngineVersion
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    options.ApplicationName,
		ApplicationVersion: common.CreateVersion(uint32(app.Major), uint32(app.Minor), uint32(app.Patch)),
		EngineName:         options.EngineName,
		EngineVersion:      common.CreateVersion(uint32(engine.Major), uint32(engine.Minor), uint32(engine.Patch)),
		APIVersion:         common.Vulkan1_2,
	}
	instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, options.ExtensionNames...)
	instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, options.LayerNames...)

	extensions, _, err := d.global.AvailableExtensions()
	if err != nil {
		return nil, err
	}

	_, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]
	if enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	var messengerOptions ext_debug_utils.DebugUtilsMessengerCreateInfo
	if options.Debug {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)

		// Chained so instance creation and destruction are covered too.
		messengerOptions = debugMessengerOptions(d.log)
		instanceOptions.Next = messengerOptions
	}

	handle, _, err := d.global.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	instanceDriver, err := d.global.BuildInstanceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "build instance driver")
	}

	instance := &Instance{
		driver:           instanceDriver,
		surfaceExtension: d.surfaceDriver(instanceDriver),
		extensions:       instanceOptions.EnabledExtensionNames,
		layers:           instanceOptions.EnabledLayerNames,
	}

	if options.Debug {
		instance.debugDriver = d.debugDriver(instanceDriver)
		if instance.debugDriver == nil {
			instanceDriver.DestroyInstance(nil)
			return nil, errors.Newf("%s was requested but is not active", ext_debug_utils.ExtensionName)
		}

		instance.debugMessenger, _, err = instance.debugDriver.CreateDebugUtilsMessenger(nil, messengerOptions)
		if err != nil {
			instanceDriver.DestroyInstance(nil)
			return nil, errors.Wrap(err, "create debug messenger")
		}
	}

	return instance, nil
}

func keys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
