package vkng

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/vkngwrapper/vkboot/vkcontext"
)

// SDLWindow is a window a surface can be created for.
type SDLWindow interface {
	SDLWindow() *sdl.Window
}

type Instance struct {
	driver           core1_0.CoreInstanceDriver
	surfaceExtension khr_surface.ExtensionDriver

	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger

	extensions []string
	layers     []string
}

func (i *Instance) EnabledExtensions() []string { return i.extensions }
func (i *Instance) EnabledLayers() []string     { return i.layers }

// Driver exposes the instance driver to code that goes on to build a
// swapchain and render.
func (i *Instance) Driver() core1_0.CoreInstanceDriver { return i.driver }

func (i *Instance) CreateSurface(window vkcontext.Window) (vkcontext.Surface, error) {
	sdlWindow, ok := window.(SDLWindow)
	if !ok {
		return nil, errors.Newf("cannot create a surface for window of type %T", window)
	}

	surface, err := vkng_sdl2.CreateSurface(i.driver.Instance(), i.surfaceExtension, sdlWindow.SDLWindow())
	if err != nil {
		return nil, err
	}

	return &Surface{extension: i.surfaceExtension, handle: surface}, nil
}

func (i *Instance) PhysicalDevices() ([]vkcontext.PhysicalDevice, error) {
	physicalDevices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]vkcontext.PhysicalDevice, 0, len(physicalDevices))
	for index, device := range physicalDevices {
		devices = append(devices, &PhysicalDevice{
			name:             fmt.Sprintf("gpu%d", index),
			handle:           device,
			driver:           i.driver,
			surfaceExtension: i.surfaceExtension,
		})
	}
	return devices, nil
}

func (i *Instance) CreateDevice(device vkcontext.PhysicalDevice, options vkcontext.DeviceOptions) (vkcontext.Device, error) {
	physicalDevice, ok := device.(*PhysicalDevice)
	if !ok {
		return nil, errors.Newf("physical device %s does not belong to this instance", device.Name())
	}

	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queueFamily := range options.QueueFamilies {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily.QueueFamilyIndex,
			QueuePriorities:  queueFamily.QueuePriorities,
		})
	}

	// Device layers are deprecated and DeviceCreateInfo no longer carries
	// them; the instance layers in options.LayerNames already apply.
	handle, _, err := i.driver.CreateDevice(physicalDevice.handle, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledExtensionNames: options.ExtensionNames,
	})
	if err != nil {
		return nil, err
	}

	deviceDriver, err := i.driver.BuildDeviceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "build device driver")
	}

	return &Device{driver: deviceDriver}, nil
}

func (i *Instance) Destroy() {
	if i.debugMessenger.Initialized() {
		i.debugDriver.DestroyDebugUtilsMessenger(i.debugMessenger, nil)
	}

	i.driver.DestroyInstance(nil)
}

type Surface struct {
	extension khr_surface.ExtensionDriver
	handle    khr_surface.Surface
}

func (s *Surface) Handle() khr_surface.Surface { return s.handle }

func (s *Surface) Destroy() {
	if s.handle.Initialized() {
		s.extension.DestroySurface(s.handle, nil)
	}
}
