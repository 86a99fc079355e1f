// Package vkcontext negotiates a presentable Vulkan execution context: an
// instance, a window surface, one physical device, a logical device and its
// graphics and present queues.
//
// The negotiation is written against the small interfaces in this file.
// Package vkng implements them on top of vkngwrapper; tests implement them
// with recording doubles.
package vkcontext

// Version is a semantic version passed to the API as application and engine
// metadata.
type Version struct {
	Major, Minor, Patch int
}

// Window is the windowing collaborator. It reports the instance extensions
// its window system needs in order to present. Adapters may require a
// concrete window type when creating surfaces.
type Window interface {
	RequiredInstanceExtensions() []string
}

// Driver is the pre-instance entry point of the graphics API.
type Driver interface {
	AvailableLayers() ([]string, error)
	AvailableExtensions() ([]string, error)
	CreateInstance(options InstanceOptions) (Instance, error)
}

// InstanceOptions is everything CreateInstance hands to the driver.
type InstanceOptions struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version

	ExtensionNames []string
	LayerNames     []string

	// Debug asks the driver to route the validation layers' diagnostics
	// through its debug channel.
	Debug bool
}

// Instance is a live API instance.
type Instance interface {
	EnabledExtensions() []string
	EnabledLayers() []string

	CreateSurface(window Window) (Surface, error)
	PhysicalDevices() ([]PhysicalDevice, error)
	CreateDevice(device PhysicalDevice, options DeviceOptions) (Device, error)

	Destroy()
}

// Surface is a presentation target bound to one window and one instance.
type Surface interface {
	Destroy()
}

// PhysicalDevice is an enumerated GPU. It is a read-only view; nothing
// destroys it.
type PhysicalDevice interface {
	Name() string
	QueueFamilyProperties() []QueueFamily
	AvailableExtensions() ([]string, error)
	SupportsPresent(surface Surface, queueFamilyIndex int) (bool, error)
}

// QueueFlags are the capabilities of a queue family.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
)

// QueueFamily describes one queue family of a physical device.
type QueueFamily struct {
	Flags      QueueFlags
	QueueCount int
}

func (f QueueFamily) Graphics() bool { return f.Flags&QueueGraphics != 0 }

// DeviceQueueOptions requests queues from one family.
type DeviceQueueOptions struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

// DeviceOptions is everything CreateDevice hands to the instance.
type DeviceOptions struct {
	QueueFamilies  []DeviceQueueOptions
	ExtensionNames []string
	LayerNames     []string
}

// Device is a logical device.
type Device interface {
	Queue(queueFamilyIndex, queueIndex int) Queue
	Destroy()
}

// Queue is a borrowed queue handle. It lives as long as its Device and is
// never destroyed on its own.
type Queue interface {
	QueueFamilyIndex() int
}
