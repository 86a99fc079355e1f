package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/vkboot/vkcontext"
)

type PhysicalDevice struct {
	name             string
	handle           core1_0.PhysicalDevice
	driver           core1_0.CoreInstanceDriver
	surfaceExtension khr_surface.ExtensionDriver
}

func (p *PhysicalDevice) Name() string { return p.name }

func (p *PhysicalDevice) Handle() core1_0.PhysicalDevice { return p.handle }

func (p *PhysicalDevice) QueueFamilyProperties() []vkcontext.QueueFamily {
	queueFamilies := p.driver.GetPhysicalDeviceQueueFamilyProperties(p.handle)

	families := make([]vkcontext.QueueFamily, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		var flags vkcontext.QueueFlags
		if (queueFamily.QueueFlags & core1_0.QueueGraphics) != 0 {
			flags |= vkcontext.QueueGraphics
		}
		if (queueFamily.QueueFlags & core1_0.QueueCompute) != 0 {
			flags |= vkcontext.QueueCompute
		}
		if (queueFamily.QueueFlags & core1_0.QueueTransfer) != 0 {
			flags |= vkcontext.QueueTransfer
		}

		families = append(families, vkcontext.QueueFamily{
			Flags:      flags,
			QueueCount: int(queueFamily.QueueCount),
		})
	}
	return families
}

func (p *PhysicalDevice) AvailableExtensions() ([]string, error) {
	extensions, _, err := p.driver.EnumerateDeviceExtensionProperties(p.handle)
	if err != nil {
		return nil, err
	}
	return keys(extensions), nil
}

func (p *PhysicalDevice) SupportsPresent(surface vkcontext.Surface, queueFamilyIndex int) (bool, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return false, errors.Newf("unsupported surface type %T", surface)
	}

	supported, _, err := p.surfaceExtension.GetPhysicalDeviceSurfaceSupport(s.handle, p.handle, queueFamilyIndex)
	if err != nil {
		return false, err
	}
	return supported, nil
}

type Device struct {
	driver core1_0.CoreDeviceDriver
}

// Driver exposes the device driver to the render loop.
func (d *Device) Driver() core1_0.CoreDeviceDriver { return d.driver }

func (d *Device) Queue(queueFamilyIndex, queueIndex int) vkcontext.Queue {
	return Queue{
		Handle: d.driver.GetQueue(queueFamilyIndex, queueIndex),
		family: queueFamilyIndex,
	}
}

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

type Queue struct {
	Handle core1_0.Queue
	family int
}

func (q Queue) QueueFamilyIndex() int { return q.family }
