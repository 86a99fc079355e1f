package vkcontext

import (
	"github.com/cockroachdb/errors"
)

// PortabilitySubsetExtension must be enabled on devices that advertise it.
const PortabilitySubsetExtension = "VK_KHR_portability_subset"

// LogicalDevice is the negotiated device and the queues taken from it.
type LogicalDevice struct {
	Device        Device
	GraphicsQueue Queue
	PresentQueue  Queue

	// QueueFamilies are the families a queue was requested from, one per
	// distinct family index.
	QueueFamilies     []int
	EnabledExtensions []string
	EnabledLayers     []string
}

// CreateLogicalDevice opens candidate with one queue per distinct queue
// family and fetches queue 0 of the graphics and present families. The
// candidate must have complete Indices.
func CreateLogicalDevice(instance Instance, candidate *Candidate, requiredExtensions []string, validation bool) (*LogicalDevice, error) {
	indices := candidate.Indices
	if !indices.IsComplete() {
		return nil, errors.Mark(
			errors.Newf("device %s has unresolved queue families", candidate.Device.Name()),
			ErrLogicalDeviceCreationFailed)
	}

	uniqueQueueFamilies := indices.UniqueFamilies()

	var queueFamilyOptions []DeviceQueueOptions
	queuePriority := float32(1.0)
	for _, queueFamily := range uniqueQueueFamilies {
		queueFamilyOptions = append(queueFamilyOptions, DeviceQueueOptions{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, requiredExtensions...)

	// Required on portability implementations such as MoltenVK.
	if candidate.Extensions.Has(PortabilitySubsetExtension) && !NewNameSet(extensionNames...).Has(PortabilitySubsetExtension) {
		extensionNames = append(extensionNames, PortabilitySubsetExtension)
	}

	options := DeviceOptions{
		QueueFamilies:  queueFamilyOptions,
		ExtensionNames: extensionNames,
	}
	if validation {
		options.LayerNames = append(options.LayerNames, ValidationLayers...)
	}

	device, err := instance.CreateDevice(candidate.Device, options)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to create logical device"), ErrLogicalDeviceCreationFailed)
	}
	if device == nil {
		return nil, ErrLogicalDeviceCreationFailed
	}

	return &LogicalDevice{
		Device:            device,
		GraphicsQueue:     device.Queue(*indices.GraphicsFamily, 0),
		PresentQueue:      device.Queue(*indices.PresentFamily, 0),
		QueueFamilies:     uniqueQueueFamilies,
		EnabledExtensions: extensionNames,
		EnabledLayers:     options.LayerNames,
	}, nil
}
