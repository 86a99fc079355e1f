package vkcontext

// QueueFamilyIndices holds the queue families resolved for one device and
// one surface. A nil field has not been found.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// UniqueFamilies returns the distinct resolved families, graphics first.
func (i *QueueFamilyIndices) UniqueFamilies() []int {
	var families []int
	if i.GraphicsFamily != nil {
		families = append(families, *i.GraphicsFamily)
	}
	if i.PresentFamily != nil && (i.GraphicsFamily == nil || *i.PresentFamily != *i.GraphicsFamily) {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// ResolveQueueFamilies scans families in enumeration order and records the
// first family with graphics support and the first family that can present
// to surface. The scan stops once both are found. An incomplete result is
// not an error.
func ResolveQueueFamilies(device PhysicalDevice, families []QueueFamily, surface Surface) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for queueFamilyIdx, queueFamily := range families {
		if indices.GraphicsFamily == nil && queueFamily.Graphics() {
			indices.GraphicsFamily = new(int)
			*indices.GraphicsFamily = queueFamilyIdx
		}

		if indices.PresentFamily == nil {
			supported, err := device.SupportsPresent(surface, queueFamilyIdx)
			if err != nil {
				return indices, err
			}

			if supported {
				indices.PresentFamily = new(int)
				*indices.PresentFamily = queueFamilyIdx
			}
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}
