package vkcontext

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Suitability reports whether candidate can serve surface with all of
// requiredExtensions. When it cannot, reason says why. On success the
// resolved queue families are stored in candidate.Indices.
func Suitability(candidate *Candidate, surface Surface, requiredExtensions []string) (bool, string, error) {
	indices, err := ResolveQueueFamilies(candidate.Device, candidate.QueueFamilies, surface)
	if err != nil {
		return false, "", err
	}

	if !indices.IsComplete() {
		var lacking []string
		if indices.GraphicsFamily == nil {
			lacking = append(lacking, "graphics")
		}
		if indices.PresentFamily == nil {
			lacking = append(lacking, "present")
		}
		return false, fmt.Sprintf("no %s queue family", strings.Join(lacking, " or ")), nil
	}

	if missing := candidate.Extensions.Missing(requiredExtensions); len(missing) > 0 {
		return false, fmt.Sprintf("missing device extensions %v", missing), nil
	}

	candidate.Indices = indices
	return true, "", nil
}

// SelectPhysicalDevice returns the first physical device, in enumeration
// order, that is suitable for surface and offers requiredExtensions. No
// ranking between several suitable devices is done. A device query that
// fails stops the selection; the error is returned with the device name
// attached as a detail.
func SelectPhysicalDevice(catalog *Catalog, instance Instance, surface Surface, requiredExtensions []string, log logrus.FieldLogger) (*Candidate, error) {
	devices, err := catalog.PhysicalDevices(instance)
	if err != nil {
		return nil, err
	}

	if len(devices) == 0 {
		return nil, ErrNoGPUFound
	}

	return firstSuitable(devices, func(device PhysicalDevice) (*Candidate, error) {
		deviceLog := log.WithField("device", device.Name())

		candidate, err := catalog.Candidate(device)
		if err != nil {
			return nil, err
		}
		deviceLog.WithField("queueFamilies", describeQueueFamilies(candidate.QueueFamilies)).Debug("considering device")

		suitable, reason, err := Suitability(candidate, surface, requiredExtensions)
		if err != nil {
			return nil, errors.WithDetailf(err, "device %s", device.Name())
		}
		if !suitable {
			deviceLog.WithField("reason", reason).Info("device rejected")
			return nil, nil
		}
		return candidate, nil
	})
}

func firstSuitable(devices []PhysicalDevice, check func(PhysicalDevice) (*Candidate, error)) (*Candidate, error) {
	for _, device := range devices {
		candidate, err := check(device)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			return candidate, nil
		}
	}

	return nil, errors.Mark(
		errors.Newf("failed to find a suitable GPU among %d device(s)", len(devices)),
		ErrNoSuitableGPU)
}

func describeQueueFamilies(families []QueueFamily) string {
	var b strings.Builder
	for i, family := range families {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d:", i)
		if family.Flags&QueueGraphics != 0 {
			b.WriteString("G")
		}
		if family.Flags&QueueCompute != 0 {
			b.WriteString("C")
		}
		if family.Flags&QueueTransfer != 0 {
			b.WriteString("T")
		}
		fmt.Fprintf(&b, "x%d", family.QueueCount)
	}
	return b.String()
}
