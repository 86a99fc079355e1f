package vkcontext

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// NameSet is a set of layer or extension names.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Missing returns the names in required that s does not contain, in the
// order they first appear in required, without duplicates.
func (s NameSet) Missing(required []string) []string {
	var missing []string
	seen := make(map[string]struct{}, len(required))
	for _, name := range required {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Contains reports whether every name in required is in s.
func (s NameSet) Contains(required []string) bool {
	return len(s.Missing(required)) == 0
}

func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Candidate is a physical device together with the properties the
// selection looks at.
type Candidate struct {
	Device        PhysicalDevice
	QueueFamilies []QueueFamily
	Extensions    NameSet

	// Indices is filled in by the selector for the chosen candidate.
	Indices QueueFamilyIndices
}

// Catalog answers read-only capability queries against the driver and its
// instance.
type Catalog struct {
	driver Driver
}

func NewCatalog(driver Driver) *Catalog {
	return &Catalog{driver: driver}
}

func (c *Catalog) InstanceLayers() (NameSet, error) {
	layers, err := c.driver.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance layers")
	}
	return NewNameSet(layers...), nil
}

func (c *Catalog) InstanceExtensions() (NameSet, error) {
	extensions, err := c.driver.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance extensions")
	}
	return NewNameSet(extensions...), nil
}

func (c *Catalog) PhysicalDevices(instance Instance) ([]PhysicalDevice, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}
	return devices, nil
}

// Candidate queries the queue families and device extensions of device.
func (c *Catalog) Candidate(device PhysicalDevice) (*Candidate, error) {
	extensions, err := device.AvailableExtensions()
	if err != nil {
		return nil, errors.WithDetailf(err, "device %s", device.Name())
	}

	return &Candidate{
		Device:        device,
		QueueFamilies: device.QueueFamilyProperties(),
		Extensions:    NewNameSet(extensions...),
	}, nil
}
