package vkcontext

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

type State int

const (
	StateUninitialized State = iota
	StateInstanceReady
	StateSurfaceReady
	StateDeviceReady
	StateRunning
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInstanceReady:
		return "InstanceReady"
	case StateSurfaceReady:
		return "SurfaceReady"
	case StateDeviceReady:
		return "DeviceReady"
	case StateRunning:
		return "Running"
	case StateTornDown:
		return "TornDown"
	}
	return "Unknown"
}

type Options struct {
	Instance         InstanceConfig
	DeviceExtensions []string
	Logger           logrus.FieldLogger
}

// Context owns the instance, surface and logical device for the life of
// the process. Destroy releases whatever Init managed to create, in
// reverse order of creation, and must be called whether Init succeeded
// or not.
type Context struct {
	ID uuid.UUID

	Instance       Instance
	Surface        Surface
	PhysicalDevice *Candidate
	Device         *LogicalDevice

	catalog *Catalog
	window  Window
	options Options
	log     logrus.FieldLogger
	state   State
}

func New(driver Driver, window Window, options Options) *Context {
	id := uuid.New()

	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Context{
		ID:      id,
		catalog: NewCatalog(driver),
		window:  window,
		options: options,
		log:     logger.WithField("context", id.String()),
	}
}

// State reports how far Init got. It tracks the handles the context owns,
// so a failed Init can leave it past StateUninitialized.
func (c *Context) State() State {
	return c.state
}

func (c *Context) GraphicsQueue() Queue {
	if c.Device == nil {
		return nil
	}
	return c.Device.GraphicsQueue
}

func (c *Context) PresentQueue() Queue {
	if c.Device == nil {
		return nil
	}
	return c.Device.PresentQueue
}

// Init runs the negotiation: instance, surface, physical device, logical
// device. It stops at the first failure.
func (c *Context) Init() error {
	if c.state != StateUninitialized {
		return errors.Newf("context cannot be initialized from state %s", c.state)
	}

	err := c.stage("create instance", func() error {
		var err error
		c.Instance, err = CreateInstance(c.catalog, c.window, c.options.Instance)
		if c.Instance != nil {
			c.state = StateInstanceReady
		}
		return err
	})
	if err != nil {
		return err
	}

	err = c.stage("create surface", func() error {
		var err error
		c.Surface, err = CreateSurface(c.Instance, c.window)
		if err != nil {
			return err
		}
		c.state = StateSurfaceReady
		return nil
	})
	if err != nil {
		return err
	}

	err = c.stage("pick physical device", func() error {
		var err error
		c.PhysicalDevice, err = SelectPhysicalDevice(c.catalog, c.Instance, c.Surface, c.options.DeviceExtensions, c.log)
		return err
	})
	if err != nil {
		return err
	}

	return c.stage("create logical device", func() error {
		var err error
		c.Device, err = CreateLogicalDevice(c.Instance, c.PhysicalDevice, c.options.DeviceExtensions, c.options.Instance.Validation)
		if err != nil {
			return err
		}
		c.state = StateDeviceReady

		c.log.WithFields(logrus.Fields{
			"device":        c.PhysicalDevice.Device.Name(),
			"graphicsQueue": *c.PhysicalDevice.Indices.GraphicsFamily,
			"presentQueue":  *c.PhysicalDevice.Indices.PresentFamily,
			"extensions":    c.Device.EnabledExtensions,
		}).Info("vulkan context ready")
		return nil
	})
}

// Run hands the ready context to loop, the presentation loop.
func (c *Context) Run(loop func() error) error {
	if c.state != StateDeviceReady {
		return errors.Newf("context cannot run from state %s", c.state)
	}
	c.state = StateRunning
	return loop()
}

// Destroy releases the logical device, the surface and the instance, in
// that order, skipping any that were never created. It is safe to call
// more than once.
func (c *Context) Destroy() {
	if c.Device != nil {
		c.Device.Device.Destroy()
		c.Device = nil
	}

	if c.Surface != nil {
		c.Surface.Destroy()
		c.Surface = nil
	}

	if c.Instance != nil {
		c.Instance.Destroy()
		c.Instance = nil
	}

	c.PhysicalDevice = nil
	if c.state != StateTornDown {
		c.log.WithField("from", c.state.String()).Debug("vulkan context torn down")
		c.state = StateTornDown
	}
}

func (c *Context) stage(name string, run func() error) error {
	start := hrtime.Now()
	err := run()
	elapsed := hrtime.Since(start)

	entry := c.log.WithFields(logrus.Fields{
		"stage":   name,
		"elapsed": elapsed.Round(time.Microsecond),
	})
	if err != nil {
		entry.WithError(err).Debug("stage failed")
		return err
	}
	entry.Debug("stage complete")
	return nil
}
