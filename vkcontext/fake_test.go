package vkcontext_test

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/vkngwrapper/vkboot/vkcontext"
)

const (
	surfaceExtension   = "VK_KHR_surface"
	xlibExtension      = "VK_KHR_xlib_surface"
	swapchainExtension = "VK_KHR_swapchain"
)

var (
	graphicsFamily = vkcontext.QueueFamily{Flags: vkcontext.QueueGraphics | vkcontext.QueueCompute | vkcontext.QueueTransfer, QueueCount: 16}
	computeFamily  = vkcontext.QueueFamily{Flags: vkcontext.QueueCompute | vkcontext.QueueTransfer, QueueCount: 2}
	transferFamily = vkcontext.QueueFamily{Flags: vkcontext.QueueTransfer, QueueCount: 1}
)

// recorder keeps every platform call in the order it happened.
type recorder struct {
	calls []string
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

type mockWindow struct {
	mock.Mock
}

func (w *mockWindow) RequiredInstanceExtensions() []string {
	args := w.Called()
	return args.Get(0).([]string)
}

func newWindow(extensions ...string) *mockWindow {
	w := &mockWindow{}
	w.On("RequiredInstanceExtensions").Return(extensions)
	return w
}

type fakeDriver struct {
	rec *recorder

	layers     []string
	extensions []string
	layersErr  error
	extErr     error
	createErr  error

	instance *fakeInstance
	options  *vkcontext.InstanceOptions
}

func (d *fakeDriver) AvailableLayers() ([]string, error) {
	d.rec.record("AvailableLayers")
	return d.layers, d.layersErr
}

func (d *fakeDriver) AvailableExtensions() ([]string, error) {
	d.rec.record("AvailableExtensions")
	return d.extensions, d.extErr
}

func (d *fakeDriver) CreateInstance(options vkcontext.InstanceOptions) (vkcontext.Instance, error) {
	d.rec.record("CreateInstance")
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.options = &options
	d.instance.options = options
	return d.instance, nil
}

type fakeInstance struct {
	rec     *recorder
	options vkcontext.InstanceOptions

	devices    []*fakePhysicalDevice
	devicesErr error
	surfaceErr error
	nilSurface bool
	deviceErr  error

	deviceOptions *vkcontext.DeviceOptions
}

func (i *fakeInstance) EnabledExtensions() []string { return i.options.ExtensionNames }
func (i *fakeInstance) EnabledLayers() []string     { return i.options.LayerNames }

func (i *fakeInstance) CreateSurface(window vkcontext.Window) (vkcontext.Surface, error) {
	i.rec.record("CreateSurface")
	if i.surfaceErr != nil {
		return nil, i.surfaceErr
	}
	if i.nilSurface {
		return nil, nil
	}
	return &fakeSurface{rec: i.rec}, nil
}

func (i *fakeInstance) PhysicalDevices() ([]vkcontext.PhysicalDevice, error) {
	i.rec.record("PhysicalDevices")
	if i.devicesErr != nil {
		return nil, i.devicesErr
	}
	devices := make([]vkcontext.PhysicalDevice, 0, len(i.devices))
	for _, d := range i.devices {
		devices = append(devices, d)
	}
	return devices, nil
}

func (i *fakeInstance) CreateDevice(device vkcontext.PhysicalDevice, options vkcontext.DeviceOptions) (vkcontext.Device, error) {
	i.rec.record("CreateDevice:%s", device.Name())
	if i.deviceErr != nil {
		return nil, i.deviceErr
	}
	i.deviceOptions = &options
	return &fakeDevice{rec: i.rec, queues: map[[2]int]*fakeQueue{}}, nil
}

func (i *fakeInstance) Destroy() {
	i.rec.record("DestroyInstance")
}

type fakeSurface struct {
	rec *recorder
}

func (s *fakeSurface) Destroy() {
	s.rec.record("DestroySurface")
}

type fakePhysicalDevice struct {
	rec *recorder

	name       string
	families   []vkcontext.QueueFamily
	extensions []string
	present    map[int]bool
	presentErr error
	extErr     error
}

func (p *fakePhysicalDevice) Name() string { return p.name }

func (p *fakePhysicalDevice) QueueFamilyProperties() []vkcontext.QueueFamily {
	p.rec.record("QueueFamilies:%s", p.name)
	return p.families
}

func (p *fakePhysicalDevice) AvailableExtensions() ([]string, error) {
	p.rec.record("DeviceExtensions:%s", p.name)
	return p.extensions, p.extErr
}

func (p *fakePhysicalDevice) SupportsPresent(surface vkcontext.Surface, queueFamilyIndex int) (bool, error) {
	p.rec.record("SupportsPresent:%s:%d", p.name, queueFamilyIndex)
	if p.presentErr != nil {
		return false, p.presentErr
	}
	return p.present[queueFamilyIndex], nil
}

type fakeDevice struct {
	rec    *recorder
	queues map[[2]int]*fakeQueue
}

func (d *fakeDevice) Queue(queueFamilyIndex, queueIndex int) vkcontext.Queue {
	d.rec.record("GetQueue:%d:%d", queueFamilyIndex, queueIndex)
	key := [2]int{queueFamilyIndex, queueIndex}
	q, ok := d.queues[key]
	if !ok {
		q = &fakeQueue{family: queueFamilyIndex}
		d.queues[key] = q
	}
	return q
}

func (d *fakeDevice) Destroy() {
	d.rec.record("DestroyDevice")
}

type fakeQueue struct {
	family int
}

func (q *fakeQueue) QueueFamilyIndex() int { return q.family }

// platform is a working machine: validation available, one GPU with a
// unified graphics/present family and the swapchain extension.
type platform struct {
	rec      *recorder
	driver   *fakeDriver
	instance *fakeInstance
	window   *mockWindow
}

func newPlatform() *platform {
	rec := &recorder{}
	instance := &fakeInstance{rec: rec}
	instance.devices = []*fakePhysicalDevice{
		{
			rec:        rec,
			name:       "gpu0",
			families:   []vkcontext.QueueFamily{graphicsFamily},
			extensions: []string{swapchainExtension},
			present:    map[int]bool{0: true},
		},
	}

	return &platform{
		rec: rec,
		driver: &fakeDriver{
			rec:        rec,
			layers:     []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_MESA_device_select"},
			extensions: []string{surfaceExtension, xlibExtension, "VK_EXT_debug_utils"},
			instance:   instance,
		},
		instance: instance,
		window:   newWindow(surfaceExtension, xlibExtension),
	}
}

func (p *platform) device(name string, families []vkcontext.QueueFamily, present map[int]bool, extensions ...string) *fakePhysicalDevice {
	return &fakePhysicalDevice{
		rec:        p.rec,
		name:       name,
		families:   families,
		extensions: extensions,
		present:    present,
	}
}

func (p *platform) catalog() *vkcontext.Catalog {
	return vkcontext.NewCatalog(p.driver)
}

func intPtr(i int) *int {
	return &i
}
