// Package window owns the SDL window the Vulkan surface presents to.
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
)

// Window is a fixed-size SDL window created for Vulkan. SDL calls must be
// made from the thread that created it.
type Window struct {
	window *sdl.Window
}

// New initializes SDL video and opens a non-resizable Vulkan window.
func New(title string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Newf("invalid window size %dx%d", width, height)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "initialize sdl")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "create window")
	}

	return &Window{window: window}, nil
}

func (w *Window) SDLWindow() *sdl.Window {
	return w.window
}

// RequiredInstanceExtensions lists the instance extensions SDL needs to
// present to this window.
func (w *Window) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// VkGetInstanceProcAddr returns the loader entry point SDL resolved.
func (w *Window) VkGetInstanceProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// PollUntilQuit pumps window events until the window is closed.
func (w *Window) PollUntilQuit() error {
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				return nil
			}
		}
		sdl.Delay(1)
	}
}

func (w *Window) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
