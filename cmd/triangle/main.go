// Command triangle opens a window, negotiates a Vulkan context for it and
// keeps the window up until it is closed.
package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/vkboot/config"
	"github.com/vkngwrapper/vkboot/vkcontext"
	"github.com/vkngwrapper/vkboot/vkcontext/vkng"
	"github.com/vkngwrapper/vkboot/window"
)

var deviceExtensions = []string{"VK_KHR_swapchain"}

type HelloTriangleApplication struct {
	config        config.Config
	exitAfterInit bool
	log           *logrus.Logger

	window  *window.Window
	context *vkcontext.Context
}

func (app *HelloTriangleApplication) Run() error {
	err := app.initWindow()
	if err != nil {
		return err
	}
	defer app.cleanup()

	err = app.initVulkan()
	if err != nil {
		return err
	}

	return app.context.Run(app.mainLoop)
}

func (app *HelloTriangleApplication) initWindow() error {
	w, err := window.New(app.config.Title, app.config.Width, app.config.Height)
	if err != nil {
		return err
	}
	app.window = w
	return nil
}

func (app *HelloTriangleApplication) initVulkan() error {
	driver, err := vkng.NewDriver(app.window.VkGetInstanceProcAddr(), app.log.WithField("source", "vulkan"))
	if err != nil {
		return err
	}

	app.context = vkcontext.New(driver, app.window, vkcontext.Options{
		Instance: vkcontext.InstanceConfig{
			ApplicationName:    "Hello Triangle",
			ApplicationVersion: vkcontext.Version{Major: 1},
			EngineName:         "No Engine",
			EngineVersion:      vkcontext.Version{Major: 1},
			Validation:         app.config.Validation,
		},
		DeviceExtensions: deviceExtensions,
		Logger:           app.log,
	})

	return app.context.Init()
}

func (app *HelloTriangleApplication) mainLoop() error {
	if app.exitAfterInit {
		return nil
	}
	return app.window.PollUntilQuit()
}

func (app *HelloTriangleApplication) cleanup() {
	if app.context != nil {
		app.context.Destroy()
	}

	if app.window != nil {
		app.window.Destroy()
	}
}

func newLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func main() {
	runtime.LockOSThread()

	envFile := flag.String("env", "", "dotenv file with TRIANGLE_* and LOG_LEVEL overrides")
	exitAfterInit := flag.Bool("exit-after-init", false, "tear down as soon as the context is ready")
	flag.Parse()

	cfg, err := config.Load(*envFile, config.Default(enableValidationLayers))
	if err != nil {
		newLogger(logrus.InfoLevel).Error(err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	app := &HelloTriangleApplication{
		config:        cfg,
		exitAfterInit: *exitAfterInit,
		log:           log,
	}

	err = app.Run()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
