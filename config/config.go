// Package config holds the settings of the triangle program.
package config

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	WindowWidth  = 500
	WindowHeight = WindowWidth
	WindowTitle  = "Triangle"
)

const (
	KeyTitle      = "TRIANGLE_TITLE"
	KeyWidth      = "TRIANGLE_WIDTH"
	KeyHeight     = "TRIANGLE_HEIGHT"
	KeyValidation = "TRIANGLE_VALIDATION"
	KeyLogLevel   = "LOG_LEVEL"
)

type Config struct {
	Title      string
	Width      int
	Height     int
	Validation bool
	LogLevel   logrus.Level
}

// Default is the compiled-in configuration.
func Default(validation bool) Config {
	return Config{
		Title:      WindowTitle,
		Width:      WindowWidth,
		Height:     WindowHeight,
		Validation: validation,
		LogLevel:   logrus.InfoLevel,
	}
}

// Loader overlays a dotenv file and the environment onto a base Config.
type Loader struct {
	// Getenv looks up key, returning fallback when unset.
	Getenv func(key, fallback string) string
}

// Load applies envFile, if given, and then the process environment to base.
// The environment is read through envy, whose package init overlays a .env
// file in the working directory onto the process environment. Keys set in
// that file therefore win over exported variables and over envFile.
func Load(envFile string, base Config) (Config, error) {
	return Loader{Getenv: envy.Get}.Load(envFile, base)
}

func (l Loader) Load(envFile string, base Config) (Config, error) {
	fileValues := map[string]string{}
	if envFile != "" {
		var err error
		fileValues, err = godotenv.Read(envFile)
		if err != nil {
			if os.IsNotExist(err) {
				return base, errors.Newf("env file %s does not exist", envFile)
			}
			return base, errors.Wrapf(err, "read env file %s", envFile)
		}
	}

	lookup := func(key string) (string, bool) {
		value := l.Getenv(key, fileValues[key])
		return value, value != ""
	}

	config := base
	if value, ok := lookup(KeyTitle); ok {
		config.Title = value
	}

	for key, field := range map[string]*int{KeyWidth: &config.Width, KeyHeight: &config.Height} {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return base, errors.Newf("%s must be a positive integer, got %q", key, value)
		}
		*field = n
	}

	if value, ok := lookup(KeyValidation); ok {
		validation, err := strconv.ParseBool(value)
		if err != nil {
			return base, errors.Newf("%s must be a boolean, got %q", KeyValidation, value)
		}
		config.Validation = validation
	}

	if value, ok := lookup(KeyLogLevel); ok {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			return base, errors.Wrapf(err, "%s", KeyLogLevel)
		}
		config.LogLevel = level
	}

	return config, nil
}
