package orion

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
)

// Config is read from the environment, a .env file in the working directory
// is loaded as well.
type Config struct {
	LogLevel slog.Level

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// enables KHR_debug output of the driver
	GLDebug bool

	VSync bool

	// "cpu", "mem" or empty
	Profile string
}

func ConfigFromEnv() (Config, error) {
	var config Config
	var err error

	if config.LogLevel, err = parseLevel(envString("PULSE_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}

	if config.WindowWidth, err = envInt("PULSE_WINDOW_WIDTH", 1280); err != nil {
		return Config{}, err
	}

	if config.WindowHeight, err = envInt("PULSE_WINDOW_HEIGHT", 720); err != nil {
		return Config{}, err
	}

	if config.GLDebug, err = envBool("PULSE_GL_DEBUG", false); err != nil {
		return Config{}, err
	}

	if config.VSync, err = envBool("PULSE_VSYNC", true); err != nil {
		return Config{}, err
	}

	config.WindowTitle = envString("PULSE_WINDOW_TITLE", "Pulse")

	config.Profile = strings.ToLower(envString("PULSE_PROFILE", ""))
	switch config.Profile {
	case "", "cpu", "mem":
	default:
		return Config{}, fmt.Errorf("PULSE_PROFILE: unknown profile %q", config.Profile)
	}

	return config, nil
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("PULSE_LOG_LEVEL: %w", err)
	}

	return level, nil
}

// envString treats empty values like unset ones.
func envString(key string, defaultValue string) string {
	if value := envy.Get(key, ""); value != "" {
		return value
	}

	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	value := envString(key, "")
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, parsed)
	}

	return parsed, nil
}

func envBool(key string, defaultValue bool) (bool, error) {
	value := envString(key, "")
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}

	return parsed, nil
}
