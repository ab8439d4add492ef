// Package configuration reads the settings of the browser sessions from an
// optional .env file and the environment.
package configuration

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
	DriverRod        = "rod"
)

// Config holds the settings of a browser session and of the waits
type Config struct {
	// Driver is one of playwright, selenium or rod
	Driver string
	// Browser is chromium, firefox or webkit for playwright, chrome or firefox for selenium
	Browser           string
	BaseURL           string
	Headless          bool
	SeleniumURL       string
	IgnoreHTTPSErrors bool
	// TraceDir is where the playwright traces of the failed tests are saved. No trace is recorded when empty.
	TraceDir      string
	Timeout       time.Duration
	RetryInterval time.Duration
	SleepAfter    time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DRIVER", DriverPlaywright)
	v.SetDefault("BROWSER", "chromium")
	v.SetDefault("HEADLESS", true)
	v.SetDefault("SELENIUM_URL", "http://localhost:4444/wd/hub")
	v.SetDefault("IGNORE_HTTPS_ERRORS", false)
	v.SetDefault("TIMEOUT", 5*time.Second)
	v.SetDefault("RETRY_INTERVAL", 100*time.Millisecond)
	v.SetDefault("SLEEP_AFTER", time.Duration(0))
}

// Load reads the settings from the given .env file, if any, then from the
// environment which takes precedence
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "unable to read the configuration from '%s'", path)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		Driver:            v.GetString("DRIVER"),
		Browser:           v.GetString("BROWSER"),
		BaseURL:           v.GetString("BASE_URL"),
		Headless:          v.GetBool("HEADLESS"),
		SeleniumURL:       v.GetString("SELENIUM_URL"),
		IgnoreHTTPSErrors: v.GetBool("IGNORE_HTTPS_ERRORS"),
		TraceDir:          v.GetString("TRACE_DIR"),
		Timeout:           v.GetDuration("TIMEOUT"),
		RetryInterval:     v.GetDuration("RETRY_INTERVAL"),
		SleepAfter:        v.GetDuration("SLEEP_AFTER"),
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPlaywright, DriverSelenium, DriverRod:
	default:
		return errors.Errorf("unsupported driver '%s'", c.Driver)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.RetryInterval <= 0 {
		return errors.Errorf("retry interval must be positive: %s", c.RetryInterval)
	}
	return nil
}
