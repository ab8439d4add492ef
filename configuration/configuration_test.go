package configuration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/codeready-toolchain/toolchain-pageobjects/configuration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		// when
		cfg, err := configuration.Load("")

		// then
		require.NoError(t, err)
		assert.Equal(t, configuration.DriverPlaywright, cfg.Driver)
		assert.Equal(t, "chromium", cfg.Browser)
		assert.True(t, cfg.Headless)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 100*time.Millisecond, cfg.RetryInterval)
		assert.Zero(t, cfg.SleepAfter)
		assert.Empty(t, cfg.TraceDir)
	})

	t.Run("from file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DRIVER=selenium\nBROWSER=firefox\nBASE_URL=https://developer.mozilla.org\nHEADLESS=false\nTIMEOUT=30s\nSLEEP_AFTER=250ms\n"), 0600))

		// when
		cfg, err := configuration.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, configuration.DriverSelenium, cfg.Driver)
		assert.Equal(t, "firefox", cfg.Browser)
		assert.Equal(t, "https://developer.mozilla.org", cfg.BaseURL)
		assert.False(t, cfg.Headless)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 250*time.Millisecond, cfg.SleepAfter)
	})

	t.Run("environment takes precedence", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DRIVER=selenium\n"), 0600))
		t.Setenv("DRIVER", "rod")
		t.Setenv("TRACE_DIR", "/tmp/traces")

		// when
		cfg, err := configuration.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, configuration.DriverRod, cfg.Driver)
		assert.Equal(t, "/tmp/traces", cfg.TraceDir)
	})

	t.Run("failures", func(t *testing.T) {
		t.Run("missing file", func(t *testing.T) {
			// when
			_, err := configuration.Load(filepath.Join(t.TempDir(), "missing.env"))

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unable to read the configuration from")
		})

		t.Run("unsupported driver", func(t *testing.T) {
			// given
			t.Setenv("DRIVER", "puppeteer")

			// when
			_, err := configuration.Load("")

			// then
			require.EqualError(t, err, "unsupported driver 'puppeteer'")
		})

		t.Run("invalid retry interval", func(t *testing.T) {
			// given
			t.Setenv("RETRY_INTERVAL", "0s")

			// when
			_, err := configuration.Load("")

			// then
			require.EqualError(t, err, "retry interval must be positive: 0s")
		})
	})
}
