package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Amund211/dotaprofile/internal/config"
	"github.com/stretchr/testify/require"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

var requiredVariablesExceptEnv = []string{"STRATZ_API_TOKEN", "STEAM_API_KEY", "SENTRY_DSN"}

func TestGetConfig(t *testing.T) {
	compareConfig := func(stratzAPIToken, steamAPIKey, sentryDSN, port string, requestTimeout time.Duration, env environment, conf config.Config) {
		t.Helper()
		require.Equal(t, stratzAPIToken, conf.StratzAPIToken())
		require.Equal(t, steamAPIKey, conf.SteamAPIKey())
		require.Equal(t, sentryDSN, conf.SentryDSN())
		require.Equal(t, port, conf.Port())
		require.Equal(t, requestTimeout, conf.RequestTimeout())
		require.Equal(t, env == production, conf.IsProduction())
		require.Equal(t, env == staging, conf.IsStaging())
		require.Equal(t, env == development, conf.IsDevelopment())
	}

	t.Run("ensure base environment is clean", func(t *testing.T) {
		t.Run("environment is missing", func(t *testing.T) {
			// DOTAPROFILE_ENVIRONMENT is required, so this should fail
			_, err := config.ConfigFromEnv()
			require.ErrorIs(t, err, config.ErrMissingRequiredValue)
		})

		t.Run("development environment uses defaults", func(t *testing.T) {
			t.Setenv("DOTAPROFILE_ENVIRONMENT", "development")

			conf, err := config.ConfigFromEnv()
			require.NoError(t, err)
			compareConfig("", "", "", "8123", 10*time.Second, development, conf)
		})
	})

	t.Run("values are read correctly", func(t *testing.T) {
		for _, variable := range requiredVariablesExceptEnv {
			t.Setenv(variable, variable)
		}
		t.Setenv("PORT", "9000")
		t.Setenv("REQUEST_TIMEOUT", "3s")

		for _, env := range []environment{production, staging, development} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("DOTAPROFILE_ENVIRONMENT", string(env))

				conf, err := config.ConfigFromEnv()
				require.NoError(t, err)
				compareConfig("STRATZ_API_TOKEN", "STEAM_API_KEY", "SENTRY_DSN", "9000", 3*time.Second, env, conf)
			})
		}
	})

	t.Run("production and staging fail when missing variables", func(t *testing.T) {
		for _, variable := range requiredVariablesExceptEnv {
			t.Setenv(variable, "placeholder_value")
		}

		for _, env := range []environment{production, staging} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("DOTAPROFILE_ENVIRONMENT", string(env))

				for _, variable := range requiredVariablesExceptEnv {
					t.Run(variable, func(t *testing.T) {
						t.Setenv(variable, "")

						_, err := config.ConfigFromEnv()
						require.ErrorIs(t, err, config.ErrMissingRequiredValue)
						require.ErrorContains(t, err, variable)
					})
				}
			})
		}
	})

	t.Run("invalid environment", func(t *testing.T) {
		for _, env := range []string{"", "invalid", "my-env"} {
			t.Run(env, func(t *testing.T) {
				t.Setenv("DOTAPROFILE_ENVIRONMENT", env)
				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		for _, port := range []string{"abc", "0", "-1", "70000"} {
			t.Run(port, func(t *testing.T) {
				t.Setenv("DOTAPROFILE_ENVIRONMENT", "development")
				t.Setenv("PORT", port)
				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})

	t.Run("invalid request timeout", func(t *testing.T) {
		for _, timeout := range []string{"10", "soon", "0s", "-5s"} {
			t.Run(timeout, func(t *testing.T) {
				t.Setenv("DOTAPROFILE_ENVIRONMENT", "development")
				t.Setenv("REQUEST_TIMEOUT", timeout)
				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		err := config.LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
	})

	t.Run("variables are loaded without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		err := os.WriteFile(path, []byte("STRATZ_API_TOKEN=from-file\nSTEAM_API_KEY=from-file\n"), 0o600)
		require.NoError(t, err)

		// Registers cleanup for both variables
		t.Setenv("STRATZ_API_TOKEN", "")
		os.Unsetenv("STRATZ_API_TOKEN")
		t.Setenv("STEAM_API_KEY", "from-env")

		require.NoError(t, config.LoadDotEnv(path))

		require.Equal(t, "from-file", os.Getenv("STRATZ_API_TOKEN"))
		require.Equal(t, "from-env", os.Getenv("STEAM_API_KEY"))
	})
}
