package conftools_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nais/sentry-deploy/pkg/conftools"
)

type testConfig struct {
	Name    string        `json:"name"`
	Secret  string        `json:"secret"`
	Timeout time.Duration `json:"timeout"`
}

func setup(t *testing.T) (*viper.Viper, *flag.FlagSet) {
	t.Helper()
	v := viper.New()
	conftools.Initialize(v, "conftools-test", "CONFTOOLS_TEST")
	v.AddConfigPath(t.TempDir())

	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.String("name", "default", "")
	flags.String("secret", "", "")
	flags.Duration("timeout", 0, "")
	return v, flags
}

func TestLoadPrecedence(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v, flags := setup(t)
		cfg := &testConfig{}
		require.NoError(t, conftools.Load(v, flags, []string{}, cfg))
		assert.Equal(t, "default", cfg.Name)
		assert.Equal(t, time.Duration(0), cfg.Timeout)
	})

	t.Run("environment overrides default", func(t *testing.T) {
		t.Setenv("CONFTOOLS_TEST_NAME", "from-env")
		t.Setenv("CONFTOOLS_TEST_TIMEOUT", "30s")
		v, flags := setup(t)
		cfg := &testConfig{}
		require.NoError(t, conftools.Load(v, flags, []string{}, cfg))
		assert.Equal(t, "from-env", cfg.Name)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("flag overrides environment", func(t *testing.T) {
		t.Setenv("CONFTOOLS_TEST_NAME", "from-env")
		v, flags := setup(t)
		cfg := &testConfig{}
		require.NoError(t, conftools.Load(v, flags, []string{"--name", "from-flag"}, cfg))
		assert.Equal(t, "from-flag", cfg.Name)
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conftools-file.yaml"), []byte("name: from-file\n"), 0o644))

	v := viper.New()
	conftools.Initialize(v, "conftools-file", "CONFTOOLS_FILE")
	v.AddConfigPath(dir)

	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.String("name", "default", "")
	flags.String("secret", "", "")
	flags.Duration("timeout", 0, "")

	cfg := &testConfig{}
	require.NoError(t, conftools.Load(v, flags, []string{}, cfg))
	assert.Equal(t, "from-file", cfg.Name)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conftools-unknown.yaml"), []byte("nmae: typo\n"), 0o644))

	v := viper.New()
	conftools.Initialize(v, "conftools-unknown", "CONFTOOLS_UNKNOWN")
	v.AddConfigPath(dir)

	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.String("name", "default", "")

	err := conftools.Load(v, flags, []string{}, &testConfig{})
	assert.ErrorContains(t, err, "nmae")
}

func TestFormat(t *testing.T) {
	v, flags := setup(t)
	cfg := &testConfig{}
	require.NoError(t, conftools.Load(v, flags, []string{"--secret", "hunter2"}, cfg))

	assert.Equal(t, []string{
		"name: default",
		"secret: ***REDACTED***",
		"timeout: 0s",
	}, conftools.Format(v, []string{"secret"}))
}
