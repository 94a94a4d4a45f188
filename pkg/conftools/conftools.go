package conftools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const redacted = "***REDACTED***"

func decoderHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "json"
	dc.ErrorUnused = true
}

// Initialize sets up config file discovery and environment variable lookup.
// Every key can be given as an environment variable named PREFIX_KEY, with dashes
// and dots replaced by underscores.
func Initialize(v *viper.Viper, configName, envPrefix string) {
	v.SetConfigName(configName)
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load resolves configuration with the following precedence:
// flags > environment variables > configuration file > default values.
func Load(v *viper.Viper, flags *flag.FlagSet, args []string, cfg any) error {
	var err error

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	err = flags.Parse(args)
	if err != nil {
		return err
	}

	err = v.BindPFlags(flags)
	if err != nil {
		return err
	}

	err = v.Unmarshal(cfg, decoderHook)
	if err != nil {
		return err
	}

	return nil
}

// Return a human-readable printout of all configuration options, except secret stuff.
func Format(v *viper.Viper, disallowedKeys []string) []string {
	ok := func(key string) bool {
		for _, forbiddenKey := range disallowedKeys {
			if forbiddenKey == key {
				return false
			}
		}
		return true
	}

	keys := v.AllKeys()
	sort.Strings(keys)

	printed := make([]string, 0, len(keys))

	for _, key := range keys {
		if ok(key) {
			printed = append(printed, fmt.Sprintf("%s: %v", key, v.Get(key)))
		} else {
			printed = append(printed, fmt.Sprintf("%s: %s", key, redacted))
		}
	}

	return printed
}
