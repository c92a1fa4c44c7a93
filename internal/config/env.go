package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// ConfigFileEnv names the environment variable holding a config file path.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// Init prepares v to read configuration.
//
// Priority of the config file location (highest first):
//  1. explicit path (the --config flag)
//  2. CRABBYSITE_CONFIG_FILE
//  3. .crabbysite.yml in the current directory
//
// Environment variables with the CRABBYSITE_ prefix override file values,
// e.g. CRABBYSITE_SERVER_PORT=8080. A missing config file is not an error.
// Init reports the file used, if any.
func Init(v *viper.Viper, explicit string) (string, error) {
	named := true
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if envFile := os.Getenv(ConfigFileEnv); envFile != "" {
		v.SetConfigFile(envFile)
	} else {
		named = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".crabbysite")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A named file must exist and parse.
		if errors.As(err, &notFound) && !named {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}
