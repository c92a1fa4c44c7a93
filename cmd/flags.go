package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the flags that override them. Several
// commands define the same flag, so binding happens once the executing
// command is known.
var flagKeys = map[string]string{
	"log-level":          "log-level",
	"log-format":         "log-format",
	"site.features_file": "features",
	"server.port":        "port",
	"server.host":        "host",
}

// bindFlags binds every flag in fs that overrides a config key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func addFeaturesFlag(fs *pflag.FlagSet) {
	fs.String("features", "", "features YAML file (default: the authored homepage features)")
}
