package config

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Configuration is the top-level app config.
type Configuration struct {
	ExternalURL string `mapstructure:"external_url"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`

	Adapters map[string]Adapter `mapstructure:"adapters"`
	IDSync   IDSync             `mapstructure:"id_sync"`
}

// IDSync configures the snowflake identity module.
type IDSync struct {
	// Endpoint receives the fire-and-forget sync call.
	Endpoint string `mapstructure:"endpoint"`

	// SourceID is the 3-character hex partner code. Malformed values degrade to
	// sentinel codes at resolve time rather than failing startup.
	SourceID string `mapstructure:"sourceid"`
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (cfg *Configuration) validate() error {
	if cfg.Port <= 0 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	for name, adapter := range cfg.Adapters {
		if adapter.Disabled {
			glog.Infof("Adapter %s is disabled", name)
			continue
		}
		if adapter.Endpoint == "" {
			return fmt.Errorf("adapters.%s.endpoint is required", name)
		}
	}
	if cfg.IDSync.Endpoint == "" {
		return fmt.Errorf("id_sync.endpoint is required")
	}
	return nil
}

// SetupViper sets the viper defaults and environment bindings. The config file
// is optional; environment variables prefixed with SO_ override everything.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
	}

	v.SetDefault("external_url", "http://localhost:8000")
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("adapters.scaleout.endpoint", "https://d.socdm.com/adsv/v1")
	v.SetDefault("adapters.scaleout.extra_info", "")
	v.SetDefault("id_sync.endpoint", "https://spadsync.com/sync")
	v.SetDefault("id_sync.sourceid", "")

	v.SetEnvPrefix("SO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.ReadInConfig()
}
