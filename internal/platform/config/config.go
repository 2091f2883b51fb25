package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Printix   PrintixConfig   `mapstructure:"printix"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type PrintixConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	TenantID     string        `mapstructure:"tenant_id"`
	AuthURL      string        `mapstructure:"auth_url"`
	APIBaseURL   string        `mapstructure:"api_base_url"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
}

type DirectoryConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	Container        string `mapstructure:"container"`
	Blob             string `mapstructure:"blob"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// Environment names the Printix integration is provisioned with. They are
// fixed by the deployment, so they are bound explicitly rather than derived
// from the config key layout.
var envBindings = map[string]string{
	"printix.client_id":           "PrintixClientId",
	"printix.client_secret":       "PrintixClientSecret",
	"printix.tenant_id":           "PrintixTenantId",
	"directory.connection_string": "StorageConnectionString",
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("printix.auth_url", "https://auth.printix.net/oauth/token")
	v.SetDefault("printix.api_base_url", "https://api.printix.net/cloudprint")
	v.SetDefault("printix.http_timeout", 30*time.Second)
	v.SetDefault("directory.container", "cuttysark-accesscards")
	v.SetDefault("directory.blob", "UserCardDetails.csv")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate fails startup when a credential the pipeline needs is absent,
// instead of surfacing the gap mid-request.
func (c *Config) validate() error {
	missing := []string{}
	if c.Printix.ClientID == "" {
		missing = append(missing, "PrintixClientId")
	}
	if c.Printix.ClientSecret == "" {
		missing = append(missing, "PrintixClientSecret")
	}
	if c.Printix.TenantID == "" {
		missing = append(missing, "PrintixTenantId")
	}
	if c.Directory.ConnectionString == "" {
		missing = append(missing, "StorageConnectionString")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
