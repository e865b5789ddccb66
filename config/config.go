package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	apiKeyEnvName     = "OPENAI_API_KEY"
)

type llm struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Config struct {
	LogLevel            slog.Level `mapstructure:"log_level"`
	HTTPServerAddr      string     `mapstructure:"http_server_addr"`
	SQLDB               string     `mapstructure:"sql_db"`
	UploadsDir          string     `mapstructure:"uploads_dir"`
	PlaceholderImageURL string     `mapstructure:"placeholder_image_url"`
	LLM                 llm        `mapstructure:"llm"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	// The credential never lives in the config file.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(apiKeyEnvName)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q
	UploadsDir=%q
	PlaceholderImageURL=%q

	LLM:
	APIKey=%q
	BaseURL=%q
	Model=%q
	TimeoutSeconds=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.UploadsDir,
		c.PlaceholderImageURL,
		maskSecret(c.LLM.APIKey),
		c.LLM.BaseURL,
		c.LLM.Model,
		c.LLM.TimeoutSeconds,
	)
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
