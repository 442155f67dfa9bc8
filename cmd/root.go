package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/job-match/internal/jsearch"
	"github.com/spigell/job-match/internal/matching"
)

const (
	app = "job-match"
)

type Config struct {
	Listen    string           `mapstructure:"listen"`
	JSearch   *JSearchConfig   `mapstructure:"jsearch"`
	Embedding *EmbeddingConfig `mapstructure:"embedding"`
	Matching  *MatchingConfig  `mapstructure:"matching"`
}

type JSearchConfig struct {
	APIKey     string                `mapstructure:"api-key" json:"-"`
	APIKeyFile string                `mapstructure:"api-key-file"`
	Host       string                `mapstructure:"host"`
	Timeout    time.Duration         `mapstructure:"timeout"`
	Search     *jsearch.SearchParams `mapstructure:"search"`
}

type EmbeddingConfig struct {
	Provider  string        `mapstructure:"provider"`
	Dimension int           `mapstructure:"dimension"`
	BatchSize int           `mapstructure:"batch-size"`
	Gemini    *ProviderAuth `mapstructure:"gemini"`
	OpenAI    *ProviderAuth `mapstructure:"openai"`
}

type ProviderAuth struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	// BaseURL is honoured by the openai provider only.
	BaseURL string `mapstructure:"base-url"`
}

type MatchingConfig struct {
	Limit        int `mapstructure:"limit"`
	MaxLogLength int `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string
	envFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-match ranks JSearch job listings against a query by embedding similarity",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-match.yaml in current directory)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8000")
	v.SetDefault("jsearch.host", jsearch.DefaultHost)
	v.SetDefault("jsearch.timeout", jsearch.DefaultTimeout)
	v.SetDefault("embedding.provider", "gemini")
	v.SetDefault("embedding.batch-size", matching.DefaultBatchSize)
	v.SetDefault("matching.limit", matching.DefaultLimit)

	envs := map[string]string{
		"listen":                        "JOB_MATCH_LISTEN",
		"jsearch.api-key-file":          "RAPID_API_KEY_FILE",
		"embedding.provider":            "EMBEDDING_PROVIDER",
		"embedding.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"embedding.openai.api-key-file": "OPENAI_API_KEY_FILE",
		"embedding.openai.base-url":     "OPENAI_BASE_URL",
	}
	for key, env := range envs {
		if err := v.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}
}

func initConfig() {
	// A missing dotenv file is fine, the environment may be set by other means.
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Only an explicitly requested config file is mandatory.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.JSearch == nil {
		config.JSearch = &JSearchConfig{}
	}
	if config.Embedding == nil {
		config.Embedding = &EmbeddingConfig{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}

	return config, nil
}
