package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "cv-ranker"
)

type Config struct {
	Dictionary string            `mapstructure:"dictionary"`
	JD         string            `mapstructure:"jd"`
	Candidates *CandidatesConfig `mapstructure:"candidates"`
	Ingestion  *IngestionConfig  `mapstructure:"ingestion"`
	Matcher    *MatcherConfig    `mapstructure:"matcher"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
}

type CandidatesConfig struct {
	// Dir is scanned for candidate documents when no manifest is given.
	Dir      string `mapstructure:"dir"`
	Manifest string `mapstructure:"manifest"`
}

type IngestionConfig struct {
	MaxFileSizeMB int `mapstructure:"max-file-size-mb"`
}

type MatcherConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity-threshold"`
	TopN                int     `mapstructure:"top-n"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-ranker extracts skills from CVs and job descriptions and ranks candidates by semantic fit",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("matcher.similarity-threshold", 0.7)
	viper.SetDefault("matcher.top-n", 5)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run and extract commands. If neither was
	// called, we can skip initialization.
	if runCmd.CalledAs() == "" && extractCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
