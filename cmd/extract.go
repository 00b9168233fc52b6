package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spigell/cv-ranker/internal/analysis"
	"github.com/spigell/cv-ranker/internal/dictionary"
	"github.com/spigell/cv-ranker/internal/extraction"
	"github.com/spigell/cv-ranker/internal/ingestion"
	"github.com/spigell/cv-ranker/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract dictionary skills from a single document and print them as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		extract(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Bool("jd", false, "treat the document as a job description")
}

func extract(cmd *cobra.Command, file string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	dict, err := dictionary.Load(config.Dictionary)
	if err != nil {
		logger.Fatal("loading the skill dictionary", zap.Error(err))
	}

	maxSize := 0
	if config.Ingestion != nil {
		maxSize = config.Ingestion.MaxFileSizeMB
	}
	reader := ingestion.NewReader(maxSize, logger)

	text, err := reader.ExtractText(file)
	if err != nil {
		logger.Fatal("reading the document", zap.Error(err), zap.String("file", file))
	}

	// Extraction needs only the tokenizer part of the backend.
	extractor := extraction.New(dict, analysis.New(nil, logger), logger)

	isJD := cmd.Flag("jd").Value.String() == "true"

	skills := extractor.ExtractSkills(text, isJD)

	out, err := json.MarshalIndent(map[string]any{
		"file":   file,
		"jd":     isJD,
		"skills": skills,
	}, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}

	fmt.Println(string(out))
}
