package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/cv-ranker/internal/analysis"
	"github.com/spigell/cv-ranker/internal/analysis/gemini"
	"github.com/spigell/cv-ranker/internal/dictionary"
	"github.com/spigell/cv-ranker/internal/extraction"
	"github.com/spigell/cv-ranker/internal/ingestion"
	"github.com/spigell/cv-ranker/internal/logger"
	"github.com/spigell/cv-ranker/internal/matching"
	"github.com/spigell/cv-ranker/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport   = "Show ranked report"
	PromptShowEvidence = "Show matched skill evidence"
	PromptDumpToFile   = "Dump results to file"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Matching complete. What next?",
	Items: []string{PromptShowReport, PromptShowEvidence, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract skills from all documents and rank candidate CVs against the job description",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask what to do with results, dump them to a file and exit")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the cv-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.JD == "" {
		logger.Fatal("a job description file is required under the jd key")
	}

	if config.Candidates == nil || (config.Candidates.Dir == "" && config.Candidates.Manifest == "") {
		logger.Fatal("candidate documents are required under candidates.dir or candidates.manifest")
	}

	dict, err := dictionary.Load(config.Dictionary)
	if err != nil {
		logger.Fatal("loading the skill dictionary",
			zap.Error(err),
			zap.String("hint", "point the 'dictionary' key at a category -> skill -> synonyms YAML file"),
		)
	}

	logger.Info("loaded the skill dictionary",
		zap.Int("known_tokens", dict.Len()),
		zap.Strings("categories", dict.Categories()),
	)

	backend, err := newBackend(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the analysis backend", zap.Error(err))
	}

	maxSize := 0
	if config.Ingestion != nil {
		maxSize = config.Ingestion.MaxFileSizeMB
	}
	reader := ingestion.NewReader(maxSize, logger)

	jdText, err := reader.ExtractText(config.JD)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err), zap.String("file", config.JD))
	}

	extractor := extraction.New(dict, backend, logger)

	jdSkills := extractor.ExtractSkills(jdText, true)
	if len(jdSkills) == 0 {
		logger.Info("exiting", zap.String("reason", "no known skills found in the job description"))
		return
	}

	logger.Info("extracted job description skills", zap.Strings("skills", jdSkills))

	candidates, err := loadCandidates(config, reader, extractor, logger)
	if err != nil {
		logger.Fatal("loading candidate documents", zap.Error(err))
	}

	if len(candidates) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidate documents found"))
		return
	}

	matcher := matching.NewMatcher(backend, logger)

	results := matcher.Rank(ctx, candidates, jdSkills, config.Matcher.SimilarityThreshold, config.Matcher.TopN)
	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates above the similarity threshold"))
		return
	}

	if cmd.Flag("auto-aprove").Value.String() == "true" {
		if err := handleAction(PromptDumpToFile, logger, results); err != nil && !errors.Is(err, errExit) {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, results *matching.Results) error {
	switch action {
	case PromptShowReport:
		pretty, _ := json.MarshalIndent(results.Report(), "", "  ")
		logger.Info(string(pretty), zap.Int("results count", results.Len()))
		return nil
	case PromptShowEvidence:
		for _, result := range results.Items {
			logger.Info("matched skills",
				zap.String("cv_id", result.CVID),
				zap.Strings("evidence", result.MatchedSkills),
			)
		}
		return nil
	case PromptDumpToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// newBackend builds the analysis backend around the Gemini embedder.
func newBackend(ctx context.Context, config *Config, zlogger *zap.Logger) (*analysis.Backend, error) {
	if config.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required under the gemini key")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	embedder, err := gemini.NewEmbedder(ctx, apiKey, config.Gemini.Model, config.Gemini.MaxRetries,
		logger.WithBackendFields(zlogger, "gemini", config.Gemini.Model))
	if err != nil {
		return nil, err
	}

	return analysis.New(embedder, logger.WithBackendFields(zlogger, "gemini", embedder.Model())), nil
}

// loadCandidates reads every candidate document and extracts its skills. A
// document that cannot be read degrades to an empty skill set instead of
// aborting the whole run.
func loadCandidates(config *Config, reader *ingestion.Reader, extractor *extraction.Extractor, logger *zap.Logger) ([]matching.Candidate, error) {
	var sources []ingestion.Source
	var err error

	if manifest := strings.TrimSpace(config.Candidates.Manifest); manifest != "" {
		sources, err = ingestion.LoadManifest(manifest)
	} else {
		sources, err = ingestion.ScanDir(config.Candidates.Dir)
	}
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(sources))
	for i, source := range sources {
		text, err := reader.ExtractText(source.File)
		if err != nil {
			logger.Warn("skipping unreadable candidate document",
				zap.String("cv_id", source.ID),
				zap.Error(err),
			)
			continue
		}
		texts[i] = text
	}

	skillSets := extractor.BatchExtractSkills(texts, nil)

	candidates := make([]matching.Candidate, len(sources))
	for i, source := range sources {
		candidates[i] = matching.Candidate{
			ID:     source.ID,
			Skills: skillSets[i],
		}
		logger.Info("extracted candidate skills",
			zap.String("cv_id", source.ID),
			zap.Int("count", len(skillSets[i])),
		)
	}

	return candidates, nil
}
