package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chronicle/pkg/config"
	"chronicle/pkg/logging"
	"chronicle/pkg/models"
	"chronicle/pkg/services"
	"chronicle/pkg/studio"
)

var rootCmd = &cobra.Command{
	Use:   "chronicle",
	Short: "Historical article studio with Gemini-backed research tools",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
		logging.Init(config.LogLevel, config.LogFormat, config.LogFile)
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSeed reads SEED_ARTICLE when set, otherwise the built-in article.
func loadSeed() (models.Article, error) {
	if config.SeedArticlePath == "" {
		return studio.DefaultArticle(), nil
	}
	content, err := os.ReadFile(config.SeedArticlePath)
	if err != nil {
		return models.Article{}, fmt.Errorf("read seed article: %w", err)
	}
	article, err := services.ImportArticle(content)
	if err != nil {
		return models.Article{}, fmt.Errorf("parse seed article %s: %w", config.SeedArticlePath, err)
	}
	return article, nil
}
