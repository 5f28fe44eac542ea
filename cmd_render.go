package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chronicle/pkg/services"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Print the block sequence of a markdown file as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		// Documents with front matter render their body only.
		text := string(content)
		if _, body, _, err := services.ParseFrontMatter(content); err == nil {
			text = body
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(services.RenderContent(text))
	},
}

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the seed article as front-matter markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := loadSeed()
		if err != nil {
			return err
		}
		doc, err := services.ExportArticle(article, exportFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml",
		fmt.Sprintf("front matter format (%s)", strings.Join(services.Formats, ", ")))
}
