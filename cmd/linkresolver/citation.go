package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/linkresolver/internal/citation"
)

var citationCmd = &cobra.Command{
	Use:   "citation",
	Short: "Print the configured citation",
	Long: `Citation loads the citation metadata file and prints it either as the
plain-text form of the citation block or as a CSL-YAML item for reference
managers and Pandoc.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rec, err := loadCitation(cfg)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "text", "":
			citation.FormatText(citation.Build(rec), os.Stdout)
			return nil
		case "csl":
			return citation.FormatCSL(rec, os.Stdout)
		default:
			return fmt.Errorf("unsupported format %q: use text or csl", format)
		}
	},
}

func init() {
	citationCmd.Flags().String("format", "text", "output format: text or csl")

	rootCmd.AddCommand(citationCmd)
}
