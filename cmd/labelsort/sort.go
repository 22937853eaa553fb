package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsklabs/labelsort/internal/config"
	"github.com/jsklabs/labelsort/internal/labels"
	"github.com/jsklabs/labelsort/internal/pdftext"
)

var (
	sortOutputDir string
	sortZipPath   string
	sortRulesFile string
	sortQuiet     bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [pdf-file]",
	Short: "Sort a label PDF into per-group PDFs",
	Long: `Sort splits a multi-page shipping label PDF into one PDF per
(date, courier, SKU) group.

Each page is scanned for a courier name, an SKU line and an invoice
date. Pages that share all three end up in the same output file, named
{date}_{courier}_{sku}.pdf. Pages where a field cannot be found are
grouped under "Unknown".

Examples:
  labelsort sort labels.pdf                     # PDFs land next to the input, in sorted_labels/
  labelsort sort labels.pdf -o /tmp/out         # Custom output directory
  labelsort sort labels.pdf --zip sorted.zip    # Write a zip instead
  labelsort sort labels.pdf --rules rules.json  # Extra carrier patterns`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if sortQuiet {
			level = slog.LevelError
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		// Flags win over config file values.
		var cfgOutputDir string
		if cfgMgr, err := config.NewManager(cfgFile); err == nil {
			c := cfgMgr.Get()
			cfgOutputDir = c.Sort.OutputDir
			if sortRulesFile == "" {
				sortRulesFile = c.Sort.RulesFile
			}
		}
		outputDir := resolveOutputDir(sortOutputDir, cfgOutputDir, args[0])

		var rules []labels.CarrierRule
		if sortRulesFile != "" {
			var err error
			rules, err = labels.LoadRules(sortRulesFile)
			if err != nil {
				return err
			}
		}

		doc, err := pdftext.OpenFile(args[0])
		if err != nil {
			return err
		}

		result, err := labels.Sort(doc, labels.Options{Rules: rules, Logger: logger})
		if err != nil {
			return err
		}

		if sortZipPath != "" {
			f, err := os.Create(sortZipPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", sortZipPath, err)
			}
			defer f.Close()
			if err := result.WriteZip(f); err != nil {
				os.Remove(sortZipPath)
				return err
			}
		} else {
			if err := result.WriteDir(outputDir); err != nil {
				return err
			}
		}

		if !sortQuiet {
			printSummary(result)
		}
		return nil
	},
}

// resolveOutputDir picks the output directory: the -o flag wins, then the
// config value, then a sorted_labels directory next to the input file.
func resolveOutputDir(flagValue, configValue, inputPath string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return filepath.Join(filepath.Dir(inputPath), "sorted_labels")
}

func printSummary(result *labels.Result) {
	fmt.Printf("Sorted %d labels into %d files:\n", result.TotalPages, len(result.Entries))
	for _, e := range result.Entries {
		fmt.Printf("  %-60s %d labels\n", e.Filename, e.LabelCount)
	}
}

func init() {
	sortCmd.Flags().StringVarP(&sortOutputDir, "output-dir", "o", "", "output directory (default: sorted_labels next to the input)")
	sortCmd.Flags().StringVar(&sortZipPath, "zip", "", "write a zip archive instead of a directory")
	sortCmd.Flags().StringVar(&sortRulesFile, "rules", "", "JSON file with extra carrier patterns")
	sortCmd.Flags().BoolVarP(&sortQuiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(sortCmd)
}
