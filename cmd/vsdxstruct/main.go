// Package main provides the CLI entry point for vsdxstruct-go.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/vsdxstruct-go/internal/config"
	"github.com/ukaji3/vsdxstruct-go/internal/observability"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/output"
	"go.uber.org/zap"
)

type cli struct {
	cfgFile    string
	outputPath string
	pagesDir   string
	markup     bool
	data       bool
	cfg        *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "vsdxstruct [input.vsdx]",
		Short: "Extract structured data from Visio files",
		Long: `vsdxstruct-go extracts structured data (shapes, paths, styles, text, connectors)
from Visio (.vsdx) files and outputs JSON or XLSX.`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: c.initialize,
		RunE:              c.run,
		SilenceUsage:      true,
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "Config file (default: ./vsdxstruct.yaml or ~/.vsdxstruct/vsdxstruct.yaml)")
	flags.StringVarP(&c.outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.String("mode", "standard", "Extraction mode: light, standard, verbose")
	flags.String("format", "json", "Output format: json, xlsx")
	flags.Int("workers", vsdxstruct.DefaultWorkers, "Number of shapes compiled concurrently")
	flags.StringVar(&c.pagesDir, "pages-dir", "", "Directory for per-page output files")
	flags.BoolVar(&c.markup, "markup", false, "Render styled text markup (default depends on mode)")
	flags.BoolVar(&c.data, "data", false, "Include shape data (default depends on mode)")

	return rootCmd
}

// initialize loads the configuration, binds the flags over it and sets up
// the logger.
func (c *cli) initialize(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(c.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		observability.InitializeLogger(config.NewDefaultConfig().Logger)
		return err
	}
	if cmd.Flags().Changed("markup") {
		cfg.Extraction.Markup = &c.markup
	}
	if cmd.Flags().Changed("data") {
		cfg.Extraction.Data = &c.data
	}

	observability.InitializeLogger(cfg.Logger)
	c.cfg = cfg
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"extraction.mode":    "mode",
		"extraction.workers": "workers",
		"output.format":      "format",
		"output.pretty":      "pretty",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	logger := observability.GetLogger()
	inputPath := args[0]

	extractMode, err := vsdxstruct.ParseMode(c.cfg.Extraction.Mode)
	if err != nil {
		return err
	}

	opts := vsdxstruct.Options{
		Mode:          extractMode,
		Workers:       c.cfg.Extraction.Workers,
		IncludeMarkup: c.cfg.Extraction.Markup,
		IncludeData:   c.cfg.Extraction.Data,
		Logger:        logger,
	}

	// Extract data
	doc, err := vsdxstruct.Extract(cmd.Context(), inputPath, opts)
	if err != nil {
		logger.Error("Extraction failed", zap.String("input", inputPath), zap.Error(err))
		return fmt.Errorf("extraction failed: %w", err)
	}
	logger.Info("Extracted drawing", zap.String("input", inputPath), zap.Int("pages", len(doc.Pages)))

	if c.outputPath != "" || c.pagesDir == "" {
		if err := c.writeDocument(doc, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	// Write per-page files
	if c.pagesDir != "" {
		if err := writePageFiles(doc, c.pagesDir, c.cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write page files: %w", err)
		}
	}

	return nil
}

func (c *cli) writeDocument(doc *models.DocumentData, stdout io.Writer) error {
	w := stdout
	if c.outputPath != "" {
		f, err := os.Create(c.outputPath)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if c.cfg.Output.Format == "xlsx" {
		if err := output.ToXLSX(doc, w); err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return nil
	}

	jsonData, err := output.ToJSON(doc, c.cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonData)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writePageFiles(doc *models.DocumentData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range doc.Pages {
		page := &doc.Pages[i]
		jsonData, err := output.PageToJSON(page, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, pageFileName(page, i))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// pageFileName derives a file name from the page name, falling back to the
// page position.
func pageFileName(page *models.PageData, index int) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(page.Name))
	if name == "" {
		name = "page" + strconv.Itoa(index+1)
	}
	return name + ".json"
}
