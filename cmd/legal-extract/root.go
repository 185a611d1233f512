// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"legal-extract/internal/config"
	"legal-extract/internal/core"
	"legal-extract/internal/formatters"
	_ "legal-extract/internal/formatters/json"
	_ "legal-extract/internal/formatters/text"
	_ "legal-extract/internal/formatters/yaml"
	"legal-extract/internal/version"
)

// app carries the settings resolved from config file, profile and flags.
type app struct {
	configFile string
	profile    string
	format     string
	noColor    bool
	debug      bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "legal-extract",
		Short: "Extract the legal description from OCR'd deeds",
		Long: `legal-extract locates the legal description in a deed's OCR evidence,
reconstructs and corrects its text, and refuses to answer when the evidence
is uncertain.

Inputs are evidence bundles (.json) or born-digital PDFs (.pdf). Every run
ends in exactly one envelope: PASS with the description and its trace, or
FAIL with a reason.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./legal-extract.yaml or the user config dir)")
	flags.StringVar(&a.profile, "profile", "", "named profile from the config file")
	flags.StringVarP(&a.format, "format", "f", "json", "output format: "+strings.Join(formatters.List(), ", "))
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&a.debug, "debug", false, "trace pipeline stages on stderr")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "include trace details in text output")

	root.AddCommand(newExtractCmd(a), newBatchCmd(a), newWatchCmd(a), newVersionCmd())
	return root
}

// resolve loads the configuration, applies the profile, then lets explicitly
// set flags override both.
func (a *app) resolve(cmd *cobra.Command) error {
	var cfg *config.Config
	if a.configFile != "" {
		loaded, err := config.LoadConfig(a.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		loaded, err := config.LoadConfigOrDefault("")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Error loading config file: %v\n", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Using default configuration\n")
		}
		cfg = loaded
	}

	if a.profile != "" {
		if err := cfg.ApplyProfile(a.profile); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Defaults.Format = a.format
	}
	if flags.Changed("no-color") {
		cfg.Defaults.NoColor = a.noColor
	}
	if flags.Changed("debug") {
		cfg.Defaults.Debug = a.debug
	}
	if _, ok := formatters.Get(cfg.Defaults.Format); !ok {
		return fmt.Errorf("unknown format %q (available: %s)", cfg.Defaults.Format, strings.Join(formatters.List(), ", "))
	}

	level := slog.LevelInfo
	if cfg.Defaults.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	return nil
}

func (a *app) extractor(cmd *cobra.Command) (*core.Extractor, error) {
	return core.NewExtractor(core.ExtractConfig{
		Debug:     a.cfg.Defaults.Debug,
		Config:    a.cfg,
		LogWriter: cmd.ErrOrStderr(),
	})
}

// formatterOptions disables color unless w is a terminal.
func (a *app) formatterOptions(w io.Writer, batch bool) formatters.FormatterOptions {
	noColor := a.cfg.Defaults.NoColor
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		noColor = true
	}
	return formatters.FormatterOptions{NoColor: noColor, Verbose: a.verbose, Batch: batch}
}

// emit writes rendered output to path, or to w when path is empty.
func emit(w io.Writer, path, rendered string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, rendered)
		return err
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(cleanPath, []byte(rendered+"\n"), 0o644); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
