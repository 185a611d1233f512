// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/spf13/cobra"

	"legal-extract/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		recursive   bool
		initialScan bool
		debounce    time.Duration
		suffix      string
	)
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Extract files as they appear in a directory",
		Long: `Watch DIR and extract every new or changed bundle or PDF. Each envelope is
written next to its input with the input extension replaced by the output
suffix. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.DebounceDuration()
			}
			if !cmd.Flags().Changed("suffix") {
				suffix = a.cfg.Watch.OutputSuffix
			}

			ex, err := a.extractor(cmd)
			if err != nil {
				return err
			}
			w, err := watch.New(watch.Config{
				Root:         args[0],
				Recursive:    recursive,
				InitialScan:  initialScan,
				Debounce:     debounce,
				OutputSuffix: suffix,
				Supported: func(p string) bool {
					ok, _ := ex.Router().CanProcessFile(p)
					return ok
				},
				Logger: a.logger,
			}, ex)
			if err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "watch subdirectories too")
	cmd.Flags().BoolVar(&initialScan, "initial-scan", false, "extract files already in DIR at start")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "coalesce bursts of events (default from config)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "result file suffix (default from config)")
	return cmd
}
