// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/service"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		output   string
		watch    bool
		typed    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List the records of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			if watch && interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			if typed && (watch || output != outputJSON) {
				return fmt.Errorf("--typed requires -o json and cannot be combined with --watch")
			}

			c, err := opts.catalog()
			if err != nil {
				return err
			}
			spec, err := c.Lookup(args[0])
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if typed {
				items, err := service.LoadTyped(cmd.Context(), spec, client)
				if err != nil {
					return err
				}
				return printJSON(out, items)
			}

			view := service.NewRecordView(spec, client)

			if !watch {
				if err := view.Load(cmd.Context()); err != nil {
					return err
				}
				return printRecords(out, spec, view.Snapshot().Items, output)
			}

			view.Subscribe(func(res model.CollectionResult[model.Record]) {
				if res.Loading {
					return
				}
				fmt.Fprintf(out, "# %s %s\n", spec.Title, time.Now().Format(time.RFC3339))
				if res.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to load %s: %v\n", spec.Name, res.Err)
					return
				}
				_ = printRecords(out, spec, res.Items, output)
			})

			err = view.Poll(cmd.Context(), interval)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling the collection")
	cmd.Flags().BoolVar(&typed, "typed", false, "decode records into the resource's record type (built-in resources, json output)")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "polling interval with --watch")
	return cmd
}
