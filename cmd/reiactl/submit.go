// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/service"
)

func newSubmitCmd(opts *options) *cobra.Command {
	var (
		fields []string
		files  []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "submit <resource>",
		Short: "Upload a resource and print the refreshed collection",
		Example: `  reiactl submit exposure --file exposureJSON=exposure.json --file exposureCSV=exposure.csv
  reiactl submit lossconfig --field lossCategory=structural --field aggregateBy=Canton --field lossModelId=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}

			values, err := parseFieldFlags(fields, files)
			if err != nil {
				return err
			}
			return runSubmission(cmd, opts, args[0], values, output)
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "text field as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file field as name=path (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	return cmd
}

type fieldFlag struct {
	name  string
	value model.FieldValue
}

// parseFieldFlags turns name=value and name=path pairs into field values,
// keeping the order they were given in.
func parseFieldFlags(fields, files []string) ([]fieldFlag, error) {
	parsed := make([]fieldFlag, 0, len(fields)+len(files))

	for _, f := range fields {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --field %q, expected name=value", f)
		}
		parsed = append(parsed, fieldFlag{name: name, value: model.TextValue(value)})
	}

	for _, f := range files {
		name, path, ok := strings.Cut(f, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --file %q, expected name=path", f)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read file for %s: %w", name, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("file for %s is a directory: %s", name, path)
		}
		parsed = append(parsed, fieldFlag{name: name, value: model.FileValue(model.FileFromPath(path))})
	}

	return parsed, nil
}

// runSubmission drives one submission controller for resource and prints the
// collection it refreshed.
func runSubmission(cmd *cobra.Command, opts *options, resource string, values []fieldFlag, output string) error {
	c, err := opts.catalog()
	if err != nil {
		return err
	}
	spec, err := c.Lookup(resource)
	if err != nil {
		return err
	}
	client, err := opts.client()
	if err != nil {
		return err
	}

	view := service.NewRecordView(spec, client)
	ctrl, err := service.NewSubmissionController(spec, client, view)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	for _, f := range values {
		if err := ctrl.SetField(f.name, f.value); err != nil {
			return err
		}
	}

	if err := ctrl.Submit(cmd.Context()); err != nil {
		return err
	}

	snap := view.Snapshot()
	slog.DebugContext(cmd.Context(), "submission accepted", "resource", spec.Name, "records", len(snap.Items))
	return printRecords(cmd.OutOrStdout(), spec, snap.Items, output)
}
