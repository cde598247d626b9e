// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/constants"
)

func newCalculateCmd(opts *options) *cobra.Command {
	var (
		shakemap string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Trigger a loss calculation run and list the calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validOutput(output); err != nil {
				return err
			}
			values := []fieldFlag{{name: "shakemap", value: model.TextValue(shakemap)}}
			return runSubmission(cmd, opts, constants.ResourceLossCalculation, values, output)
		},
	}

	cmd.Flags().StringVar(&shakemap, "shakemap", constants.DefaultShakemap, "shakemap path on the backend")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	return cmd
}
