// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reia-project/reia-console/internal/service"
)

func newOverviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Load every collection and print its size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.catalog()
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}

			dashboard := service.NewDashboard(c, client)
			failed := dashboard.LoadAll(cmd.Context())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RESOURCE\tRECORDS\tSTATUS")
			for _, view := range dashboard.Views() {
				snap := view.Snapshot()
				status := "ok"
				if snap.Err != nil {
					status = snap.Err.Error()
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", view.Spec().Name, len(snap.Items), status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d collections failed to load", failed, len(dashboard.Views()))
			}
			return nil
		},
	}
}
