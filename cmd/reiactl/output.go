// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/gjson"

	"github.com/reia-project/reia-console/internal/domain/model"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validOutput(format string) error {
	if format != outputTable && format != outputJSON {
		return fmt.Errorf("unknown output format %q (expected %s or %s)", format, outputTable, outputJSON)
	}
	return nil
}

// printRecords writes records as a table of the resource's columns or as an
// indented JSON array.
func printRecords(w io.Writer, spec model.ResourceSpec, records []model.Record, format string) error {
	if format == outputJSON {
		if records == nil {
			records = []model.Record{}
		}
		return printJSON(w, records)
	}

	columns := spec.Columns
	if len(columns) == 0 {
		columns = []string{spec.KeyField}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, r := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cell(gjson.GetBytes(r.Raw, col))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// cell renders one value; lists are joined, missing values show as "-".
func cell(v gjson.Result) string {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return "-"
	case v.IsArray():
		parts := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ",")
	default:
		return v.String()
	}
}
