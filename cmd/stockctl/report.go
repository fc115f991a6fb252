package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	inventoryapp "github.com/circtek/backend/internal/application/inventory"
	"github.com/circtek/backend/internal/domain/inventory"
)

func printPartsReport(out io.Writer, report *inventoryapp.PartsReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tREQUIRED\tON HAND\tSHORTFALL\tSTATUS")
	for _, c := range report.Checks {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", c.SKU, c.Required, c.OnHand, c.Shortfall, c.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d ok, %d short, %d missing\n", report.OK, report.Short, report.Missing)
	return err
}

func printResetReport(out io.Writer, report *inventoryapp.ResetReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tPREVIOUS\tTARGET\tACTION")
	for _, c := range report.Changes {
		if c.Action == inventory.ResetUnchanged {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c.SKU, c.Previous, c.Target, c.Action)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("\n%d created, %d updated, %d unchanged", report.Created, report.Updated, report.Unchanged)
	if report.DryRun {
		summary += " (dry run, nothing written)"
	}
	_, err := fmt.Fprintln(out, summary)
	return err
}
