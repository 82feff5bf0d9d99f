package main

import (
	"fmt"
	"io"

	"github.com/stanrw/enerwiseuk-sub000/pkg/cost"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Fprintf(w, "    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", wr.Level, wr.Message)
			if wr.Path != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", wr.Path, wr.ActualValue)
			}
			if wr.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", wr.Expected)
			}
			for _, s := range wr.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printCostReport(w io.Writer, r *cost.Report) {
	if r.Summary.SystemKwp == 0 {
		fmt.Fprintln(w, "No panels placed; nothing to cost.")
		return
	}

	fmt.Fprintln(w, "Cost Estimate")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	printBreakdownTable(w, r.Estimate)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "  System size:            %.2f kWp\n", r.Summary.SystemKwp)
	fmt.Fprintf(w, "  Install cost:           £%s\n", formatMoney(r.Summary.InstallCost))
	fmt.Fprintf(w, "  Annual generation:      %.0f kWh\n", r.Summary.AnnualGenerationKwh)
	fmt.Fprintf(w, "  Annual savings:         £%s\n", formatMoney(r.Summary.AnnualSavings))
	if r.Summary.AnnualLoanPayment > 0 {
		fmt.Fprintf(w, "  Annual loan payment:    £%s\n", formatMoney(r.Summary.AnnualLoanPayment))
	}
	if r.Summary.PaybackYears > 0 {
		fmt.Fprintf(w, "  Simple payback:         %.1f years\n", r.Summary.PaybackYears)
	} else {
		fmt.Fprintln(w, "  Simple payback:         never")
	}
	fmt.Fprintf(w, "  %d-year savings:        £%s\n", cost.ProjectionYears, formatMoney(r.Summary.LifetimeSavings))
	fmt.Fprintf(w, "  Carbon offset:          %.0f kg CO2/year\n", r.Summary.CarbonOffsetKgYear)
}

func printBreakdownTable(w io.Writer, b cost.Breakdown) {
	fmt.Fprintf(w, "%-18s %14s %8s\n", "Category", "Cost", "Share")
	fmt.Fprintf(w, "%-18s %14s %8s\n", "------------------", "--------------", "--------")

	rows := []struct {
		label string
		val   float64
	}{
		{"Panels", b.Panels},
		{"Inverter", b.Inverter},
		{"Mounting", b.Mounting},
		{"Electrical", b.Electrical},
		{"Labour", b.Labour},
		{"Scaffolding", b.Scaffolding},
		{"TOTAL", b.Total},
	}

	for _, row := range rows {
		share := 0.0
		if b.Total > 0 {
			share = row.val / b.Total * 100
		}
		fmt.Fprintf(w, "%-18s %14s %7.1f%%\n", row.label, formatMoney(row.val), share)
	}
}

func formatMoney(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 10_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}
