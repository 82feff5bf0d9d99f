package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stanrw/enerwiseuk-sub000/pkg/cost"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
	"github.com/stanrw/enerwiseuk-sub000/pkg/scene"
	"github.com/stanrw/enerwiseuk-sub000/pkg/scene2d"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

var errInvalidProject = errors.New("project has validation errors")

type solveOptions struct {
	withCost  bool
	withScene bool
	withPlan  bool
}

// loadAndValidate loads the project and its insights and runs schema and
// insights validation. Insights without solar potential are reported, not
// returned as an error.
func loadAndValidate(projectPath string) (*project.Project, *insights.BuildingInsights, *validation.Report, error) {
	p, err := project.LoadProject(projectPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading project: %w", err)
	}
	bi, err := insights.Load(p.Insights)
	if err != nil && !errors.Is(err, insights.ErrNoSolarPotential) {
		return nil, nil, nil, fmt.Errorf("loading insights: %w", err)
	}

	report := validation.ValidateSchema(p)
	report.Merge(validation.ValidateInsights(bi))
	return p, bi, report, nil
}

func runValidate(w io.Writer, projectPath string) error {
	_, _, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(w, report)

	if !report.Valid {
		return errInvalidProject
	}
	return nil
}

func runCost(w io.Writer, projectPath string) error {
	p, bi, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return fmt.Errorf("%w; fix before computing cost", errInvalidProject)
	}

	inst := installation.Generate(bi, p.Constraints, p.Panel)
	printCostReport(w, cost.Estimate(inst, p.Tariff))

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		printValidationReport(w, report)
	}
	return nil
}

func runSolve(w io.Writer, projectPath string, opts solveOptions) error {
	p, bi, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errInvalidProject
	}

	inst := installation.Generate(bi, p.Constraints, p.Panel)
	report.Merge(inst.Validation)

	output := map[string]any{
		"project":      p.Name,
		"installation": inst,
		"validation":   report,
	}
	if opts.withCost {
		output["cost"] = cost.Estimate(inst, p.Tariff)
	}
	if opts.withScene {
		output["scene_graph"] = scene.Assemble(bi, inst, time.Time{})
	}
	if opts.withPlan {
		output["plan"] = scene2d.Assemble2D(bi, inst, time.Time{})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// batchResult is one line of batch output.
type batchResult struct {
	Project           string  `json:"project"`
	Panels            int     `json:"panels"`
	Strings           int     `json:"strings"`
	SystemCapacityKw  float64 `json:"system_capacity_kw"`
	YearlyEnergyDcKwh float64 `json:"yearly_energy_dc_kwh"`
	InstallCost       float64 `json:"install_cost"`
	PaybackYears      float64 `json:"payback_years"`
	Error             string  `json:"error,omitempty"`
}

// runBatch solves each project with at most concurrency solves in flight.
// A project that fails to load or validate is reported in its result line
// and does not stop the others. Results are printed in argument order.
func runBatch(ctx context.Context, w io.Writer, projectPaths []string, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]batchResult, len(projectPaths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range projectPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = solveOne(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d projects failed", failed, len(results))
	}
	return nil
}

func solveOne(projectPath string) batchResult {
	res := batchResult{Project: filepath.Base(projectPath)}

	p, bi, report, err := loadAndValidate(projectPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if !report.Valid {
		res.Error = fmt.Sprintf("%s (%s)", errInvalidProject, report.Summary)
		return res
	}
	if p.Name != "" {
		res.Project = p.Name
	}

	inst := installation.Generate(bi, p.Constraints, p.Panel)
	c := cost.Estimate(inst, p.Tariff)

	res.Panels = inst.Summary.TotalPanels
	res.Strings = inst.ElectricalDesign.TotalStrings
	res.SystemCapacityKw = inst.Summary.SystemCapacityKw
	res.YearlyEnergyDcKwh = inst.Summary.YearlyEnergyDcKwh
	res.InstallCost = c.Summary.InstallCost
	res.PaybackYears = c.Summary.PaybackYears
	return res
}
