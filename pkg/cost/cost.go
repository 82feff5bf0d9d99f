// Package cost projects the install cost and savings of a designed
// installation with simple linear figures.
package cost

import (
	"math"

	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

// Breakdown itemizes install costs by category.
type Breakdown struct {
	Panels      float64 `json:"panels"`
	Inverter    float64 `json:"inverter"`
	Mounting    float64 `json:"mounting"`
	Electrical  float64 `json:"electrical"`
	Labour      float64 `json:"labour"`
	Scaffolding float64 `json:"scaffolding"`
	Total       float64 `json:"total"`
}

// Year is one year of the savings projection.
type Year struct {
	Year              int     `json:"year"`
	GenerationKwh     float64 `json:"generation_kwh"`
	Savings           float64 `json:"savings"`
	LoanPayment       float64 `json:"loan_payment"`
	CumulativeSavings float64 `json:"cumulative_savings"`
	NetPosition       float64 `json:"net_position"`
}

// Report is the complete cost output.
type Report struct {
	Estimate   Breakdown `json:"estimate"`
	Projection []Year    `json:"projection"`

	Summary struct {
		SystemKwp           float64 `json:"system_kwp"`
		InstallCost         float64 `json:"install_cost"`
		AnnualGenerationKwh float64 `json:"annual_generation_kwh"`
		AnnualSavings       float64 `json:"annual_savings"`
		AnnualLoanPayment   float64 `json:"annual_loan_payment"`
		PaybackYears        float64 `json:"payback_years"`
		LifetimeSavings     float64 `json:"lifetime_savings"`
		CarbonOffsetKgYear  float64 `json:"carbon_offset_kg_per_year"`
	} `json:"summary"`
}

// Estimate prices an installation and projects its savings over
// ProjectionYears. An installation with no panels costs nothing and saves
// nothing.
func Estimate(inst *installation.Installation, t project.Tariff) *Report {
	report := &Report{Projection: []Year{}}
	if inst == nil || inst.Summary.TotalPanels == 0 {
		return report
	}

	kwp := inst.Summary.SystemCapacityKw
	install := kwp * t.InstallCostPerKwp
	scaffolding := float64(inst.Summary.SectionsUsed) * ScaffoldingPerSection
	report.Estimate = makeBreakdown(install, scaffolding)

	generation := inst.Summary.YearlyEnergyDcKwh * DcToAcDerate
	savings := annualSavings(generation, t)
	loan := 0.0
	if t.LoanTermYears > 0 {
		loan = computeAnnualDebtService(report.Estimate.Total, t.LoanInterestRate, t.LoanTermYears)
	}

	report.Projection = projectSavings(report.Estimate.Total, generation, loan, t)

	report.Summary.SystemKwp = kwp
	report.Summary.InstallCost = report.Estimate.Total
	report.Summary.AnnualGenerationKwh = generation
	report.Summary.AnnualSavings = savings
	report.Summary.AnnualLoanPayment = loan
	if savings > 0 {
		report.Summary.PaybackYears = report.Estimate.Total / savings
	}
	if n := len(report.Projection); n > 0 {
		report.Summary.LifetimeSavings = report.Projection[n-1].CumulativeSavings
	}
	report.Summary.CarbonOffsetKgYear = generation * GridCarbonKgPerKwh
	return report
}

// annualSavings values self-consumed generation at the import rate and the
// remainder at the export rate.
func annualSavings(kwh float64, t project.Tariff) float64 {
	self := kwh * t.SelfConsumptionRatio * t.ImportPencePerKwh
	export := kwh * (1 - t.SelfConsumptionRatio) * t.ExportPencePerKwh
	return (self + export) / PencePerPound
}

// projectSavings builds the year-by-year projection. Output falls linearly by
// AnnualDegradation of the year-one figure. When the system is financed the
// upfront cost is zero and loan payments are charged against savings for
// the loan term instead.
func projectSavings(cost, generation, loan float64, t project.Tariff) []Year {
	years := make([]Year, 0, ProjectionYears)
	net := -cost
	if t.LoanTermYears > 0 {
		net = 0
	}
	cumulative := 0.0
	for y := 1; y <= ProjectionYears; y++ {
		kwh := generation * math.Max(0, 1-AnnualDegradation*float64(y-1))
		s := annualSavings(kwh, t)
		payment := 0.0
		if y <= t.LoanTermYears {
			payment = loan
		}
		cumulative += s
		net += s - payment
		years = append(years, Year{
			Year:              y,
			GenerationKwh:     kwh,
			Savings:           s,
			LoanPayment:       payment,
			CumulativeSavings: cumulative,
			NetPosition:       net,
		})
	}
	return years
}

// computeAnnualDebtService uses the standard annuity formula.
// P * r(1+r)^n / ((1+r)^n - 1)
// At 0% interest, returns principal / term.
func computeAnnualDebtService(principal, rate float64, termYears int) float64 {
	if termYears <= 0 {
		return 0
	}
	if rate <= 0 {
		return principal / float64(termYears)
	}
	n := float64(termYears)
	factor := math.Pow(1+rate, n)
	return principal * rate * factor / (factor - 1)
}

func makeBreakdown(install, scaffolding float64) Breakdown {
	b := Breakdown{
		Panels:      install * PanelShare,
		Inverter:    install * InverterShare,
		Mounting:    install * MountingShare,
		Electrical:  install * ElectricalShare,
		Labour:      install * LabourShare,
		Scaffolding: scaffolding,
	}
	b.Total = b.Panels + b.Inverter + b.Mounting + b.Electrical + b.Labour + b.Scaffolding
	return b
}
