package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

var validate = newValidator()

// newValidator reports field paths using the YAML names users write in
// solar.yaml rather than Go field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateSchema performs Level 1 (schema) validation on a parsed Project.
// It checks field ranges and cross-field consistency before any computation.
func ValidateSchema(p *project.Project) *Report {
	r := NewReport()

	validateStruct("constraints", p.Constraints, r)
	validateStruct("panel", p.Panel, r)
	validateStruct("tariff", p.Tariff, r)
	validateLocation(p, r)
	validateStringSizes(p.Constraints, r)
	validateAccess(p.Constraints, r)

	return r
}

// ValidateConstraints validates installer constraints on their own, as
// supplied through the HTTP API.
func ValidateConstraints(c project.Constraints) *Report {
	r := NewReport()
	validateStruct("constraints", c, r)
	validateStringSizes(c, r)
	validateAccess(c, r)
	return r
}

// ValidatePanel validates a panel SKU.
func ValidatePanel(p project.PanelSpec) *Report {
	r := NewReport()
	validateStruct("panel", p, r)
	return r
}

// ValidateTariff validates the figures used for the cost projection.
func ValidateTariff(t project.Tariff) *Report {
	r := NewReport()
	validateStruct("tariff", t, r)
	return r
}

func validateStruct(prefix string, s any, r *Report) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		r.AddError(Result{Level: LevelSchema, Message: err.Error(), Path: prefix})
		return
	}
	for _, fe := range fieldErrs {
		path := prefix + "." + fe.Field()
		expected := describeRule(fe.Tag(), fe.Param())
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s must be %s (got %v)", path, expected, fe.Value()),
			Path:        path,
			ActualValue: fe.Value(),
			Expected:    expected,
		})
	}
}

func describeRule(tag, param string) string {
	switch tag {
	case "gt":
		return "> " + param
	case "gte":
		return ">= " + param
	case "lt":
		return "< " + param
	case "lte":
		return "<= " + param
	case "required":
		return "set"
	default:
		return tag + "=" + param
	}
}

func validateLocation(p *project.Project, r *Report) {
	loc := p.Location
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("location (%.5f, %.5f) is not a valid coordinate", loc.Latitude, loc.Longitude),
			Path:        "location",
			ActualValue: loc,
			Expected:    "latitude -90..90, longitude -180..180",
		})
	}
}

func validateStringSizes(c project.Constraints, r *Report) {
	if c.PreferredStringSize > c.MaxPanelsPerString {
		r.AddWarning(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("preferred_string_size %d exceeds max_panels_per_string %d; strings will be capped at %d", c.PreferredStringSize, c.MaxPanelsPerString, c.StringSize()),
			Path:         "constraints.preferred_string_size",
			ActualValue:  c.PreferredStringSize,
			Expected:     fmt.Sprintf("<= %d", c.MaxPanelsPerString),
			ConflictWith: "constraints.max_panels_per_string",
			Suggestions:  []string{"Lower preferred_string_size or raise max_panels_per_string to match the inverter input range"},
		})
	}
	if c.MaxRowLength == 0 {
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: fmt.Sprintf("max_row_length is unset; rows are numbered %d panels wide", project.DefaultPanelsPerRow),
			Path:    "constraints.max_row_length",
		})
	}
}

func validateAccess(c project.Constraints, r *Report) {
	if c.AccessRequirements && c.FireServiceAccess < c.RoofEdgeSetback {
		r.AddWarning(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("fire_service_access %.2fm is narrower than roof_edge_setback %.2fm; the setback is used", c.FireServiceAccess, c.RoofEdgeSetback),
			Path:         "constraints.fire_service_access",
			ActualValue:  c.FireServiceAccess,
			Expected:     fmt.Sprintf(">= %.2f", c.RoofEdgeSetback),
			ConflictWith: "constraints.roof_edge_setback",
		})
	}
}
