package electrical

import (
	"sort"

	"github.com/stanrw/enerwiseuk-sub000/pkg/layout"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

// String is one series string of panels.
type String struct {
	ID       string   `json:"id"`
	PanelIDs []string `json:"panelIds"`
	Voltage  float64  `json:"voltage"` // V
	Current  float64  `json:"current"` // A
	Power    float64  `json:"power"`   // W
}

// Design is the electrical layout of an installation.
type Design struct {
	Strings       []String `json:"strings"`
	TotalStrings  int      `json:"totalStrings"`
	SystemVoltage float64  `json:"systemVoltage"` // V, highest string voltage
	SystemPower   float64  `json:"systemPower"`   // W
}

// GenerateDesign groups assigned panels by string, in the order strings
// first appear, and totals each string as a series circuit of panel.
func GenerateDesign(panels []layout.PlacedPanel, panel project.PanelSpec) Design {
	byString := make(map[string][]layout.PlacedPanel)
	var order []string
	for _, p := range panels {
		if p.StringID == "" {
			continue
		}
		if _, ok := byString[p.StringID]; !ok {
			order = append(order, p.StringID)
		}
		byString[p.StringID] = append(byString[p.StringID], p)
	}

	d := Design{
		Strings:     make([]String, 0, len(order)),
		SystemPower: float64(len(panels)) * panel.Watts,
	}
	for _, id := range order {
		members := byString[id]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].StringPosition < members[j].StringPosition
		})
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		n := float64(len(members))
		s := String{
			ID:       id,
			PanelIDs: ids,
			Voltage:  n * panel.Voltage,
			Current:  panel.Current,
			Power:    n * panel.Watts,
		}
		d.Strings = append(d.Strings, s)
		if s.Voltage > d.SystemVoltage {
			d.SystemVoltage = s.Voltage
		}
	}
	d.TotalStrings = len(d.Strings)
	return d
}
