package roof

// defaultSunshine stands in for a missing quantile bucket (moderate sun).
const defaultSunshine = 0.8

// Shading is the fraction of sun lost at each time of day, each in [0,1].
type Shading struct {
	Morning float64 `json:"morning"`
	Noon    float64 `json:"noon"`
	Evening float64 `json:"evening"`
	Annual  float64 `json:"annual"`
}

// Shading derives shade ratios from the face's sunshine quantiles: buckets
// 1, 3 and 5 stand for morning, noon and evening, and the annual figure is
// one minus the mean bucket.
func (s Segment) Shading() Shading {
	q := s.quantiles()
	sum := 0.0
	for _, v := range q {
		sum += v
	}
	return Shading{
		Morning: clamp01(1 - q[1]),
		Noon:    clamp01(1 - q[3]),
		Evening: clamp01(1 - q[5]),
		Annual:  clamp01(1 - sum/float64(len(q))),
	}
}

// quantiles returns at least six buckets, padding with defaultSunshine.
func (s Segment) quantiles() []float64 {
	n := max(len(s.SunshineQuantiles), 6)
	q := make([]float64, n)
	for i := range q {
		if i < len(s.SunshineQuantiles) {
			q[i] = s.SunshineQuantiles[i]
		} else {
			q[i] = defaultSunshine
		}
	}
	return q
}
