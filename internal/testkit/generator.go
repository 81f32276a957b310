package testkit

import (
	"fmt"
	"math/rand"

	"shopstat/domain/stats"
)

// GeneratorConfig configures the synthetic shopping observation generator
type GeneratorConfig struct {
	PerGroup    int       // observations per comparison group
	Labels      [2]string // group labels, e.g. M/F or WEB/MOBILE
	BaseMean    float64   // group A mean for numeric observations
	BaseStdDev  float64
	GroupBShift float64 // additive effect on group B's mean; 0 = no effect
	NoiseLabels int     // extra observations carrying an unmatched label
	Seed        int64
}

// DefaultConfig returns a config with a clear group effect, sized so tests
// stay fast but the effect is comfortably detectable.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		PerGroup:    200,
		Labels:      [2]string{"M", "F"},
		BaseMean:    150,
		BaseStdDev:  40,
		GroupBShift: 25,
		Seed:        42,
	}
}

// Generator produces deterministic synthetic observations shaped like the
// warehouse rows the pipeline fetches.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a seeded generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// NumericObservations generates per-entity numeric observations with
// group B shifted by GroupBShift. Noise rows carry the label "UNKNOWN".
func (g *Generator) NumericObservations() []stats.Observation {
	var obs []stats.Observation
	for i := 0; i < g.config.PerGroup; i++ {
		obs = append(obs, stats.Observation{
			EntityID:   fmt.Sprintf("booking_a_%04d", i),
			Numeric:    g.config.BaseMean + g.rng.NormFloat64()*g.config.BaseStdDev,
			GroupLabel: g.config.Labels[0],
		})
		obs = append(obs, stats.Observation{
			EntityID:   fmt.Sprintf("booking_b_%04d", i),
			Numeric:    g.config.BaseMean + g.config.GroupBShift + g.rng.NormFloat64()*g.config.BaseStdDev,
			GroupLabel: g.config.Labels[1],
		})
	}
	for i := 0; i < g.config.NoiseLabels; i++ {
		obs = append(obs, stats.Observation{
			EntityID:   fmt.Sprintf("booking_x_%04d", i),
			Numeric:    g.config.BaseMean,
			GroupLabel: "UNKNOWN",
		})
	}
	return obs
}

var paymentMethods = []string{"Credit Card", "Debit Card", "E-Wallet", "Bank Transfer"}

// CategoricalObservations generates per-customer payment method
// observations. GroupBShift > 0 skews group B toward the later methods, so
// a nonzero shift produces a real association for the chi-square test.
func (g *Generator) CategoricalObservations() []stats.Observation {
	var obs []stats.Observation
	for i := 0; i < g.config.PerGroup; i++ {
		obs = append(obs, stats.Observation{
			EntityID:   fmt.Sprintf("customer_a_%04d", i),
			Category:   g.pickMethod(0),
			GroupLabel: g.config.Labels[0],
		})
		obs = append(obs, stats.Observation{
			EntityID:   fmt.Sprintf("customer_b_%04d", i),
			Category:   g.pickMethod(g.config.GroupBShift / 100),
			GroupLabel: g.config.Labels[1],
		})
	}
	return obs
}

// pickMethod samples a payment method; skew in [0, 1) moves probability
// mass toward the tail of the method list.
func (g *Generator) pickMethod(skew float64) string {
	r := g.rng.Float64()
	r += skew
	if r > 1 {
		r -= 1
	}
	idx := int(r * float64(len(paymentMethods)))
	if idx >= len(paymentMethods) {
		idx = len(paymentMethods) - 1
	}
	return paymentMethods[idx]
}
