// Package fit estimates Planck's constant and the photodiode work function
// from an energy table via ordinary least squares.
package fit

import (
	"errors"
	"math"

	"github.com/photolab/photolab/pkg/energy"
	"github.com/photolab/photolab/pkg/physics"
)

// ErrDegenerateFit is returned when fewer than two distinct frequencies are
// available, leaving the slope undefined.
var ErrDegenerateFit = errors.New("need at least two distinct frequencies to fit")

// Result is the fitted energy-vs-frequency line and its derived physical
// quantities.
type Result struct {
	// Slope and Intercept describe E = Slope*nu + Intercept.
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`

	// Predicted holds the fitted energy for each input row, in input
	// order, for residual and plotting consumers.
	Predicted []float64 `json:"predicted"`

	// PlanckEstimate is the slope, in J·s.
	PlanckEstimate float64 `json:"planckEstimate"`
	// WorkFunction is Intercept divided by the signed electron charge.
	// The electron charge is negative, so a negative intercept yields a
	// positive work function; the sign relationship is preserved exactly.
	WorkFunction float64 `json:"workFunction"`
	// PercentError compares PlanckEstimate against the accepted value.
	PercentError float64 `json:"percentError"`
}

// Estimator performs the least-squares fit against a fixed set of
// reference constants.
type Estimator struct {
	consts physics.Constants
}

// NewEstimator returns an estimator using the given constants.
func NewEstimator(consts physics.Constants) *Estimator {
	return &Estimator{consts: consts}
}

// Fit regresses kinetic energy on frequency over the given rows. The result
// does not depend on row order.
func (e *Estimator) Fit(rows []energy.Row) (*Result, error) {
	if len(rows) < 2 {
		return nil, ErrDegenerateFit
	}

	n := float64(len(rows))
	var sumX, sumY float64
	for _, r := range rows {
		sumX += r.FrequencyHz
		sumY += r.KineticEnergyJ
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for _, r := range rows {
		dx := r.FrequencyHz - meanX
		sxx += dx * dx
		sxy += dx * (r.KineticEnergyJ - meanY)
	}
	if sxx == 0 {
		return nil, ErrDegenerateFit
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	predicted := make([]float64, len(rows))
	for i, r := range rows {
		predicted[i] = slope*r.FrequencyHz + intercept
	}

	ref := e.consts.PlanckReference
	return &Result{
		Slope:          slope,
		Intercept:      intercept,
		Predicted:      predicted,
		PlanckEstimate: slope,
		WorkFunction:   intercept / e.consts.ElectronCharge,
		PercentError:   math.Abs(slope-ref) / ref * 100,
	}, nil
}
