// Package physics holds the reference constants used to convert measured
// stopping voltages into frequency/energy observations and to grade the
// fitted estimates against accepted values.
package physics

// Constants is an immutable set of reference values. Consumers receive a
// Constants value at construction instead of reaching for globals, so tests
// can substitute exact values where needed.
type Constants struct {
	// PlanckReference is the accepted value of Planck's constant in J·s.
	PlanckReference float64
	// SpeedOfLight is c in m/s.
	SpeedOfLight float64
	// RefractiveIndexAir is the refractive index of air at lab conditions.
	RefractiveIndexAir float64
	// ElectronCharge is the signed charge of the electron in C. It is
	// negative; sign-sensitive consumers must not take its absolute value
	// unless they mean to.
	ElectronCharge float64
	// WorkFunctionMinEV and WorkFunctionMaxEV bound the accepted work
	// function of the photodiode cathode material, in eV.
	WorkFunctionMinEV float64
	WorkFunctionMaxEV float64
}

// Default returns the constants used by the lab.
func Default() Constants {
	return Constants{
		PlanckReference:    6.62607015e-34,
		SpeedOfLight:       299792458,
		RefractiveIndexAir: 1.000293,
		ElectronCharge:     -1.602176634e-19,
		WorkFunctionMinEV:  1.2,
		WorkFunctionMaxEV:  1.9,
	}
}
