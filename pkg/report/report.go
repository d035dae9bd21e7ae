// Package report renders the estimation results into the human-readable
// summary written to report.txt and shown at the end of a session.
package report

import (
	"fmt"
	"strings"

	"github.com/photolab/photolab/pkg/datalog"
	"github.com/photolab/photolab/pkg/fit"
	"github.com/photolab/photolab/pkg/physics"
)

// Assembler formats results against the accepted reference values. It does
// no computation of its own.
type Assembler struct {
	consts physics.Constants
}

// NewAssembler returns an assembler using the given constants.
func NewAssembler(consts physics.Constants) *Assembler {
	return &Assembler{consts: consts}
}

// Datalog renders the entry listing for the given experiment name.
func (a *Assembler) Datalog(name string, d *datalog.Datalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--------------- Datalog for %s ---------------\n", name)
	for i, e := range d.Entries() {
		fmt.Fprintf(&b, "%2d. %s\n", i, e)
	}
	return b.String()
}

// Summary renders the full result summary: the datalog listing, the
// accepted vs. estimated work-function range, the accepted vs. estimated
// Planck constant, and the percent error of the estimate.
func (a *Assembler) Summary(name string, d *datalog.Datalog, res *fit.Result) string {
	var b strings.Builder
	b.WriteString(a.Datalog(name, d))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Work function (accepted):  %.2f - %.2f eV\n",
		a.consts.WorkFunctionMinEV, a.consts.WorkFunctionMaxEV)
	fmt.Fprintf(&b, "Work function (estimated): %.4f eV\n", res.WorkFunction)
	fmt.Fprintf(&b, "Planck constant (accepted):  %.8e J*s\n", a.consts.PlanckReference)
	fmt.Fprintf(&b, "Planck constant (estimated): %.8e J*s\n", res.PlanckEstimate)
	fmt.Fprintf(&b, "Percent error: %.2f%%\n", res.PercentError)
	return b.String()
}
