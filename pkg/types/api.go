// Package types holds the JSON shapes shared between the daemon and its
// client.
package types

import (
	"github.com/photolab/photolab/pkg/energy"
	"github.com/photolab/photolab/pkg/fit"
	"github.com/photolab/photolab/pkg/sweep"
)

// EntrySummary is one datalog row as listed by the daemon. The index is
// positional and shifts when earlier entries are removed.
type EntrySummary struct {
	Index            int     `json:"index"`
	Kind             string  `json:"kind"`
	WavelengthNM     float64 `json:"wavelengthNm"`
	StoppingVoltageV float64 `json:"stoppingVoltageV"`
}

// EntryDetail is a single entry with its raw sweep samples.
type EntryDetail struct {
	EntrySummary
	Samples []sweep.Sample `json:"samples"`
}

// AddEntryRequest creates or replaces an entry. Samples must form a
// complete sweep; the daemon rejects requests whose photocurrent never
// reaches zero.
type AddEntryRequest struct {
	Kind         string         `json:"kind"`
	WavelengthNM float64        `json:"wavelengthNm"`
	Samples      []sweep.Sample `json:"samples"`
}

// ResultsResponse carries the energy table and the fitted constants.
type ResultsResponse struct {
	Rows []energy.Row `json:"rows"`
	Fit  fit.Result   `json:"fit"`
}
