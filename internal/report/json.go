// SPDX-License-Identifier: MPL-2.0

package report

import (
	"encoding/json"
	"io"
)

// export is the JSON shape of a run: the raw results plus the derived
// verdict and tally, so consumers don't recompute the aggregation policy.
type export struct {
	*VerificationRun
	Verdict Verdict `json:"verdict"`
	Tally   Tally   `json:"tally"`
}

// WriteJSON writes the run as indented JSON.
func WriteJSON(w io.Writer, run *VerificationRun) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export{
		VerificationRun: run,
		Verdict:         run.Verdict(),
		Tally:           run.Count(),
	})
}
