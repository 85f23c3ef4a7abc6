// Public domain.

// Package filters maps short photometric band codes to the calibration
// filter identifiers installed at each telescope.
//
// The same code resolves differently per telescope because the physical
// filter sets belong to different installation epochs.
package filters

import (
	"errors"
	"fmt"

	"github.com/lulin-kinder/trigger/internal/target"
)

// Codes lists the known short filter codes, in the column order observers
// read scripts in.
var Codes = []string{"up", "gp", "rp", "ip", "zp"}

// ErrUnknownCode means a filter code outside the known set. Unknown codes
// are a hard resolution error: an empty identifier in a #FILTER directive
// would point the telescope at no filter at all.
var ErrUnknownCode = errors.New("unknown filter code")

var slt = map[string]string{
	"up": "up_Astrodon_2018",
	"gp": "gp_Astrodon_2018",
	"rp": "rp_Astrodon_2018",
	"ip": "ip_Astrodon_2018",
	"zp": "zp_Astrodon_2018",
}

// The LOT u band predates the 2019 refit.
var lot = map[string]string{
	"up": "up_Astrodon_2017",
	"gp": "gp_Astrodon_2019",
	"rp": "rp_Astrodon_2019",
	"ip": "ip_Astrodon_2019",
	"zp": "zp_Astrodon_2019",
}

// Resolve returns the epoch-tagged calibration identifier for a short
// filter code at the given telescope.
func Resolve(code string, tel target.Telescope) (string, error) {
	m := slt
	if tel == target.LOT {
		m = lot
	}
	id, ok := m[code]
	if !ok {
		return "", fmt.Errorf("%w: %q on %s", ErrUnknownCode, code, tel)
	}
	return id, nil
}
