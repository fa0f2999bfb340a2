package ui

import (
	"fmt"
	"strings"

	"pixelciv/internal/sims/pixelciv"
)

// FormatStats renders the per-faction population readout shown on the HUD and
// logged by the headless daemon.
func FormatStats(stats pixelciv.Stats) string {
	var b strings.Builder
	for g := pixelciv.GroupRed; g <= pixelciv.GroupBlue; g++ {
		s := stats[g]
		fmt.Fprintf(&b, "%-7s Alive(%d) Sick(%d) AvgAge(%d) AvgStr(%d)\n",
			g.String()+":", s.Total, s.Diseased, s.AvgAge(), s.AvgStrength())
	}
	return b.String()
}
