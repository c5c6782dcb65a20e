package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"codeberg.org/mutker/ipmictl/internal/ipmi"
)

const noReadings = "(no readings)"

// Render writes one dashboard frame. Sensors are only queried while the
// chassis reports power on.
func (c *Console) Render(ctx context.Context) {
	w := c.out
	if c.clear {
		fmt.Fprint(w, clearScreen)
	}

	rule := strings.Repeat("═", ruleWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " ipmictl | Host: %s\n", c.ctrl.Host())
	fmt.Fprintf(w, " Last update: %s\n", c.now().Format("15:04:05"))
	fmt.Fprintln(w, rule)

	status := c.ctrl.PowerStatus(ctx)
	state := ipmi.ClassifyPowerState(status)
	fmt.Fprintf(w, "[%s Power]: %s\n", powerMarker(state), strings.ToUpper(status))

	if state == ipmi.PowerStateOn {
		snap := c.ctrl.Sensors(ctx)
		writeSensors(w, snap)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, " 1. Manual fan %  | 2. Automatic fan | 3. Power control")
	fmt.Fprintln(w, " 4. Refresh       | 0. Quit (q)")
	fmt.Fprintln(w, rule)
}

func powerMarker(state ipmi.PowerState) string {
	if state == ipmi.PowerStateOn {
		return "●"
	}
	return "○"
}

func writeSensors(w io.Writer, snap ipmi.SensorSnapshot) {
	fmt.Fprintf(w, "[Power draw]: %s\n", snap.PowerWatts)
	fmt.Fprintf(w, "[Inlet temp]: %s\n", snap.InletTemp)

	fmt.Fprintln(w, "\n[CPU temps]:")
	writeReadings(w, snap.CPUTemps)

	fmt.Fprintln(w, "\n[Fans]:")
	writeReadings(w, snap.Fans)
}

func writeReadings(w io.Writer, readings []ipmi.Reading) {
	if len(readings) == 0 {
		fmt.Fprintf(w, "   %s\n", noReadings)
		return
	}
	for _, r := range readings {
		fmt.Fprintf(w, "   └─ %s\n", r)
	}
}
