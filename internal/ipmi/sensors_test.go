package ipmi_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/ipmictl/internal/ipmi"
	"github.com/stretchr/testify/assert"
)

const sdrElistFull = `Inlet Temp       | 04h | ok  |  7.1 | 21 degrees C
Exhaust Temp     | 01h | ok  |  7.1 | 30 degrees C
Temp             | 0Eh | ok  |  3.1 | 45 degrees C
Temp             | 0Fh | ok  |  3.2 | 42 degrees C
Fan1 RPM         | 30h | ok  |  7.1 | 3600 RPM
Fan2 RPM         | 31h | ok  |  7.1 | 3480 RPM
Fan Redundancy   | 75h | ok  |  7.1 | Fully Redundant
Current 1        | 6Ah | ok  | 10.1 | 0.60 Amps
Voltage 1        | 6Ch | ok  | 10.1 | 228 Volts
Pwr Consumption  | 77h | ok  |  7.1 | 140 Watts`

func TestParsePowerReading(t *testing.T) {
	assert.Equal(t, "215 Watts", ipmi.ParsePowerReading("Instantaneous power reading: 215 Watts"))
	assert.Equal(t, "98 Watts", ipmi.ParsePowerReading(`
    Instantaneous power reading:                    98 Watts
    Minimum during sampling period:                 84 Watts
    Maximum during sampling period:                312 Watts`))
	assert.Equal(t, ipmi.Unavailable, ipmi.ParsePowerReading("Power reading not supported"))
	assert.Equal(t, ipmi.Unavailable, ipmi.ParsePowerReading(""))
}

func TestParseSensorTable(t *testing.T) {
	snap := ipmi.NewSensorSnapshot()
	ipmi.ParseSensorTable(sdrElistFull, &snap)

	assert.Equal(t, "21 degrees C", snap.InletTemp)
	assert.Equal(t, []ipmi.Reading{
		{Label: "Exhaust Temp", Value: "30 degrees C"},
		{Label: "Temp", Value: "45 degrees C"},
		{Label: "Temp", Value: "42 degrees C"},
	}, snap.CPUTemps)
	assert.Equal(t, []ipmi.Reading{
		{Label: "Fan1 RPM", Value: "3600 RPM"},
		{Label: "Fan2 RPM", Value: "3480 RPM"},
	}, snap.Fans)
	assert.Equal(t, "Temp: 45 degrees C", snap.CPUTemps[1].String())
	assert.Equal(t, ipmi.Unavailable, snap.PowerWatts, "the table never sets power draw")
}

func TestParseSensorTableLastInletWins(t *testing.T) {
	snap := ipmi.NewSensorSnapshot()
	ipmi.ParseSensorTable("INLET TEMP | 04h | ok | 7.1 | 20 degrees C\ninlet temp | 05h | ok | 7.1 | 23 degrees C", &snap)

	assert.Equal(t, "23 degrees C", snap.InletTemp)
	assert.Empty(t, snap.CPUTemps)
}

func TestParseSensorTableUsesLastField(t *testing.T) {
	snap := ipmi.NewSensorSnapshot()
	ipmi.ParseSensorTable("CPU1 Temp | 0Eh | ok | 3.1 | extra | 51 degrees C\nFan3 | 32h | 3120 RPM", &snap)

	assert.Equal(t, []ipmi.Reading{{Label: "CPU1 Temp", Value: "51 degrees C"}}, snap.CPUTemps)
	assert.Equal(t, []ipmi.Reading{{Label: "Fan3", Value: "3120 RPM"}}, snap.Fans)
}

func TestParseSensorTableInletWithoutTempIsNotCPU(t *testing.T) {
	snap := ipmi.NewSensorSnapshot()
	ipmi.ParseSensorTable("Inlet Sensor Temperature | 04h | ok | 7.1 | 22 degrees C", &snap)

	assert.Empty(t, snap.CPUTemps)
	assert.Equal(t, ipmi.Unavailable, snap.InletTemp)
}

func TestParseSensorTableKeepsOrderPerSequence(t *testing.T) {
	snap := ipmi.NewSensorSnapshot()
	ipmi.ParseSensorTable(`Fan6 RPM | 35h | ok | 7.1 | 3100 RPM
CPU2 Temp | 0Fh | ok | 3.2 | 48 degrees C
Fan5 RPM | 34h | ok | 7.1 | 2900 RPM
CPU1 Temp | 0Eh | ok | 3.1 | 50 degrees C`, &snap)

	assert.Equal(t, []ipmi.Reading{
		{Label: "CPU2 Temp", Value: "48 degrees C"},
		{Label: "CPU1 Temp", Value: "50 degrees C"},
	}, snap.CPUTemps)
	assert.Equal(t, []ipmi.Reading{
		{Label: "Fan6 RPM", Value: "3100 RPM"},
		{Label: "Fan5 RPM", Value: "2900 RPM"},
	}, snap.Fans)
}

func TestParseSensorTableMalformed(t *testing.T) {
	for _, text := range []string{"", "\n\n", "no delimiters here\nstill none", "Inlet Temp 21 degrees C"} {
		snap := ipmi.NewSensorSnapshot()
		ipmi.ParseSensorTable(text, &snap)

		assert.Equal(t, ipmi.Unavailable, snap.InletTemp, text)
		assert.Empty(t, snap.CPUTemps, text)
		assert.Empty(t, snap.Fans, text)
	}
}

func TestSensors(t *testing.T) {
	runner := newFakeRunner().
		on("dcmi power reading", "Instantaneous power reading: 215 Watts").
		on("sdr elist full", sdrElistFull)
	client := newTestClient(t, runner)

	snap := client.Sensors(context.Background())

	assert.Equal(t, "215 Watts", snap.PowerWatts)
	assert.Equal(t, "21 degrees C", snap.InletTemp)
	assert.Len(t, snap.CPUTemps, 3)
	assert.Len(t, snap.Fans, 2)
	assert.Empty(t, snap.Missing())
	assert.Equal(t, []string{"dcmi power reading", "sdr elist full"}, runner.commands())
}

func TestSensorsDegradePerField(t *testing.T) {
	t.Run("power reading fails", func(t *testing.T) {
		runner := newFakeRunner().on("sdr elist full", sdrElistFull)
		snap := newTestClient(t, runner).Sensors(context.Background())

		assert.Equal(t, ipmi.Unavailable, snap.PowerWatts)
		assert.Equal(t, "21 degrees C", snap.InletTemp)
		assert.Equal(t, []string{"power_watts"}, snap.Missing())
	})

	t.Run("sensor listing fails", func(t *testing.T) {
		runner := newFakeRunner().on("dcmi power reading", "Instantaneous power reading: 98 Watts")
		snap := newTestClient(t, runner).Sensors(context.Background())

		assert.Equal(t, "98 Watts", snap.PowerWatts)
		assert.Equal(t, ipmi.Unavailable, snap.InletTemp)
		assert.NotNil(t, snap.CPUTemps)
		assert.Empty(t, snap.CPUTemps)
		assert.Empty(t, snap.Fans)
	})

	t.Run("everything fails", func(t *testing.T) {
		snap := newTestClient(t, newFakeRunner()).Sensors(context.Background())

		assert.Equal(t, ipmi.NewSensorSnapshot(), snap)
		assert.Equal(t, []string{"power_watts", "inlet_temp", "cpu_temps", "fans"}, snap.Missing())
	})
}
