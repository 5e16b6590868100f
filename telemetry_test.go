package vehicle_dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDecode(t *testing.T) {
	raw := `{"vehicle_speed":42,"maf":14.7,"accelerator":12.5,"throttle":30,
		"dtc":[{"num":171,"mesg":"System Too Lean"},{"num":"P0300","mesg":"Misfire"}],
		"cruise_on":true,"cruise_speed":55}`

	var s TelemetrySnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, 42.0, s.VehicleSpeed)
	assert.Equal(t, 14.7, s.MAF)
	assert.Equal(t, 12.5, s.Accelerator)
	assert.Equal(t, 30.0, s.Throttle)
	assert.True(t, s.CruiseOn)
	assert.Equal(t, 55.0, s.CruiseSpeed)
	require.Len(t, s.DTC, 2)
	assert.Equal(t, CodeNumber("171"), s.DTC[0].Num)
	assert.Equal(t, CodeNumber("P0300"), s.DTC[1].Num)
	assert.Equal(t, "Misfire", s.DTC[1].Mesg)
}

func TestSnapshotDecodeWithoutDTC(t *testing.T) {
	var s TelemetrySnapshot
	require.NoError(t, json.Unmarshal([]byte(`{"vehicle_speed":1,"maf":14.7}`), &s))
	assert.Empty(t, s.DTC)
}

func TestCodeNumberRejectsObjects(t *testing.T) {
	var n CodeNumber
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &n))
}
