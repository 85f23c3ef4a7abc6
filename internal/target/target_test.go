// Public domain.

package target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lulin-kinder/trigger/internal/target"
)

const legacyArray = `[
  {
    "object name": "SN 2024ggi",
    "RA": "11:18:22.087",
    "Dec": "-32:50:15.27",
    "Mag": "14.1",
    "Priority": "Urgent",
    "Exp_By_Mag": "True",
    "Filter": "",
    "Exp_Time": "",
    "Num_of_Frame": "",
    "Repeat": ""
  },
  {
    "object name": "AT2024abc",
    "RA": "169.592",
    "Dec": "41.269167",
    "Mag": ">22",
    "Priority": "",
    "Exp_By_Mag": "False",
    "Filter": "gp, rp, ip",
    "Exp_Time": "300, 300",
    "Num_of_Frame": "2, 2, 2",
    "Repeat": "3"
  }
]`

func TestDecodeLegacyArray(t *testing.T) {
	s, err := target.Decode([]byte(legacyArray))
	require.NoError(t, err)
	assert.Equal(t, target.Version, s.Version)
	assert.Equal(t, target.SLT, s.Settings.Telescope)
	require.Len(t, s.Targets, 2)

	first := s.Targets[0]
	assert.Equal(t, "SN 2024ggi", first.Name)
	assert.Equal(t, target.Mag("14.1"), first.Mag)
	assert.Equal(t, target.PriorityUrgent, first.Priority)
	assert.True(t, first.AutoExposure)
	assert.Empty(t, first.Observations)
	assert.Zero(t, first.Repeat)

	second := s.Targets[1]
	assert.False(t, second.AutoExposure)
	assert.Equal(t, 3, second.Repeat)
	// three filters against two exposure times zips to two entries
	require.Len(t, second.Observations, 2)
	assert.Equal(t, target.Observation{Filter: "gp", ExpTime: 300, Count: 2}, second.Observations[0])
	assert.Equal(t, target.Observation{Filter: "rp", ExpTime: 300, Count: 2}, second.Observations[1])
}

func TestDecodeLegacyObject(t *testing.T) {
	raw := `{
	  "settings": {"IS_LOT": "True"},
	  "targets": [
	    {
	      "object name": "M101",
	      "RA": "14:03:12.6",
	      "Dec": "+54:20:57",
	      "Mag": 7.9,
	      "Exp_By_Mag": "False",
	      "Filter": "rp",
	      "Exp_Time": "bad",
	      "Num_of_Frame": "oops"
	    }
	  ]
	}`
	s, err := target.Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, target.LOT, s.Settings.Telescope)
	require.Len(t, s.Targets, 1)
	got := s.Targets[0]
	assert.Equal(t, target.Mag("7.9"), got.Mag)
	assert.Equal(t, target.PriorityNormal, got.Priority)
	// unparsable legacy numbers fall back to the defaults
	require.Len(t, got.Observations, 1)
	assert.Equal(t, target.DefaultExpTime, got.Observations[0].ExpTime)
	assert.Equal(t, target.DefaultCount, got.Observations[0].Count)
}

func TestDecodeCurrentVersion(t *testing.T) {
	raw := `{
	  "version": 2,
	  "settings": {"telescope": "LOT"},
	  "targets": [
	    {
	      "name": "GRB 250101A",
	      "ra": "05:30:00",
	      "dec": "+22:00:36",
	      "mag": 18.3,
	      "priority": "Top",
	      "auto_exposure": false,
	      "observations": [{"filter": "rp", "exp_time": 300, "count": 6}],
	      "repeat": 0,
	      "program": "ToO",
	      "note": "afterglow"
	    }
	  ]
	}`
	s, err := target.Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, target.LOT, s.Settings.Telescope)
	require.Len(t, s.Targets, 1)
	got := s.Targets[0]
	// numeric magnitudes normalize to the string form
	assert.Equal(t, target.Mag("18.3"), got.Mag)
	assert.Equal(t, "ToO", got.Program)
	assert.Equal(t, target.PriorityTop, got.Priority)
}

func TestDecodeUnknownSchema(t *testing.T) {
	_, err := target.Decode([]byte(`{"whatever": 1}`))
	assert.ErrorIs(t, err, target.ErrUnknownSchema)
}

func TestValidate(t *testing.T) {
	base := target.Target{
		Name: "X", RA: "10:00:00", Dec: "+20:00:00", Mag: "15",
		AutoExposure: true,
	}
	assert.NoError(t, base.Validate(target.SLT))

	urgent := base
	urgent.Priority = target.PriorityUrgent
	assert.ErrorIs(t, urgent.Validate(target.SLT), target.ErrMissingUrgentNote)
	urgent.Note = "follow up tonight"
	assert.NoError(t, urgent.Validate(target.SLT))

	assert.ErrorIs(t, base.Validate(target.LOT), target.ErrAutoOnLOT)

	faint := base
	faint.Mag = "22.5"
	assert.ErrorIs(t, faint.Validate(target.SLT), target.ErrAutoMagRange)
	faint.Mag = ">22"
	assert.ErrorIs(t, faint.Validate(target.SLT), target.ErrAutoMagRange)
	bright := base
	bright.Mag = "11.9"
	assert.ErrorIs(t, bright.Validate(target.SLT), target.ErrAutoMagRange)

	manual := target.Target{Name: "Y", RA: "1", Dec: "2"}
	assert.ErrorIs(t, manual.Validate(target.LOT), target.ErrNoObservations)
	manual.Observations = []target.Observation{{Filter: "rp", ExpTime: 300, Count: 1}}
	assert.NoError(t, manual.Validate(target.LOT))

	nameless := base
	nameless.Name = "  "
	assert.ErrorIs(t, nameless.Validate(target.SLT), target.ErrMissingFields)
}

func TestPriorityDefault(t *testing.T) {
	assert.True(t, target.Priority("").Default())
	assert.True(t, target.PriorityNone.Default())
	assert.True(t, target.PriorityNormal.Default())
	assert.False(t, target.PriorityHigh.Default())
	assert.False(t, target.PriorityTop.Default())
	assert.False(t, target.PriorityUrgent.Default())
}
