// Public domain.

package script_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lulin-kinder/trigger/internal/script"
	"github.com/lulin-kinder/trigger/internal/target"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "SN2024ggi", script.SanitizeName("SN 2024ggi"))
	assert.Equal(t, "AT2024abc", script.SanitizeName("AT2024abc"))
	assert.Equal(t, "ZTF-24xyz", script.SanitizeName("ZTF-24xyz!"))
	assert.Equal(t, "M31", script.SanitizeName("M31 (Andromeda)"))
}

func TestCompileAuto(t *testing.T) {
	c := script.Compiler{Telescope: target.SLT}
	block, err := c.Compile(target.Target{
		Name: "M31", RA: "10.684708", Dec: "41.269167",
		Mag: "3.4", AutoExposure: true,
	})
	require.NoError(t, err)

	// magnitude below the table floor compiles the brightest plan
	assert.Contains(t, block, ";===SLT===\n")
	assert.Contains(t, block, "#BINNING 1, 1, 1, 1, 1\n")
	assert.Contains(t, block,
		"#FILTER up_Astrodon_2018, gp_Astrodon_2018, rp_Astrodon_2018, ip_Astrodon_2018, zp_Astrodon_2018\n")
	assert.Contains(t, block, "#INTERVAL 60, 30, 30, 30, 30\n")
	assert.Contains(t, block, "#COUNT 1, 1, 1, 1, 1\n")
	assert.Contains(t, block, ";# mag: 3.4 mag\n")
	assert.Contains(t, block, "M31\t00:42:44.33\t+41:16:09.00\n")
	assert.Equal(t, 1, strings.Count(block, "#WAITFOR 1"))
	assert.NotContains(t, block, "repeat")
}

func TestCompileManualLOT(t *testing.T) {
	c := script.Compiler{Telescope: target.LOT}
	block, err := c.Compile(target.Target{
		Name: "GRB 250101A", RA: "05:30:00", Dec: "+22:00:36", Mag: "18.3",
		Priority: target.PriorityUrgent, Note: "afterglow, fading fast",
		Observations: []target.Observation{
			{Filter: "gp", ExpTime: 120, Count: 2},
			{Filter: "rp", ExpTime: 300, Count: 6},
		},
		Repeat: 2,
	})
	require.NoError(t, err)

	assert.Contains(t, block, ";GRB250101A: afterglow, fading fast\n")
	assert.Contains(t, block, ";===LOT_Urgent_priority===\n")
	assert.Contains(t, block, "#BINNING 1, 1\n")
	assert.Contains(t, block, "#FILTER gp_Astrodon_2019, rp_Astrodon_2019\n")
	assert.Contains(t, block, "#INTERVAL 120, 300\n")
	assert.Contains(t, block, "#COUNT 2, 6\n")
	assert.Contains(t, block, ";# repeat: 2 (not applied)\n")
	assert.Contains(t, block, "GRB250101A\t05:30:00\t+22:00:36\n")
	assert.Equal(t, 1, strings.Count(block, "#WAITFOR 1"))
}

func TestCompileDiagnostics(t *testing.T) {
	c := script.Compiler{Telescope: target.SLT}

	faint, err := c.Compile(target.Target{
		Name: "SN 2024ggi", RA: "1", Dec: "2", Mag: "23", AutoExposure: true,
	})
	require.NoError(t, err)
	assert.Contains(t, faint, ";# SN2024ggi: too faint to observe\n")
	assert.NotContains(t, faint, "#FILTER")

	invalid, err := c.Compile(target.Target{
		Name: "X", RA: "1", Dec: "2", Mag: "dunno", AutoExposure: true,
	})
	require.NoError(t, err)
	assert.Contains(t, invalid, "invalid magnitude")
	assert.NotContains(t, invalid, "#WAITFOR")

	unknown, err := c.Compile(target.Target{
		Name: "Y", RA: "1", Dec: "2", Mag: "15",
		Observations: []target.Observation{{Filter: "qq", ExpTime: 60, Count: 1}},
	})
	require.NoError(t, err)
	assert.Contains(t, unknown, "unknown filter code")
	assert.NotContains(t, unknown, "#FILTER")
}

func TestCompileQueueOrder(t *testing.T) {
	c := script.Compiler{Telescope: target.SLT}
	ts := []target.Target{
		{Name: "First", RA: "1", Dec: "2", Mag: "15", AutoExposure: true},
		{Name: "Bad", RA: "1", Dec: "2", Mag: "x", AutoExposure: true},
		{Name: "Last", RA: "1", Dec: "2", Mag: "20", AutoExposure: true},
	}
	out, err := c.CompileQueue(ts)
	require.NoError(t, err)

	i1 := strings.Index(out, "First\t")
	i2 := strings.Index(out, ";# Bad:")
	i3 := strings.Index(out, "Last\t")
	require.True(t, i1 >= 0 && i2 >= 0 && i3 >= 0, "all blocks present:\n%s", out)
	assert.Less(t, i1, i2)
	assert.Less(t, i2, i3)
	// one bad record never drops the rest of the queue
	assert.Equal(t, 2, strings.Count(out, "#WAITFOR 1"))
}

func TestCompileMessage(t *testing.T) {
	c := script.Compiler{Telescope: target.SLT}
	msg := c.CompileMessage(target.Target{
		Name: "AT2024abc", RA: "169.592", Dec: "41.269167",
		Mag: "20.5", AutoExposure: true,
	})
	assert.Contains(t, msg, "== SLT ===\n")
	assert.Contains(t, msg, "Object: AT2024abc\n")
	assert.Contains(t, msg, "RA: 169.592\n")
	assert.Contains(t, msg, "Dec: 41.269167\n")
	assert.Contains(t, msg, "Filter: rp\n")
	// each entry names its filter, rp=300sec*6, not a bare time
	assert.Contains(t, msg, "Exposure Time: rp=300sec*6\n")
	assert.NotContains(t, msg, "f=300sec")
	assert.Contains(t, msg, "Mag: 20.5 mag\n")

	top := c.CompileMessage(target.Target{
		Name: "X", RA: "1", Dec: "2", Mag: "15",
		Priority: target.PriorityTop, AutoExposure: true,
	})
	assert.Contains(t, top, "== SLT === Top Priority ===\n")
	assert.Contains(t, top,
		"Exposure Time: up=150sec*2, gp=150sec*1, rp=150sec*1, ip=150sec*1, zp=150sec*1\n")

	faint := c.CompileMessage(target.Target{
		Name: "Dim", RA: "1", Dec: "2", Mag: ">22", AutoExposure: true,
	})
	assert.Equal(t, "Dim: too faint to observe\n\n", faint)
}

func TestMessageQueue(t *testing.T) {
	c := script.Compiler{Telescope: target.LOT}
	out := c.MessageQueue([]target.Target{
		{Name: "A", RA: "1", Dec: "2", Mag: "15",
			Observations: []target.Observation{{Filter: "rp", ExpTime: 60, Count: 1}}},
		{Name: "B", RA: "1", Dec: "2", Mag: "16",
			Observations: []target.Observation{{Filter: "gp", ExpTime: 60, Count: 1}}},
	})
	assert.Less(t, strings.Index(out, "Object: A"), strings.Index(out, "Object: B"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "script_SLT.txt", script.Filename(target.SLT, ""))
	assert.Equal(t, "script_LOT_ToO.txt", script.Filename(target.LOT, "ToO"))
}
