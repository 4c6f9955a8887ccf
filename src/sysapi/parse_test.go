package sysapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scQcOutput = `[SC] QueryServiceConfig SUCCESS

SERVICE_NAME: WSearch
        TYPE               : 10  WIN32_OWN_PROCESS
        START_TYPE         : 2   AUTO_START (DELAYED)
        ERROR_CONTROL      : 1   NORMAL
        BINARY_PATH_NAME   : C:\WINDOWS\system32\SearchIndexer.exe /Embedding
        DISPLAY_NAME       : Windows Search
`

const scQueryRunning = `
SERVICE_NAME: WSearch
        TYPE               : 10  WIN32_OWN_PROCESS
        STATE              : 4  RUNNING
                                (STOPPABLE, NOT_PAUSABLE, ACCEPTS_PRESHUTDOWN)
`

const scQueryStopped = `
SERVICE_NAME: SysMain
        TYPE               : 20  WIN32_SHARE_PROCESS
        STATE              : 1  STOPPED
`

const powercfgActive = "Power Scheme GUID: 381b4222-f694-41f0-9685-ff5bb260df2e  (Balanced)\n"

const powercfgList = `Existing Power Schemes (* Active)
-----------------------------------
Power Scheme GUID: 381b4222-f694-41f0-9685-ff5bb260df2e  (Balanced) *
Power Scheme GUID: 8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c  (High performance)
Power Scheme GUID: a1841308-3541-4fab-bc81-f71556f20b4a  (Power saver)
`

func TestParseStartType(t *testing.T) {
	st, ok := parseStartType(scQcOutput)
	require.True(t, ok)
	assert.Equal(t, "AUTO_START", st)

	_, ok = parseStartType("garbage output")
	assert.False(t, ok)
}

func TestParseServiceState(t *testing.T) {
	running, ok := parseServiceState(scQueryRunning)
	require.True(t, ok)
	assert.True(t, running)

	running, ok = parseServiceState(scQueryStopped)
	require.True(t, ok)
	assert.False(t, running)

	_, ok = parseServiceState("no state here")
	assert.False(t, ok)
}

func TestParseActiveScheme(t *testing.T) {
	guid, ok := parseActiveScheme(powercfgActive)
	require.True(t, ok)
	assert.Equal(t, "381b4222-f694-41f0-9685-ff5bb260df2e", guid)

	_, ok = parseActiveScheme("powercfg: unknown parameter")
	assert.False(t, ok)
}

func TestParseSchemeList(t *testing.T) {
	schemes := parseSchemeList(powercfgList)
	require.Len(t, schemes, 3)
	assert.Equal(t, "Balanced", schemes[0].Name)
	assert.Equal(t, "8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c", schemes[1].GUID)
	assert.Equal(t, "High performance", schemes[1].Name)
}

func TestNormalizeStartType(t *testing.T) {
	assert.Equal(t, StartAuto, NormalizeStartType("AUTO_START"))
	assert.Equal(t, StartAuto, NormalizeStartType("auto"))
	assert.Equal(t, StartDemand, NormalizeStartType("DEMAND_START"))
	assert.Equal(t, StartDisabled, NormalizeStartType("DISABLED"))
	assert.Equal(t, "boot", NormalizeStartType("BOOT"))
}
