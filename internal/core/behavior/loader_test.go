package behavior

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/soccerbrain/internal/core/geometry"
)

const yamlCfg = `
role: bishop
cycle_interval: 20ms
log_level: debug
telemetry:
  addr: "127.0.0.1:9090"
frames:
  - robot: {position: {x: 0, y: 0}, heading: 0}
    ball: {x: 2, y: 0}
    target: {position: {x: 0, y: 2}}
  - robot: {position: {x: 0.5, y: 0.5}, heading: 1.2}
    ball: {x: 2, y: 0}
    ball_lost: true
    target: {position: {x: 0, y: 2}}
`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(yamlCfg + "history_file: bishop.history\n"))
	require.NoError(t, err)
	assert.Equal(t, RoleBishop, cfg.Role)
	assert.Equal(t, "bishop.history", cfg.HistoryFile)
	assert.Equal(t, 20*time.Millisecond, cfg.CycleInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, "127.0.0.1:9090", cfg.Telemetry.Addr)
	require.Len(t, cfg.Frames, 2)
	assert.Equal(t, geometry.Pt(2, 0), cfg.Frames[0].Ball)
	assert.Equal(t, geometry.Pt(0, 2), cfg.Frames[0].Target.Position)
	assert.Equal(t, 1.2, cfg.Frames[1].Robot.Heading)
	assert.True(t, cfg.Frames[1].BallLost)
}

func TestLoadJSON(t *testing.T) {
	raw := []byte(`{
  "role": "kick_off",
  "frames": [{"robot": {"position": {"x": -1, "y": 0}}, "ball": {"x": 0, "y": 0}, "target": {"position": {"x": -1, "y": 2}}}]
}`)
	cfg, err := LoadJSON(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, RoleKickOff, cfg.Role)
	assert.Equal(t, DefaultCycleInterval, cfg.CycleInterval)
	assert.Equal(t, geometry.Pt(-1, 2), cfg.Frames[0].Target.Position)
}

func TestLoadJSONCycleInterval(t *testing.T) {
	const frames = `"frames": [{"robot": {"position": {"x": 0, "y": 0}}, "ball": {"x": 2, "y": 0}}]`

	cfg, err := LoadJSON(strings.NewReader(`{"role": "bishop", "cycle_interval": "20ms", ` + frames + `}`))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.CycleInterval)
	assert.Equal(t, RoleBishop, cfg.Role)
	assert.Equal(t, geometry.Pt(2, 0), cfg.Frames[0].Ball)

	cfg, err = LoadJSON(strings.NewReader(`{"role": "bishop", "cycle_interval": 5000000, ` + frames + `}`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, cfg.CycleInterval)

	_, err = LoadJSON(strings.NewReader(`{"role": "bishop", "cycle_interval": "soon", ` + frames + `}`))
	assert.ErrorContains(t, err, "cycle_interval")

	_, err = LoadJSON(strings.NewReader(`{"role": "bishop", "cycle_interval": true, ` + frames + `}`))
	assert.ErrorContains(t, err, "cycle_interval")
}

func TestLoadRequiresRole(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("frames:\n  - ball: {x: 1, y: 0}\n"))
	assert.ErrorIs(t, err, ErrNoRole)

	_, err = LoadJSON(strings.NewReader(`{"frames": [{}]}`))
	assert.ErrorIs(t, err, ErrNoRole)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("role: goalie\nframes: []\n"))
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = LoadYAML(strings.NewReader("role: bishop\ncycle_interval: -5ms\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoFrames)
	assert.Contains(t, err.Error(), "cycle_interval")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCfg), 0o600))
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, RoleBishop, cfg.Role)

	_, err = LoadFile(filepath.Join(dir, "scenario.toml"))
	assert.Error(t, err)
}
