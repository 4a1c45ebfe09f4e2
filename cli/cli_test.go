package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"solar-system-scene/config"
	"solar-system-scene/motion"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "solarsystem", cmd.Use)
	assert.Contains(t, cmd.Long, "skybox")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"view", "serve", "snapshot"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("assets"))
}

func TestSnapshotCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	snapCmd, _, err := cmd.Find([]string{"snapshot"})
	require.NoError(t, err)

	assert.Equal(t, "yaml", snapCmd.Flags().Lookup("format").DefValue)
	assert.Equal(t, "1", snapCmd.Flags().Lookup("frames").DefValue)
	assert.Equal(t, "0", snapCmd.Flags().Lookup("t").DefValue)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	addrFlag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addrFlag)
	assert.Equal(t, "", addrFlag.DefValue)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSnapshot_YAML(t *testing.T) {
	out, err := execute(t, "snapshot", "--t", "1000", "--frames", "4")
	require.NoError(t, err)

	var snap motion.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, uint64(4), snap.Frame)
	assert.Equal(t, 1000.0, snap.Time)

	earth, ok := snap.Body("earth")
	require.True(t, ok)
	assert.InDelta(t, 70*math.Cos(1), earth.Position.X(), 1e-9)
	assert.InDelta(t, 70*math.Sin(1), earth.Position.Z(), 1e-9)
	assert.InDelta(t, 4*0.005, earth.Rotation, 1e-12)
}

func TestSnapshot_JSON(t *testing.T) {
	out, err := execute(t, "snapshot", "--t", "500", "--format", "json")
	require.NoError(t, err)

	var snap motion.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, uint64(1), snap.Frame)
	assert.Len(t, snap.Bodies, 9)
	sun, _ := snap.Body("sun")
	assert.Equal(t, [3]float64{0, 0, 0}, [3]float64(sun.Position))
}

func TestSnapshot_NoFrames(t *testing.T) {
	out, err := execute(t, "snapshot", "--t", "1000", "--frames", "0", "--format", "json")
	require.NoError(t, err)

	var snap motion.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	mercury, _ := snap.Body("mercury")
	assert.InDelta(t, 50*math.Cos(2), mercury.Position.X(), 1e-9)
	assert.Zero(t, mercury.Rotation)
}

func TestSnapshot_Errors(t *testing.T) {
	_, err := execute(t, "snapshot", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")

	_, err = execute(t, "snapshot", "--frames", "-1")
	assert.ErrorContains(t, err, "invalid frame count")

	_, err = execute(t, "snapshot", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSnapshot_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("motion:\n  speed_multiplier: 0.002\n"), 0o644))

	out, err := execute(t, "--config", path, "snapshot", "--t", "500", "--format", "json")
	require.NoError(t, err)

	var snap motion.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	earth, _ := snap.Body("earth")
	assert.InDelta(t, 70*math.Cos(1), earth.Position.X(), 1e-9)
}

func TestLoadConfig_AssetsOverride(t *testing.T) {
	opts := &RootOptions{Assets: "/srv/assets"}
	cfg, err := opts.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", cfg.Assets)
	assert.Equal(t, config.Default().Bodies, cfg.Bodies)
}
