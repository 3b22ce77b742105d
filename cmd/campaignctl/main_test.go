package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/campaign-keeper/game/config"
	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/service"
	"github.com/wricardo/campaign-keeper/game/session"
)

// run executes campaignctl against the store in dir and returns its output
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"campaignctl", "--data-dir", dir}, args...))
	return out.String(), err
}

// seed commits a settlement with one survivor into the file store in dir
func seed(t *testing.T, dir string) *engine.Campaign {
	t.Helper()
	settings, err := config.LoadFrom(map[string]string{"CAMPAIGN_DATA_DIR": dir})
	require.NoError(t, err)
	store, err := session.Open(settings, nil)
	require.NoError(t, err)
	defer store.Close()

	svc := service.NewCampaignService(store)
	res := svc.CreateSettlement(context.Background(), service.SettlementRequest{Name: "Lantern Hoard"})
	require.True(t, res.Success, res.Error)
	res = svc.SaveSurvivor(context.Background(), engine.Survivor{Name: "Allister", Gender: engine.GenderMale})
	require.True(t, res.Success, res.Error)

	c, err := svc.GetCampaign(context.Background())
	require.NoError(t, err)
	return c
}

func TestShow(t *testing.T) {
	dir := t.TempDir()
	c := seed(t, dir)

	out, err := run(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Settlements: 1")
	assert.Contains(t, out, "* "+c.Settlements[0].ID+"  Lantern Hoard  year 0, 1 living survivors")
}

func TestShow_EmptyStore(t *testing.T) {
	out, err := run(t, t.TempDir(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Settlements: 0")
}

func TestExportImport(t *testing.T) {
	src := t.TempDir()
	seed(t, src)
	backup := filepath.Join(t.TempDir(), "backup.json")

	out, err := run(t, src, "export", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+backup)

	out, err = run(t, src, "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Lantern Hoard"`)

	dst := t.TempDir()
	out, err = run(t, dst, "import", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Campaign imported.")

	out, err = run(t, dst, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Lantern Hoard")
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "import")
	assert.Error(t, err)

	_, err = run(t, dir, "import", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"settlements": [{"id": "s1", "name": ""}]}`), 0644))
	_, err = run(t, dir, "import", bad)
	require.Error(t, err)
	assert.True(t, engine.IsValidation(err), err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	good := filepath.Join(t.TempDir(), "good.json")
	_, err := run(t, dir, "export", good)
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"settlements": "nope"}`), 0644))

	out, err := run(t, dir, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "VALID   "+good)

	out, err = run(t, dir, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "INVALID "+bad+": BoundsError")
	assert.Contains(t, err.Error(), "1 of 2 backups are invalid")

	_, err = run(t, dir, "validate")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	c := seed(t, dir)

	out, err := run(t, dir, "select", "--tab", "survivors", "--survivor", c.Survivors[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Selection updated.")

	out, err = run(t, dir, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Tab: survivors")

	_, err = run(t, dir, "select", "--hunt", "missing")
	assert.ErrorIs(t, err, engine.ErrEntityNotFound)

	_, err = run(t, dir, "select")
	assert.Error(t, err)
}

func TestMonsters(t *testing.T) {
	out, err := run(t, t.TempDir(), "monsters")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Flower Knight"), lines[0])
	assert.Contains(t, out, "Butcher")
	assert.Contains(t, out, "levels 1,2,3")
}

func TestInvalidStore(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), []string{"campaignctl", "--data-dir", t.TempDir(), "--store", "sqlite", "show"})
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}
