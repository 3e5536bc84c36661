package driver_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiyutuci/inibp/config"
	"github.com/chiyutuci/inibp/driver"
	"github.com/chiyutuci/inibp/family"
)

// TestConfigFamilyDriverChain exercises the full cmd/inibp wiring
// (config.Load -> family.New -> config.Reduce -> driver.Run) against a
// bundled fixture, the way cmd/inibp/main.go's run() does.
func TestConfigFamilyDriverChain(t *testing.T) {
	doc, err := config.Load("testdata/bubble.yaml")
	require.NoError(t, err)

	spec, err := doc.Family()
	require.NoError(t, err)

	fam, err := family.New(spec)
	require.NoError(t, err)

	rs, err := doc.Reduce(fam.NumPropagators())
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, driver.Run(fam, rs, driver.Options{OutDir: outDir}))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
