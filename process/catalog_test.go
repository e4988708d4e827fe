package process_test

import (
	"testing"

	"github.com/katalvlaran/chiplet"
	"github.com/katalvlaran/chiplet/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogLookups covers hits, misses, duplicates and unfinalized records.
func TestCatalogLookups(t *testing.T) {
	t.Parallel()

	var b process.CatalogBuilder
	require.NoError(t, b.AddWaferProcess(newWafer(t, true)))
	require.NoError(t, b.AddLayer(newLayer(t, 0)))
	require.NoError(t, b.AddAssemblyProcess(newAssembly(t)))

	assert.ErrorIs(t, b.AddLayer(newLayer(t, 0.2)), process.ErrDuplicateName)
	assert.ErrorIs(t, b.AddIO(process.NewIO("open")), process.ErrNotFinalized)

	c := b.Build()
	wp, err := c.WaferProcess("wp300")
	require.NoError(t, err)
	assert.True(t, wp.FillGrid())

	_, err = c.Layer("missing")
	assert.ErrorIs(t, err, process.ErrUnknownName)
	assert.ErrorIs(t, err, chiplet.ErrConfiguration)

	_, err = c.IO("ucie")
	assert.ErrorIs(t, err, process.ErrUnknownName)
	assert.Equal(t, []string{"active"}, c.LayerNames())
	assert.Empty(t, c.IOTypes())
}
