package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsharvest/internal/fetch"
	"github.com/jonesrussell/newsharvest/internal/logger"
	"github.com/jonesrussell/newsharvest/internal/sources"
	"github.com/jonesrussell/newsharvest/internal/sources/registry"
)

func TestRegistryNames(t *testing.T) {
	t.Parallel()

	client, err := fetch.New(fetch.Config{}, logger.NewNoOp())
	require.NoError(t, err)

	reg, err := registry.New(client, logger.NewNoOp())
	require.NoError(t, err)

	require.Equal(t, []string{
		"moneycontrol-en",
		"moneycontrol-gujarati",
		"moneycontrol-hindi",
		"theedge-en",
		"theedge-zh",
	}, reg.Names())
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	client, err := fetch.New(fetch.Config{}, logger.NewNoOp())
	require.NoError(t, err)

	reg, err := registry.New(client, logger.NewNoOp())
	require.NoError(t, err)

	src, err := reg.Get("theedge-zh")
	require.NoError(t, err)
	require.Equal(t, sources.ModeIndexOffset, src.Pagination())

	_, err = reg.Get("nosuchsite")
	require.Error(t, err)
}
