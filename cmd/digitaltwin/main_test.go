package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/digitaltwin/v1/config"
)

func TestOptions_GraphIsComplete(t *testing.T) {
	cfg := config.Default()

	err := fx.ValidateApp(options(cfg)...)
	require.NoError(t, err)
}
