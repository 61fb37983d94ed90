package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown := Setup("salon-api", "")
	require.NoError(t, shutdown(context.Background()))
}
