package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitmcp/server/internal/config"
	"gitmcp/server/internal/jsonrpc"
)

func TestNewHandlerListsGitHubTools(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	h, err := newHandler(cfg, zap.NewNop())
	require.NoError(t, err)

	res, rpcErr := h.ProcessRequest(context.Background(), &jsonrpc.Request{JSONRPC: "2.0", ID: int64(1), Method: "tools/list"})
	require.Nil(t, rpcErr)
	require.NotNil(t, res)
}

func TestRootCommandRejectsBadTransport(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--transport", "carrier-pigeon"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transport")
}
