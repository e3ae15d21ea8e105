// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartServer(t *testing.T) {
	url, closeFunc, err := startServer("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "pong")
	}))
	require.NoError(t, err)
	defer closeFunc()
	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:"), url)

	resp, err := http.Get(url + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestStartServerInvalidAddr(t *testing.T) {
	_, _, err := startServer("invalid:addr:x", http.NotFoundHandler())
	assert.Error(t, err)
}

func TestStartMetricsServer(t *testing.T) {
	url, closeFunc, err := startMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	defer closeFunc()
	assert.True(t, strings.HasSuffix(url, "/metrics"), url)

	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	// metrics are not initialized in tests, the noop handler answers 404
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
