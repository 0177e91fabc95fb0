package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/taltos-portal/internal/content"
	"github.com/daniilsolovey/taltos-portal/internal/db"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	} `json:"error"`
}

func newTestServer(t *testing.T, withStore bool) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !withStore {
		return New(logger, content.NewManager(nil, 0, logger))
	}

	ctx := context.Background()
	store, err := db.NewTestSqlite(ctx, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, db.LoadTestData(ctx, store))

	return New(logger, content.NewManager(store, content.DefaultMaxLimit, logger))
}

func call(t *testing.T, h http.Handler, method, params string) rpcResponse {
	t.Helper()

	body := `{"jsonrpc":"2.0","id":1,"method":"` + method + `"`
	if params != "" {
		body += `,"params":` + params
	}
	body += `}`

	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestContentService(t *testing.T) {
	h := newTestServer(t, true)

	t.Run("ReviewsByLang", func(t *testing.T) {
		resp := call(t, h, "content.reviews", `{"lang":"en","limit":2}`)
		require.Nil(t, resp.Error)

		var reviews []map[string]any
		require.NoError(t, json.Unmarshal(resp.Result, &reviews))
		require.Len(t, reviews, 2)
		for _, r := range reviews {
			assert.Equal(t, "en", r["lang"])
			assert.NotEmpty(t, r["id"])
			assert.NotContains(t, r, "_id")
		}
	})

	t.Run("HorsesDefaultLimit", func(t *testing.T) {
		resp := call(t, h, "content.horses", "")
		require.Nil(t, resp.Error)

		var horses []map[string]any
		require.NoError(t, json.Unmarshal(resp.Result, &horses))
		assert.Len(t, horses, 2)
	})

	t.Run("HorsesZeroLimit", func(t *testing.T) {
		resp := call(t, h, "content.horses", `[0]`)
		require.Nil(t, resp.Error)
		assert.JSONEq(t, `[]`, string(resp.Result))
	})

	t.Run("News", func(t *testing.T) {
		resp := call(t, h, "content.news", `{"lang":"hu"}`)
		require.Nil(t, resp.Error)

		var news []map[string]any
		require.NoError(t, json.Unmarshal(resp.Result, &news))
		require.Len(t, news, 1)
		assert.Equal(t, "nyitas", news[0]["slug"])
	})

	t.Run("Collections", func(t *testing.T) {
		resp := call(t, h, "content.collections", "")
		require.Nil(t, resp.Error)

		var names []string
		require.NoError(t, json.Unmarshal(resp.Result, &names))
		assert.Contains(t, names, "horse")
	})

	t.Run("Booking", func(t *testing.T) {
		resp := call(t, h, "content.booking",
			`{"request":{"name":"Anna","email":"a@b.com","date":"2024-06-01","group_size":3,"program":"trail ride"}}`)
		require.Nil(t, resp.Error)

		var result BookingResult
		require.NoError(t, json.Unmarshal(resp.Result, &result))
		assert.True(t, result.OK)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, content.BookingConfirmation, result.Message)
	})

	t.Run("ContactValidation", func(t *testing.T) {
		resp := call(t, h, "content.contact", `{"message":{"name":"Anna","email":"nope"}}`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, 422, resp.Error.Code)
		assert.Equal(t, "must be a valid email address", resp.Error.Data["email"])
		assert.Equal(t, "must be provided", resp.Error.Data["subject"])
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		resp := call(t, h, "content.stables", "")
		require.NotNil(t, resp.Error)
		assert.Equal(t, -32601, resp.Error.Code)
	})
}

func TestContentService_StorageUnavailable(t *testing.T) {
	h := newTestServer(t, false)

	resp := call(t, h, "content.horses", `{"limit":5}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, 503, resp.Error.Code)
	assert.Equal(t, "storage unavailable", resp.Error.Message)
}

func TestNew_LogsCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := New(logger, content.NewManager(nil, 0, logger))

	resp := call(t, h, "content.horses", `{"limit":5}`)
	require.NotNil(t, resp.Error)

	out := buf.String()
	assert.Contains(t, out, "msg=rpc")
	assert.Contains(t, out, "method=taltos-portal.content.")
	assert.Contains(t, out, "storage unavailable")
}
