package mcpserve

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/play"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOps struct {
	app  play.AppOptions
	list play.ListOptions
	err  error
}

func (f *fakeOps) App(_ context.Context, opts play.AppOptions) (api.Record, error) {
	f.app = opts
	if f.err != nil {
		return nil, f.err
	}
	return api.Record{"appId": opts.AppID, "title": "Maps"}, nil
}

func (f *fakeOps) List(_ context.Context, opts play.ListOptions) (play.ListResult, error) {
	f.list = opts
	if f.err != nil {
		return play.ListResult{}, f.err
	}
	apps := []api.Record{{"appId": "com.a"}}
	if opts.NotMerge {
		return play.ListResult{Groups: []api.CollectionGroup{{Title: "Top", List: apps}}}, nil
	}
	return play.ListResult{Apps: apps}, nil
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandleApp(t *testing.T) {
	ops := &fakeOps{}
	s := New(ops, nil)

	res, err := s.handleApp(context.Background(), call(map[string]any{"app_id": "com.maps", "country": "de"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, play.AppOptions{AppID: "com.maps", Lang: "en", Country: "de"}, ops.app)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rec))
	assert.Equal(t, "Maps", rec["title"])
}

func TestHandleApp_MissingID(t *testing.T) {
	res, err := New(&fakeOps{}, nil).handleApp(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleApp_OperationError(t *testing.T) {
	ops := &fakeOps{err: play.ErrAppNotFound}
	res, err := New(ops, nil).handleApp(context.Background(), call(map[string]any{"app_id": "com.gone"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "app not found")
}

func TestHandleList(t *testing.T) {
	ops := &fakeOps{}
	s := New(ops, nil)

	res, err := s.handleList(context.Background(), call(map[string]any{"category": "GAME", "not_merge": true}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.True(t, ops.list.NotMerge)
	assert.Equal(t, "GAME", ops.list.Category)

	var groups []map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Top", groups[0]["title"])

	ops.err = errors.New("boom")
	res, err = s.handleList(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCP_RegistersTools(t *testing.T) {
	m := New(&fakeOps{}, nil).MCP("test")
	require.NotNil(t, m)
	tools := m.ListTools()
	assert.Contains(t, tools, "app")
	assert.Contains(t, tools, "list")
}
