package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteadapter"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T) (*Server, *testutil.FakeIndex, *testutil.FakeLedger) {
	t.Helper()

	resolver := &testutil.StaticResolver{Handles: map[string]string{"0xabc": "7"}}
	index := &testutil.FakeIndex{Events: map[string]registry.Event{}}
	ledger := testutil.NewFakeLedger()
	store := testutil.NewMemoryStore()

	srv := New(noteadapter.New(resolver, index, ledger, store))
	return srv, index, ledger
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we call the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_notes":
		result, err = srv.getNotes(ctx, req)
	case "post_note":
		result, err = srv.postNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetNotesSingleLookup(t *testing.T) {
	srv, index, _ := testServer(t)
	index.Events["7-10"] = registry.Event{
		NoteID:          10,
		TransactionHash: "0xaaa",
		Metadata:        registry.EventMetadata{Content: map[string]any{"content": "hello"}},
	}

	r := callTool(t, srv, "get_notes", map[string]interface{}{
		"identity": "0xabc",
		"id":       "7-10",
	})
	var page models.Page
	if err := json.Unmarshal([]byte(resultText(r)), &page); err != nil {
		t.Fatalf("result not a page: %v", err)
	}
	if page.Total != 1 || page.List[0].ID != "7-10" {
		t.Errorf("page = %+v", page)
	}
}

func TestPostNoteAdd(t *testing.T) {
	srv, _, ledger := testServer(t)

	r := callTool(t, srv, "post_note", map[string]interface{}{
		"identity": "0xabc",
		"input":    `{"body":{"content":"hello","mime_type":"text/markdown"}}`,
	})
	var outcome models.Outcome
	if err := json.Unmarshal([]byte(resultText(r)), &outcome); err != nil {
		t.Fatalf("result not an outcome: %v", err)
	}
	if outcome.Code != 0 || outcome.Message != "Success" {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(ledger.Calls) != 1 || ledger.Calls[0].Op != "create" {
		t.Errorf("ledger calls = %+v", ledger.Calls)
	}
}

func TestPostNoteMissingIdentity(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "post_note", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error without identity")
	}
}

func TestPostNoteBadInputJSON(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "post_note", map[string]interface{}{
		"identity": "0xabc",
		"input":    "{not json",
	})
	if !r.IsError {
		t.Error("expected error for invalid input JSON")
	}
	if !strings.Contains(resultText(r), "JSON") {
		t.Errorf("message = %q", resultText(r))
	}
}

func TestPostNoteWrongID(t *testing.T) {
	srv, _, ledger := testServer(t)

	r := callTool(t, srv, "post_note", map[string]interface{}{
		"identity": "0xabc",
		"action":   "remove",
		"input":    `{"id":"5-10"}`,
	})
	var outcome models.Outcome
	if err := json.Unmarshal([]byte(resultText(r)), &outcome); err != nil {
		t.Fatalf("result not an outcome: %v", err)
	}
	if outcome.Code != 1 || outcome.Message != "Wrong id" {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(ledger.Calls) != 0 {
		t.Error("ownership mismatch must not reach the ledger")
	}
}
