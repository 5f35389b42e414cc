package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteadapter"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/testutil"
)

// testEnv wires a real adapter over in-memory fakes behind the router.
func testEnv(t *testing.T, authToken string) (http.Handler, *testutil.FakeIndex, *testutil.FakeLedger) {
	t.Helper()
	resolver := &testutil.StaticResolver{Handles: map[string]string{"0xabc": "7"}}
	index := &testutil.FakeIndex{Events: map[string]registry.Event{}}
	ledger := testutil.NewFakeLedger()
	store := testutil.NewMemoryStore()

	adapter := noteadapter.New(resolver, index, ledger, store)
	router := NewRouter(adapter, authToken != "", authToken)
	return router, index, ledger
}

func TestGetNotesEmptyForUnknownIdentity(t *testing.T) {
	router, _, _ := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/notes?identity=0xnobody", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var page models.Page
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 0 || len(page.List) != 0 {
		t.Errorf("page = %+v, want empty", page)
	}
}

func TestGetNotesSingleLookup(t *testing.T) {
	router, index, _ := testEnv(t, "")
	index.Events["7-10"] = registry.Event{
		NoteID:          10,
		TransactionHash: "0xaaa",
		Metadata:        registry.EventMetadata{Content: map[string]any{"content": "hello"}},
	}

	req := httptest.NewRequest(http.MethodGet, "/notes?identity=0xabc&id=7-10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var page models.Page
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.List) != 1 {
		t.Fatalf("page = %+v", page)
	}
	if page.List[0].Body == nil || page.List[0].Body.Content != "hello" {
		t.Errorf("body = %+v", page.List[0].Body)
	}
}

func TestPostNoteAdd(t *testing.T) {
	router, _, ledger := testEnv(t, "")

	body, _ := json.Marshal(SetRequest{
		Options: noteadapter.SetOptions{Identity: "0xabc"},
		Input: models.Note{
			Body: &models.Content{Content: "hello", MimeType: "text/markdown"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var outcome models.Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
		t.Fatal(err)
	}
	if outcome.Code != 0 || outcome.Message != "Success" {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(ledger.Calls) != 1 {
		t.Errorf("ledger calls = %+v", ledger.Calls)
	}
}

func TestPostNoteBusinessFailureIsHTTP200(t *testing.T) {
	router, _, _ := testEnv(t, "")

	body, _ := json.Marshal(SetRequest{
		Options: noteadapter.SetOptions{Identity: "0xabc", Action: noteadapter.ActionRemove},
		Input:   models.Note{ID: "5-10"},
	})
	req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var outcome models.Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
		t.Fatal(err)
	}
	if outcome.Code != 1 || outcome.Message != "Wrong id" {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestPostNoteValidationErrors(t *testing.T) {
	router, _, _ := testEnv(t, "")

	cases := []struct {
		name string
		req  SetRequest
	}{
		{"missing identity", SetRequest{}},
		{"unknown action", SetRequest{Options: noteadapter.SetOptions{Identity: "0xabc", Action: "plant"}}},
		{"two related urls", SetRequest{
			Options: noteadapter.SetOptions{Identity: "0xabc"},
			Input:   models.Note{RelatedURLs: []string{"https://a.example", "https://b.example"}},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			body, _ := json.Marshal(c.req)
			req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestPostNoteInvalidJSON(t *testing.T) {
	router, _, _ := testEnv(t, "")

	req := httptest.NewRequest(http.MethodPost, "/notes", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestAuthToken(t *testing.T) {
	router, _, _ := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status with token = %d, body = %s", w.Code, w.Body.String())
	}
}
