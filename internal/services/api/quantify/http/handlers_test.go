package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "laurel/internal/platform/errors"
	phttp "laurel/internal/platform/net/http"
	praisedom "laurel/internal/services/praise/domain"
	qdom "laurel/internal/services/quantify/domain"

	"context"
)

type fakeEngine struct {
	lastInput qdom.Input
	lastBatch qdom.BatchInput
	err       error
}

func (f *fakeEngine) Quantify(_ context.Context, in qdom.Input) ([]praisedom.Item, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return []praisedom.Item{{ID: in.ItemID, Score: 55}}, nil
}

func (f *fakeEngine) QuantifyMany(_ context.Context, in qdom.BatchInput) ([]praisedom.Item, error) {
	f.lastBatch = in
	if f.err != nil {
		return nil, f.err
	}
	out := make([]praisedom.Item, 0, len(in.ItemIDs))
	for _, id := range in.ItemIDs {
		out = append(out, praisedom.Item{ID: id})
	}
	return out, nil
}

func (f *fakeEngine) CompositeScore(context.Context, string, bool) (float64, error) {
	return 0, f.err
}

func newTestServer(eng *fakeEngine) *httptest.Server {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/quantify", func(rr phttp.Router) { Register(rr, eng) })
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestQuantifyEndpointPassesPathAndBody(t *testing.T) {
	eng := &fakeEngine{}
	srv := newTestServer(eng)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/quantify/item-1", `{"raterId":"r1","score":8}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if eng.lastInput.ItemID != "item-1" || eng.lastInput.RaterID != "r1" {
		t.Fatalf("input = %+v", eng.lastInput)
	}
	if eng.lastInput.Score == nil || *eng.lastInput.Score != 8 {
		t.Fatalf("score = %v, want 8", eng.lastInput.Score)
	}

	var env struct {
		Status string            `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 {
		t.Fatalf("data = %v, want one item", env.Data)
	}
}

func TestQuantifyEndpointRejectsMissingRater(t *testing.T) {
	eng := &fakeEngine{}
	srv := newTestServer(eng)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/quantify/item-1", `{"score":8}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing raterId", resp.StatusCode)
	}
}

func TestQuantifyEndpointMapsConflict(t *testing.T) {
	eng := &fakeEngine{err: perr.Conflictf("period is closed")}
	srv := newTestServer(eng)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/quantify/item-1", `{"raterId":"r1","dismissed":true}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestBatchEndpoint(t *testing.T) {
	eng := &fakeEngine{}
	srv := newTestServer(eng)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/quantify/batch", `{"raterId":"r1","itemIds":["a","b"],"dismissed":true}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(eng.lastBatch.ItemIDs) != 2 || !eng.lastBatch.Dismissed {
		t.Fatalf("batch input = %+v", eng.lastBatch)
	}
}

func TestBatchEndpointRejectsEmptyItemList(t *testing.T) {
	eng := &fakeEngine{}
	srv := newTestServer(eng)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/quantify/batch", `{"raterId":"r1","itemIds":[]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for empty itemIds", resp.StatusCode)
	}
}
