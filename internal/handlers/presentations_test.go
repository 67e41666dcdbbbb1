package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deckgen/internal/deck"
	"deckgen/internal/handlers"
	"deckgen/internal/middleware"
	"deckgen/internal/outline"
	"deckgen/internal/router"
	"deckgen/internal/store"
)

// stubSource implements outline.SlideSource for handler tests.
type stubSource struct {
	response string
	err      error
}

func (s *stubSource) GenerateJSON(context.Context, string, string) (string, error) {
	return s.response, s.err
}

const stubCompletion = `{"slides":[{"title":"Q1 Results","content":["revenue up","costs down"]}]}`

// testServer wires the full router around a stubbed model source and
// returns the server plus the backing memory store.
func testServer(t *testing.T, src outline.SlideSource) (*httptest.Server, *store.Memory) {
	t.Helper()

	st := store.NewMemory()
	generator := outline.NewGenerator(src, st)
	presentations := handlers.NewPresentations(generator, st, deck.NewRenderer())

	limiter := middleware.NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(router.New(presentations, limiter))
	t.Cleanup(srv.Close)
	return srv, st
}

func postGenerate(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/generate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /generate: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	srv, st := testServer(t, &stubSource{response: stubCompletion})

	resp := postGenerate(t, srv, `{"text":"Q1 results: revenue up, costs down"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}

	var p outline.Presentation
	decodeJSON(t, resp, &p)

	if p.ID == "" {
		t.Error("response should carry an id")
	}
	if p.Theme != "modern" {
		t.Errorf("theme: got %q, want modern", p.Theme)
	}
	if len(p.Slides) != 1 {
		t.Errorf("slides: got %d, want 1", len(p.Slides))
	}
	if p.DownloadURL != "/"+p.ID+"/download" {
		t.Errorf("download url: got %q, want /%s/download", p.DownloadURL, p.ID)
	}
	if st.Len() != 1 {
		t.Errorf("store writes: got %d, want 1", st.Len())
	}
}

func TestGenerateEndpointMissingText(t *testing.T) {
	cases := []struct {
		name, body string
	}{
		{"omitted", `{}`},
		{"empty", `{"text":""}`},
		{"whitespace", `{"text":"   "}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv, st := testServer(t, &stubSource{response: stubCompletion})

			resp := postGenerate(t, srv, c.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", resp.StatusCode)
			}

			var payload map[string]string
			decodeJSON(t, resp, &payload)
			if payload["error"] != "text is required" {
				t.Errorf("error: got %q, want %q", payload["error"], "text is required")
			}
			if st.Len() != 0 {
				t.Error("rejected request must not write to the store")
			}
		})
	}
}

func TestGenerateEndpointModelFailure(t *testing.T) {
	srv, st := testServer(t, &stubSource{err: errors.New("provider down")})

	resp := postGenerate(t, srv, `{"text":"some text"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", resp.StatusCode)
	}

	var payload map[string]string
	decodeJSON(t, resp, &payload)
	if payload["error"] == "" {
		t.Error("failure should carry an error message")
	}
	if st.Len() != 0 {
		t.Error("failed generation must not write to the store")
	}
}

func TestGenerateEndpointOptions(t *testing.T) {
	srv, _ := testServer(t, &stubSource{response: stubCompletion})

	resp := postGenerate(t, srv, `{"text":"t","options":{"theme":"business","slideCount":3,"includeImages":false}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", resp.StatusCode)
	}

	var p outline.Presentation
	decodeJSON(t, resp, &p)
	if p.Theme != "business" {
		t.Errorf("theme: got %q, want business", p.Theme)
	}
}

func TestFetchEndpoint(t *testing.T) {
	srv, _ := testServer(t, &stubSource{response: stubCompletion})

	resp := postGenerate(t, srv, `{"text":"some text"}`)
	var created outline.Presentation
	decodeJSON(t, resp, &created)

	resp, err := http.Get(srv.URL + "/" + created.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var fetched outline.Presentation
	decodeJSON(t, resp, &fetched)
	if fetched.ID != created.ID || fetched.Theme != created.Theme || len(fetched.Slides) != len(created.Slides) {
		t.Errorf("fetched record differs: got %+v, want %+v", fetched, created)
	}
}

func TestFetchEndpointUnknownID(t *testing.T) {
	srv, _ := testServer(t, &stubSource{response: stubCompletion})

	resp, err := http.Get(srv.URL + "/no-such-id")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}

	var payload map[string]string
	decodeJSON(t, resp, &payload)
	if payload["error"] != "presentation not found" {
		t.Errorf("error: got %q, want %q", payload["error"], "presentation not found")
	}
}

func TestDownloadEndpoint(t *testing.T) {
	srv, _ := testServer(t, &stubSource{response: stubCompletion})

	resp := postGenerate(t, srv, `{"text":"some text"}`)
	var created outline.Presentation
	decodeJSON(t, resp, &created)

	resp, err := http.Get(srv.URL + created.DownloadURL)
	if err != nil {
		t.Fatalf("GET download: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != deck.ContentType {
		t.Errorf("content type: got %q, want %q", ct, deck.ContentType)
	}
	want := `attachment; filename="presentation-` + created.ID + `.pptx"`
	if cd := resp.Header.Get("Content-Disposition"); cd != want {
		t.Errorf("content disposition: got %q, want %q", cd, want)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	// A zip archive starts with "PK".
	if buf.Len() == 0 || !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("download body should be a non-empty zip archive")
	}
}

func TestDownloadEndpointZeroSlides(t *testing.T) {
	// A completion with no slides is a valid, empty deck.
	srv, _ := testServer(t, &stubSource{response: `{"slides":[]}`})

	resp := postGenerate(t, srv, `{"text":"some text"}`)
	var created outline.Presentation
	decodeJSON(t, resp, &created)
	if len(created.Slides) != 0 {
		t.Fatalf("slides: got %d, want 0", len(created.Slides))
	}

	resp, err := http.Get(srv.URL + "/" + created.ID + "/download")
	if err != nil {
		t.Fatalf("GET download: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if buf.Len() == 0 {
		t.Error("empty deck should still download as a non-empty blob")
	}
}

func TestDownloadEndpointUnknownID(t *testing.T) {
	srv, _ := testServer(t, &stubSource{response: stubCompletion})

	resp, err := http.Get(srv.URL + "/no-such-id/download")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestThemesEndpoint(t *testing.T) {
	srv, _ := testServer(t, &stubSource{response: stubCompletion})

	resp, err := http.Get(srv.URL + "/themes")
	if err != nil {
		t.Fatalf("GET /themes: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}

	var payload map[string][]string
	decodeJSON(t, resp, &payload)
	names := payload["themes"]
	if len(names) != 4 {
		t.Errorf("themes: got %d, want 4", len(names))
	}
}
