package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "geekmd-test", Timeout: 2 * time.Second}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct == "" || string(body) == "" {
		t.Fatalf("expected content type and body")
	}
	if gotUA != "geekmd-test" {
		t.Fatalf("User-Agent not sent, got %q", gotUA)
	}
}

func TestGet_DefaultUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("expected the default User-Agent, got %q", gotUA)
	}
}

func TestGet_SingleAttemptOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(502)
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 5xx status")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, server saw %d", calls)
	}
}

func TestGet_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 status")
	}
}

func TestGet_RejectsNonHTTP(t *testing.T) {
	c := &Client{Timeout: time.Second}
	if _, _, err := c.Get(context.Background(), "file:///etc/hosts"); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestGet_ContentTypeGating(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not": "html"}`))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for unsupported content type")
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 50 * time.Millisecond}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestGet_RedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/next", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second, RedirectMaxHops: 1}
	if _, _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected redirect limit error")
	}
}

func TestGet_PausesBeforeEveryRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var slept []time.Duration
	c := &Client{
		Timeout:  2 * time.Second,
		DelayMin: 1 * time.Second,
		DelayMax: 3 * time.Second,
		Sleep:    func(d time.Duration) { slept = append(slept, d) },
	}

	for i := 0; i < 3; i++ {
		if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}

	if len(slept) != 3 {
		t.Fatalf("expected one pause per request, got %d pauses for 3 requests", len(slept))
	}
	for i, d := range slept {
		if d < c.DelayMin || d > c.DelayMax {
			t.Fatalf("pause %d = %v outside [%v, %v]", i, d, c.DelayMin, c.DelayMax)
		}
	}
}

func TestGet_FixedPauseWhenWindowCollapsed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var slept []time.Duration
	c := &Client{
		Timeout:  2 * time.Second,
		DelayMin: 2 * time.Second,
		DelayMax: 2 * time.Second,
		Sleep:    func(d time.Duration) { slept = append(slept, d) },
	}
	if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Fatalf("expected one fixed 2s pause, got %v", slept)
	}
}

func TestGet_NoPauseWhenWindowUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	called := false
	c := &Client{Timeout: 2 * time.Second, Sleep: func(time.Duration) { called = true }}
	if _, _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("get: %v", err)
	}
	if called {
		t.Fatal("pause should not run when the delay window is zero")
	}
}
