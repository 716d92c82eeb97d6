package insight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractOutputText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"object with output", `{"output":"hello"}`, "hello"},
		{"object with response", `{"response":"hi"}`, "hi"},
		{"output wins over response", `{"output":"a","response":"b"}`, "a"},
		{"object without either", `{"foo":"bar"}`, `{"foo":"bar"}`},
		{"array of objects", `[{"output":"first"},{"output":"second"}]`, "first"},
		{"array of scalars", `[1,2,3]`, "[1,2,3]"},
		{"empty array", `[]`, "[]"},
		{"bare string", `"plain"`, "plain"},
		{"number", `42`, "42"},
		{"invalid json", `not json at all`, "not json at all"},
	}
	for _, c := range cases {
		if got := extractOutputText([]byte(c.raw)); got != c.want {
			t.Fatalf("%s: want=%q got=%q", c.name, c.want, got)
		}
	}
}

func TestProxyForward_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output":"answer"}`))
	}))
	defer srv.Close()

	p := NewProxy(srv.URL, 5*time.Second)
	got, err := p.Forward(context.Background(), map[string]interface{}{"request": "q"})
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if got != "answer" {
		t.Fatalf("want=answer got=%q", got)
	}
}

func TestProxyForward_UpstreamStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProxy(srv.URL, 5*time.Second)
	_, err := p.Forward(context.Background(), map[string]interface{}{"request": "q"})

	var perr *ProxyError
	if !errors.As(err, &perr) {
		t.Fatalf("want ProxyError, got %v", err)
	}
	if perr.Kind != ProxyErrorUpstreamStatus || perr.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected classification: %+v", perr)
	}
}

func TestProxyForward_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewProxy(srv.URL, 20*time.Millisecond)
	_, err := p.Forward(context.Background(), map[string]interface{}{"request": "q"})

	var perr *ProxyError
	if !errors.As(err, &perr) {
		t.Fatalf("want ProxyError, got %v", err)
	}
	if perr.Kind != ProxyErrorTimeout {
		t.Fatalf("want timeout classification, got %+v", perr)
	}
}

func TestProxyForward_Connection(t *testing.T) {
	t.Parallel()

	// 端口已关闭的地址
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewProxy(url, time.Second)
	_, err := p.Forward(context.Background(), map[string]interface{}{"request": "q"})

	var perr *ProxyError
	if !errors.As(err, &perr) {
		t.Fatalf("want ProxyError, got %v", err)
	}
	if perr.Kind != ProxyErrorConnection {
		t.Fatalf("want connection classification, got %+v", perr)
	}
}

func TestProxyConfigured(t *testing.T) {
	t.Parallel()

	if NewProxy("", 0).Configured() {
		t.Fatalf("empty URL should not be configured")
	}
	if !NewProxy("http://example.com", 0).Configured() {
		t.Fatalf("non-empty URL should be configured")
	}
}
