package respond

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubPage struct {
	body string
}

func (p stubPage) Render(w io.Writer) error {
	_, err := io.WriteString(w, p.body)
	return err
}

func htmlPage(body string) Response {
	return HTML(func() (Page, error) { return stubPage{body: body}, nil })
}

func negotiate(t *testing.T, accept string, m Map) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("GET", "/", nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	if err := To(w, r, 200, m); err != nil {
		t.Fatalf("To: %v", err)
	}
	return w
}

func TestJSONPreference(t *testing.T) {
	w := negotiate(t, "application/json", Map{
		FormatJSON: JSON(map[string]string{"name": "gin"}),
		FormatHTML: htmlPage("<html></html>"),
	})

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"name":"gin"`) {
		t.Errorf("expected JSON body, got %q", w.Body.String())
	}
}

func TestHTMLPreference(t *testing.T) {
	w := negotiate(t, "text/html", Map{
		FormatJSON: JSON(nil),
		FormatHTML: htmlPage("<html><body>gin</body></html>"),
	})

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "gin") {
		t.Errorf("expected rendered page, got %q", w.Body.String())
	}
}

func TestQualityOrdering(t *testing.T) {
	// HTML is declared with higher priority than JSON.
	w := negotiate(t, "application/json;q=0.5, text/html", Map{
		FormatJSON: JSON(nil),
		FormatHTML: htmlPage("page"),
	})

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML to win on q-value, got %q", ct)
	}
}

func TestMissingAcceptHeader(t *testing.T) {
	w := negotiate(t, "", Map{
		FormatJSON: JSON(map[string]string{"message": "hey!"}),
		FormatHTML: htmlPage("page"),
	})

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected missing Accept to fall back to JSON, got %q", ct)
	}
}

func TestWildcardSubtype(t *testing.T) {
	w := negotiate(t, "text/*", Map{
		FormatJSON: JSON(nil),
		FormatHTML: htmlPage("page"),
	})

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/* to match the HTML entry, got %q", ct)
	}
}

func TestDefaultEntryMatchesAnything(t *testing.T) {
	w := negotiate(t, "application/xml", Map{
		FormatDefault: JSON(map[string]string{"message": "fallback"}),
		FormatHTML:    htmlPage("page"),
	})

	if !strings.Contains(w.Body.String(), "fallback") {
		t.Errorf("expected default entry, got %q", w.Body.String())
	}
}

func TestNotAcceptable(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept", "application/xml")
	w := httptest.NewRecorder()

	err := To(w, r, 200, Map{
		FormatJSON: JSON(nil),
		FormatHTML: htmlPage("page"),
	})
	if !errors.Is(err, ErrNotAcceptable) {
		t.Errorf("expected ErrNotAcceptable, got %v", err)
	}
}

func TestPageFactoryIsLazy(t *testing.T) {
	called := false
	m := Map{
		FormatJSON: JSON(nil),
		FormatHTML: HTML(func() (Page, error) {
			called = true
			return stubPage{}, nil
		}),
	}

	negotiate(t, "application/json", m)
	if called {
		t.Error("expected page factory to be skipped for JSON responses")
	}
}

func TestPageFactoryError(t *testing.T) {
	fail := errors.New("boom")
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()

	err := To(w, r, 200, Map{
		FormatHTML: HTML(func() (Page, error) { return nil, fail }),
	})
	if !errors.Is(err, fail) {
		t.Errorf("expected factory error to propagate, got %v", err)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected no body on failure, got %q", w.Body.String())
	}
}
