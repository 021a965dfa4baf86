// Package respond selects a response representation (JSON or HTML) for a
// request based on its Accept header and a per-handler format map.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Format is a negotiable response format. FormatDefault matches any
// media type a client declares.
type Format string

const (
	FormatDefault Format = "*/*"
	FormatHTML    Format = "text/html"
	FormatJSON    Format = "application/json"
)

// ErrNotAcceptable is returned when no entry in the map matches any of
// the client's declared media types and the map has no default entry.
var ErrNotAcceptable = errors.New("no acceptable response format")

// Page is a renderable HTML document.
type Page interface {
	Render(w io.Writer) error
}

// Response is one branch of a format map. There are exactly two variants:
// a JSON body or an HTML page.
type Response interface {
	write(w http.ResponseWriter, status int) error
}

// Map associates response formats with the response each should produce.
type Map map[Format]Response

// JSON returns a Response that serializes data as a JSON body.
func JSON(data any) Response {
	return jsonResponse{data: data}
}

// HTML returns a Response that builds an HTML page and renders it. The
// factory runs only when the HTML branch is selected, so it may do work
// (like rereading the store) that JSON clients should not pay for.
func HTML(page func() (Page, error)) Response {
	return htmlResponse{page: page}
}

// To writes the representation matching the request's Accept header.
// Preferences are honored in client-declared priority order; for each
// preference an exact media-type match beats the default entry. No side
// effects beyond writing the response.
func To(w http.ResponseWriter, r *http.Request, status int, m Map) error {
	resp, ok := pick(m, accepts(r.Header.Get("Accept")))
	if !ok {
		return ErrNotAcceptable
	}
	return resp.write(w, status)
}

type jsonResponse struct {
	data any
}

func (j jsonResponse) write(w http.ResponseWriter, status int) error {
	body, err := json.Marshal(j.data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}

type htmlResponse struct {
	page func() (Page, error)
}

func (h htmlResponse) write(w http.ResponseWriter, status int) error {
	page, err := h.page()
	if err != nil {
		return err
	}

	// Render fully before writing so a template failure doesn't leave a
	// half-written body behind a success status.
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(buf.Bytes())
	return err
}

// accepts parses an Accept header into media ranges ordered by client
// priority: q-value descending, header order breaking ties. A missing
// header means the client accepts anything.
func accepts(header string) []string {
	if strings.TrimSpace(header) == "" {
		return []string{"*/*"}
	}

	type preference struct {
		mediaType string
		quality   float64
	}

	var prefs []preference
	for _, part := range strings.Split(header, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		quality := 1.0
		if qs, ok := params["q"]; ok {
			if v, err := strconv.ParseFloat(qs, 64); err == nil {
				quality = v
			}
		}
		if quality <= 0 {
			continue
		}
		prefs = append(prefs, preference{mediaType, quality})
	}

	sort.SliceStable(prefs, func(i, j int) bool { return prefs[i].quality > prefs[j].quality })

	ordered := make([]string, len(prefs))
	for i, p := range prefs {
		ordered[i] = p.mediaType
	}
	return ordered
}

// pick finds the first acceptable entry. Wildcard preferences match
// concrete entries with JSON as the API-native choice before HTML.
func pick(m Map, prefs []string) (Response, bool) {
	concrete := []Format{FormatJSON, FormatHTML}

	for _, pref := range prefs {
		if resp, ok := m[Format(pref)]; ok {
			return resp, true
		}
		switch {
		case pref == "*/*":
			for _, f := range concrete {
				if resp, ok := m[f]; ok {
					return resp, true
				}
			}
		case strings.HasSuffix(pref, "/*"):
			prefix := strings.TrimSuffix(pref, "*")
			for _, f := range concrete {
				if !strings.HasPrefix(string(f), prefix) {
					continue
				}
				if resp, ok := m[f]; ok {
					return resp, true
				}
			}
		}
		if resp, ok := m[FormatDefault]; ok {
			return resp, true
		}
	}
	return nil, false
}
