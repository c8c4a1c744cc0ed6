package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
)

func TestClassifyArrays(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "directory listing",
			body: `["sensors/", "receivers/", "sdp/"]`,
			want: []string{"sensors/", "receivers/", "sdp/"},
		},
		{
			name: "drops non-conforming elements and keeps order",
			body: `["b/", "plain", 3, null, {"x/": 1}, ["a/"], "a/", true]`,
			want: []string{"b/", "a/"},
		},
		{
			name: "empty array",
			body: `[]`,
			want: []string{},
		},
		{
			name: "nothing conforms",
			body: `["self", "devices"]`,
			want: []string{},
		},
		{
			name: "duplicates kept",
			body: `["x/", "x/"]`,
			want: []string{"x/", "x/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify([]byte(tt.body))
			require.Equal(t, KindCollection, res.Kind)
			assert.Equal(t, tt.want, res.Options)
			assert.Nil(t, res.Document)
		})
	}
}

func TestClassifyObjects(t *testing.T) {
	tests := []struct {
		name string
		body string
		keys []string
	}{
		{name: "flat", body: `{"label": "node1"}`, keys: []string{"label"}},
		{name: "nested stays a leaf", body: `{"id": "x", "caps": {"a/": 1}, "list": ["a/"]}`, keys: []string{"id", "caps", "list"}},
		{name: "empty", body: `{}`, keys: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify([]byte(tt.body))
			require.Equal(t, KindDocument, res.Kind)
			require.NotNil(t, res.Document)
			assert.Equal(t, jsondoc.Object, res.Document.Kind)
			assert.Empty(t, res.Options)
			assert.ElementsMatch(t, tt.keys, res.Document.Keys())
			assert.Equal(t, len(tt.keys), len(res.Document.Keys()))
		})
	}
}

func TestClassifyUnexpectedFormat(t *testing.T) {
	bodies := []string{
		`"just a string"`,
		`42`,
		`true`,
		`null`,
		``,
		`not json`,
		`{"truncated": `,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			res := Classify([]byte(body))
			require.Equal(t, KindError, res.Kind)
			assert.ErrorIs(t, res.Err, ErrUnexpectedFormat)
			assert.Equal(t, "Unexpected data format", res.Message())
		})
	}
}

func TestFetchCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/x-nmos/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["node/", "query/"]`))
	}))
	defer srv.Close()

	res := New(WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/x-nmos/")
	require.Equal(t, KindCollection, res.Kind)
	assert.Equal(t, []string{"node/", "query/"}, res.Options)
}

func TestFetchNonSuccessStatusStillClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": 404, "error": "not found"}`))
	}))
	defer srv.Close()

	res := New().Fetch(context.Background(), srv.URL+"/missing/")
	require.Equal(t, KindDocument, res.Kind)
	code, ok := res.Document.Get("code")
	require.True(t, ok)
	assert.Equal(t, "404", code.Text)
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	res := New().Fetch(context.Background(), srv.URL+"/")
	require.Equal(t, KindError, res.Kind)
	assert.Equal(t, "Unexpected data format", res.Message())
}

func TestFetchConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	url := "http://" + addr + "/"
	res := New().Fetch(context.Background(), url)
	require.Equal(t, KindError, res.Kind)

	var terr *TransportError
	require.True(t, errors.As(res.Err, &terr))
	assert.Equal(t, url, terr.URL)
	assert.Contains(t, res.Message(), "Error fetching data from "+url+": ")
	assert.Contains(t, res.Message(), "refused")
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New().Fetch(ctx, srv.URL+"/")
	require.Equal(t, KindError, res.Kind)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestFetchInvalidURL(t *testing.T) {
	res := New().Fetch(context.Background(), "http://bad host/")
	require.Equal(t, KindError, res.Kind)
	assert.Contains(t, res.Message(), "Error fetching data from http://bad host/")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "collection", KindCollection.String())
	assert.Equal(t, "document", KindDocument.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
