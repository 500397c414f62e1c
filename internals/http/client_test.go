package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func response(status int, contentType string, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
	if contentType != "" {
		resp.Header.Set("Content-Type", contentType)
	}
	return resp
}

func TestParseResponse(t *testing.T) {
	client := NewClient("http://localhost:3000", true)

	t.Run("no content", func(t *testing.T) {
		var target map[string]interface{}
		assert.NilError(t, client.parseResponse(response(http.StatusNoContent, "", ""), &target, "/x"))
		assert.Assert(t, target == nil)
	})

	t.Run("html before status", func(t *testing.T) {
		err := client.parseResponse(response(http.StatusInternalServerError, "text/html", "<h1>oops</h1>"), nil, "/x")
		assert.Assert(t, errors.Is(err, ErrNotJSON))
		var statusErr *StatusError
		assert.Assert(t, !errors.As(err, &statusErr))
	})

	t.Run("html with 200", func(t *testing.T) {
		err := client.parseResponse(response(http.StatusOK, "text/html; charset=utf-8", "<html></html>"), nil, "/x")
		assert.Assert(t, errors.Is(err, ErrNotJSON))
	})

	t.Run("status error keeps message", func(t *testing.T) {
		err := client.parseResponse(response(http.StatusConflict, "application/json", `{"msg": "El correo ya está registrado"}`), nil, "/x")
		var statusErr *StatusError
		assert.Assert(t, errors.As(err, &statusErr))
		assert.Equal(t, statusErr.Code, http.StatusConflict)
		assert.Equal(t, statusErr.Message, "El correo ya está registrado")
		assert.Equal(t, err.Error(), "status code = 409: El correo ya está registrado")
	})

	t.Run("decode error", func(t *testing.T) {
		var target struct{ Total int }
		err := client.parseResponse(response(http.StatusOK, "application/json", `{"Total": "x"}`), &target, "/x")
		var decodeErr *DecodeError
		assert.Assert(t, errors.As(err, &decodeErr))
		assert.Equal(t, decodeErr.Path, "/x")
	})

	t.Run("nil target ignores body", func(t *testing.T) {
		err := client.parseResponse(response(http.StatusCreated, "application/json", `not even json`), nil, "/x")
		assert.NilError(t, err)
	})

	t.Run("decodes", func(t *testing.T) {
		var target struct {
			Message string `json:"message"`
		}
		err := client.parseResponse(response(http.StatusOK, "application/json; charset=utf-8", `{"message": "ok"}`), &target, "/x")
		assert.NilError(t, err)
		assert.Equal(t, target.Message, "ok")
	})
}

func TestServerMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error": "Paciente no encontrado"}`, "Paciente no encontrado"},
		{`{"msg": "Credenciales incorrectas"}`, "Credenciales incorrectas"},
		{`{"error": true, "message": "Ruta no encontrada"}`, "Ruta no encontrada"},
		{`{"error": "", "msg": "Faltan datos"}`, "Faltan datos"},
		{`{"status": 500}`, ""},
		{`[1, 2]`, ""},
		{``, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, serverMessage([]byte(tc.body)), tc.want, tc.body)
	}
}

func TestGetUrl(t *testing.T) {
	client := NewClient("http://localhost:3000/", true)
	assert.Equal(t, client.GetUrl("/api/pacientes?page=2&limit=6"), "http://localhost:3000/api/pacientes?page=2&limit=6")
	assert.Equal(t, client.GetUrl("/"), "http://localhost:3000/")
}

func TestRequestHeaders(t *testing.T) {
	var headers []http.Header
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Clone())
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, true)
	ctx := context.Background()
	assert.NilError(t, client.PostAndParse(ctx, "/api/registros", map[string]string{"email": "a@b.c"}, nil))
	assert.NilError(t, client.GetAndParse(ctx, "/api/medicos", nil))

	assert.Equal(t, len(headers), 2)
	assert.Equal(t, headers[0].Get("Content-Type"), "application/json")
	assert.Equal(t, headers[0].Get("Accept"), "application/json")
	assert.Assert(t, headers[0].Get(RequestIDHeader) != "")
	assert.Assert(t, headers[0].Get(RequestIDHeader) != headers[1].Get(RequestIDHeader))
	assert.Equal(t, bodies[0], `{"email":"a@b.c"}`)
	assert.Equal(t, bodies[1], "")
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, true, WithTimeout(50*time.Millisecond))
	err := client.GetAndParse(context.Background(), "/api/citas", nil)
	assert.Assert(t, IsNetwork(err))
}

func TestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewClient(srv.URL, true).GetAndParse(ctx, "/", nil)
	assert.Assert(t, IsNetwork(err))
	assert.Assert(t, errors.Is(err, context.Canceled))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	err := NewClient(srv.URL, true).Ping(context.Background())
	var statusErr *StatusError
	assert.Assert(t, errors.As(err, &statusErr))
	assert.Equal(t, statusErr.Code, http.StatusServiceUnavailable)
}

func TestTruncate(t *testing.T) {
	long := bytes.Repeat([]byte("a"), maxLoggedBody+10)
	assert.Equal(t, len(truncate(long)), maxLoggedBody+3)
	assert.Equal(t, truncate([]byte("short")), "short")
}
