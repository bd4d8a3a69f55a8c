package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ip struct {
	Origin string `json:"origin"`
}

func TestGetDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		io.WriteString(w, `{"origin":"1.2.3.4"}`)
	}))
	defer srv.Close()

	res, err := Get[ip](context.Background(), New(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "1.2.3.4", res.Body.Origin)
}

func TestNonSuccessIsStatusCodeError(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"success":false}`},
		{"redirect not followed", http.StatusNotModified, ""},
		{"server error plain text", http.StatusBadGateway, "bad gateway\n"},
		{"invalid json body", http.StatusBadRequest, "{not json"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				io.WriteString(w, c.body)
			}))
			defer srv.Close()

			_, err := Get[ip](context.Background(), New(), srv.URL)
			var se *StatusCodeError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, c.status, se.Status)
			assert.Equal(t, c.body, se.Body)

			var ser *SerializationError
			assert.False(t, errors.As(err, &ser))
		})
	}
}

func TestMalformedSuccessBodyIsSerializationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"origin":`)
	}))
	defer srv.Close()

	_, err := Get[ip](context.Background(), New(), srv.URL)
	var ser *SerializationError
	assert.True(t, errors.As(err, &ser), "got %v", err)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Get[ip](context.Background(), New(), url)
	var te *TransportError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, http.MethodGet, te.Method)

	var se *StatusCodeError
	assert.False(t, errors.As(err, &se))
}

func TestPutSendsBodyAndHeaders(t *testing.T) {
	var (
		gotBody  string
		gotAuth  string
		gotEmail string
		gotType  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAuth = r.Header.Get("Authorization")
		gotEmail = r.Header.Get("X-Auth-Email")
		gotType = r.Header.Get("Content-Type")
		io.WriteString(w, `{"origin":"ok"}`)
	}))
	defer srv.Close()

	c, err := NewWithHeaders([]Header{
		{Name: "Authorization", Value: "Bearer tok", Sensitive: true},
		{Name: "X-Auth-Email", Value: "me@example.com", Sensitive: true},
	})
	require.NoError(t, err)

	body, err := Marshal(map[string]string{"content": "1.2.3.4"})
	require.NoError(t, err)
	res, err := Put[ip](context.Background(), c, srv.URL, body)
	require.NoError(t, err)

	assert.Equal(t, "ok", res.Body.Origin)
	assert.JSONEq(t, `{"content":"1.2.3.4"}`, gotBody)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "me@example.com", gotEmail)
	assert.Equal(t, "application/json", gotType)
}

func TestNewWithHeadersValidates(t *testing.T) {
	_, err := NewWithHeaders([]Header{{Name: "Authorization", Value: "Bearer tok\nX-Evil: 1", Sensitive: true}})
	require.ErrorIs(t, err, ErrInvalidHeaderValue)
	assert.NotContains(t, err.Error(), "tok")

	_, err = NewWithHeaders([]Header{{Name: "X Auth Email", Value: "me@example.com"}})
	require.ErrorIs(t, err, ErrInvalidHeaderName)
}

func TestHeaderStringRedactsSensitive(t *testing.T) {
	assert.Equal(t, "Authorization: <redacted>", Header{Name: "Authorization", Value: "Bearer tok", Sensitive: true}.String())
	assert.Equal(t, "Accept: application/json", Header{Name: "Accept", Value: "application/json"}.String())
}

func TestHeadersAreCopied(t *testing.T) {
	headers := []Header{{Name: "X-Auth-Email", Value: "me@example.com", Sensitive: true}}
	c, err := NewWithHeaders(headers)
	require.NoError(t, err)

	headers[0].Value = "changed@example.com"
	got := c.Headers()
	got[0].Value = "other@example.com"

	assert.Equal(t, "me@example.com", c.Headers()[0].Value)
}

func TestMarshalError(t *testing.T) {
	_, err := Marshal(map[string]any{"ch": make(chan int)})
	var ser *SerializationError
	assert.True(t, errors.As(err, &ser))
}
