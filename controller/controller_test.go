package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Septrum101/cfddns/config"
)

type fakeAPI struct {
	mu      sync.Mutex
	content string
	puts    int
	pushes  []map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/ip":
		io.WriteString(w, `{"origin":"1.2.3.4"}`)
	case r.URL.Path == "/push":
		var body map[string]string
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &body)
		f.pushes = append(f.pushes, body)
		io.WriteString(w, `{"code":200,"msg":"ok"}`)
	case r.URL.Path == "/client/v4/user/tokens/verify":
		io.WriteString(w, `{"success":true,"errors":[],"messages":[],"result":{"id":"t1","status":"active"}}`)
	case r.URL.Path == "/client/v4/zones":
		io.WriteString(w, `{"result":[{"id":"z1","name":"example.com"}]}`)
	case r.URL.Path == "/client/v4/zones/z1/dns_records" && r.Method == http.MethodGet:
		io.WriteString(w, `{"result":[{"id":"r1","content":"`+f.content+`","name":"example.com","type":"A"}]}`)
	case strings.HasPrefix(r.URL.Path, "/client/v4/zones/z1/dns_records/r1") && r.Method == http.MethodPut:
		f.puts++
		var body map[string]any
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &body)
		f.content, _ = body["content"].(string)
		io.WriteString(w, `{"result":{"id":"r1","content":"`+f.content+`","name":"example.com","type":"A"}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestServer(t *testing.T, api *fakeAPI) *Server {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	s, err := New(&config.Config{
		LogLevel:    "debug",
		CheckIPURL:  srv.URL + "/ip",
		APIBaseURL:  srv.URL + "/client/v4",
		VerifyToken: true,
		Domain:      config.Input{Value: "example.com"},
		Email:       config.Input{Value: "me@example.com"},
		Token:       config.Input{Value: "tok"},
		Notify: &config.Notify{
			Enable:   true,
			PushPlus: &config.PushPlus{Token: "pp", APIHost: srv.URL + "/push"},
		},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestRunOnceUpdatesAndNotifies(t *testing.T) {
	api := &fakeAPI{content: "9.9.9.9"}
	s := newTestServer(t, api)

	res, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, 1, api.puts)
	require.Len(t, api.pushes, 1)
	assert.Equal(t, "example.com", api.pushes[0]["title"])
	assert.Equal(t, "IP changed: 1.2.3.4", api.pushes[0]["content"])

	// nothing changes on the second run, so nothing is pushed
	res, err = s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, 1, api.puts)
	assert.Len(t, api.pushes, 1)
}

func TestRunOnceDoesNotOverlap(t *testing.T) {
	s := newTestServer(t, &fakeAPI{content: "9.9.9.9"})
	s.cronRunning.Store(true)

	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestRunOnceWrapsErrorWithDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s, err := New(&config.Config{
		LogLevel:   "info",
		CheckIPURL: srv.URL,
		APIBaseURL: srv.URL,
		Domain:     config.Input{Value: "example.com"},
		Email:      config.Input{Value: "me@example.com"},
		Token:      config.Input{Value: "tok"},
	})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.RunOnce(context.Background())
	assert.ErrorContains(t, err, "[example.com]")
}

func TestNewRejectsBadLogLevel(t *testing.T) {
	_, err := New(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestNewFailsOnMissingCredentialFile(t *testing.T) {
	_, err := New(&config.Config{
		LogLevel: "info",
		Domain:   config.Input{Value: "example.com"},
		Email:    config.Input{Value: "me@example.com"},
		Token:    config.Input{File: "/nonexistent/token"},
	})
	assert.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestStartRequiresInterval(t *testing.T) {
	s := newTestServer(t, &fakeAPI{content: "1.2.3.4"})
	assert.Error(t, s.Start())
}

func TestCronLoggerUsesLogrus(t *testing.T) {
	var buf bytes.Buffer
	out, level := log.StandardLogger().Out, log.GetLevel()
	log.SetOutput(&buf)
	log.SetLevel(log.InfoLevel)
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetLevel(level)
	})

	cronLogger.Info("skip")
	assert.Contains(t, buf.String(), "skip")
	assert.Contains(t, buf.String(), "level=info")
}
