package chef

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sazze/go-chef/chefauth"
)

// newTestKey generates an RSA key and its PKCS#1 PEM encoding.
func newTestKey(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	return key, pemBytes
}

// newTestClient builds a Client pointed at an httptest server.
func newTestClient(t *testing.T, server *httptest.Server, keyPEM []byte) *Client {
	t.Helper()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	client, err := NewClient(Config{
		Host:   u.Hostname(),
		Port:   port,
		UserID: "bob",
		Key:    keyPEM,
	})
	require.NoError(t, err)

	return client
}

// verifyOpsSignature reconstructs the canonical request from an incoming
// request's headers and checks the reassembled signature against pub.
func verifyOpsSignature(r *http.Request, body []byte, pub *rsa.PublicKey) error {
	var joined strings.Builder
	for n := 1; ; n++ {
		chunk := r.Header.Get(fmt.Sprintf("X-Ops-Authorization-%d", n))
		if chunk == "" {
			break
		}

		joined.WriteString(chunk)
	}

	sig, err := base64.StdEncoding.DecodeString(joined.String())
	if err != nil {
		return err
	}

	canonical := chefauth.Canonicalize(r.Method,
		chefauth.ContentHash([]byte(r.URL.EscapedPath())),
		chefauth.ContentHash(body),
		r.Header.Get(chefauth.HeaderUserID),
		r.Header.Get(chefauth.HeaderTimestamp))

	return rsa.VerifyPKCS1v15(pub, crypto.Hash(0), []byte(canonical), sig)
}

func TestNewClient(t *testing.T) {
	_, keyPEM := newTestKey(t)

	t.Run("empty host returns error", func(t *testing.T) {
		_, err := NewClient(Config{UserID: "bob", Key: keyPEM})
		assert.ErrorIs(t, err, ErrNoHost)
	})

	t.Run("empty user id returns error", func(t *testing.T) {
		_, err := NewClient(Config{Host: "chef.example.com", Key: keyPEM})
		assert.ErrorIs(t, err, ErrNoUserID)
	})

	t.Run("empty key returns error", func(t *testing.T) {
		_, err := NewClient(Config{Host: "chef.example.com", UserID: "bob"})
		assert.ErrorIs(t, err, ErrNoKey)
	})

	t.Run("malformed key returns error", func(t *testing.T) {
		_, err := NewClient(Config{
			Host:   "chef.example.com",
			UserID: "bob",
			Key:    []byte("garbage, not a PEM key"),
		})
		assert.ErrorIs(t, err, chefauth.ErrInvalidKey)
	})

	t.Run("defaults are applied", func(t *testing.T) {
		client, err := NewClient(Config{Host: "chef.example.com", UserID: "bob", Key: keyPEM})
		require.NoError(t, err)

		assert.Equal(t, DefaultPort, client.port)
		assert.Equal(t, DefaultVersion, client.version)
		assert.NotNil(t, client.httpClient)
		assert.NotNil(t, client.requestID)
	})

	t.Run("signing is delegated to the chefauth transport", func(t *testing.T) {
		client, err := NewClient(Config{Host: "chef.example.com", UserID: "bob", Key: keyPEM})
		require.NoError(t, err)

		_, ok := client.httpClient.Transport.(*chefauth.Transport)
		assert.True(t, ok)
	})

	t.Run("custom http client settings are kept", func(t *testing.T) {
		client, err := NewClient(Config{
			Host:       "chef.example.com",
			UserID:     "bob",
			Key:        keyPEM,
			HTTPClient: &http.Client{Timeout: 42 * time.Second},
		})
		require.NoError(t, err)

		assert.Equal(t, 42*time.Second, client.httpClient.Timeout)

		_, ok := client.httpClient.Transport.(*chefauth.Transport)
		assert.True(t, ok)
	})
}

func TestClientDo(t *testing.T) {
	key, keyPEM := newTestKey(t)

	t.Run("request is signed and carries client headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			assert.Equal(t, "version=1.0", r.Header.Get("X-Ops-Sign"))
			assert.Equal(t, "bob", r.Header.Get("X-Ops-UserId"))
			assert.Equal(t, DefaultVersion, r.Header.Get("X-Chef-Version"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.NoError(t, verifyOpsSignature(r, body, &key.PublicKey))

			_, err = uuid.Parse(r.Header.Get("X-Remote-Request-Id"))
			assert.NoError(t, err)

			fmt.Fprint(w, `{"ok":true}`)
		}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		doc, err := client.Do(context.Background(), http.MethodGet, "/nodes", "", nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ok": true}, doc)
	})

	t.Run("content type is set only with a body", func(t *testing.T) {
		var contentTypes []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentTypes = append(contentTypes, r.Header.Get("Content-Type"))
		}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		_, err := client.Do(context.Background(), http.MethodGet, "/nodes", "", nil)
		require.NoError(t, err)

		_, err = client.Do(context.Background(), http.MethodPost, "/data/users", "", []byte(`{"id":"x"}`))
		require.NoError(t, err)

		require.Len(t, contentTypes, 2)
		assert.Empty(t, contentTypes[0])
		assert.Equal(t, "application/json", contentTypes[1])
	})

	t.Run("query is appended to the request", func(t *testing.T) {
		var rawQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawQuery = r.URL.RawQuery
		}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		_, err := client.Do(context.Background(), http.MethodGet, "/search/node", "q=%2A%3A%2A&rows=10", nil)
		require.NoError(t, err)
		assert.Equal(t, "q=%2A%3A%2A&rows=10", rawQuery)
	})

	t.Run("non-2xx body is decoded and returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":["node not found"]}`)
		}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		doc, err := client.Do(context.Background(), http.MethodGet, "/nodes/missing", "", nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"error": []any{"node not found"}}, doc)
	})

	t.Run("empty body decodes to nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		doc, err := client.Do(context.Background(), http.MethodGet, "/nodes", "", nil)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("non-json body decodes to nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		doc, err := client.Do(context.Background(), http.MethodGet, "/nodes", "", nil)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("transport error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		client := newTestClient(t, server, keyPEM)
		server.Close()

		_, err := client.Do(context.Background(), http.MethodGet, "/nodes", "", nil)
		assert.Error(t, err)
	})

	t.Run("custom request id generator is used", func(t *testing.T) {
		var gotID string
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			gotID = r.Header.Get("X-Remote-Request-Id")
		}))
		defer server.Close()

		u, err := url.Parse(server.URL)
		require.NoError(t, err)

		port, err := strconv.Atoi(u.Port())
		require.NoError(t, err)

		client, err := NewClient(Config{
			Host:      u.Hostname(),
			Port:      port,
			UserID:    "bob",
			Key:       keyPEM,
			RequestID: func() string { return "req-42" },
		})
		require.NoError(t, err)

		_, err = client.Do(context.Background(), http.MethodGet, "/nodes", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "req-42", gotID)
	})

	t.Run("context cancellation aborts the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		defer server.Close()

		client := newTestClient(t, server, keyPEM)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Do(ctx, http.MethodGet, "/nodes", "", nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
