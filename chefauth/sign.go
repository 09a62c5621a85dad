package chefauth

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Header names emitted by the signer.
const (
	HeaderSign        = "X-Ops-Sign"
	HeaderUserID      = "X-Ops-UserId"
	HeaderTimestamp   = "X-Ops-Timestamp"
	HeaderContentHash = "X-Ops-Content-Hash"

	// authHeaderPrefix is the prefix of the numbered signature headers:
	// X-Ops-Authorization-1, X-Ops-Authorization-2, ...
	authHeaderPrefix = "X-Ops-Authorization-"
)

// signVersion is the protocol version advertised in X-Ops-Sign.
const signVersion = "version=1.0"

// authChunkSize is the length of each X-Ops-Authorization-N header value.
// The final chunk may be shorter.
const authChunkSize = 60

// SignConfig configures request signing.
type SignConfig struct {
	// UserID is the identity the request is signed as. Required.
	UserID string

	// Key is the RSA private key registered with the server for UserID.
	// Required. Use ParseKey to load one from PEM bytes.
	Key *rsa.PrivateKey

	// Now sets the signing timestamp. When zero, time.Now() is used.
	// The timestamp is captured once and used for both the canonical
	// request and the X-Ops-Timestamp header.
	Now time.Time
}

// Header is a single authentication header. Headers returns them as an
// ordered slice so emission order stays stable across calls.
type Header struct {
	Name  string
	Value string
}

// Headers computes the full authentication header set for one request.
// The path must not include the host or the query string.
func Headers(method, path string, body []byte, cfg SignConfig) ([]Header, error) {
	if cfg.UserID == "" {
		return nil, ErrNoUserID
	}

	if cfg.Key == nil {
		return nil, ErrNoKey
	}

	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	timestamp := now.UTC().Format(TimestampLayout)
	contentHash := ContentHash(body)

	canonical := Canonicalize(method, ContentHash([]byte(path)), contentHash, cfg.UserID, timestamp)

	sig, err := encryptCanonical(cfg.Key, []byte(canonical))
	if err != nil {
		return nil, err
	}

	headers := []Header{
		{Name: HeaderSign, Value: signVersion},
		{Name: HeaderUserID, Value: cfg.UserID},
		{Name: HeaderTimestamp, Value: timestamp},
		{Name: HeaderContentHash, Value: contentHash},
	}

	encoded := base64.StdEncoding.EncodeToString(sig)
	for i, chunk := range chunkString(encoded, authChunkSize) {
		headers = append(headers, Header{
			Name:  fmt.Sprintf("%s%d", authHeaderPrefix, i+1),
			Value: chunk,
		})
	}

	return headers, nil
}

// SignRequest signs an HTTP request in place by adding the X-Ops-*
// authentication headers. The request body is read and restored so it can
// still be sent. The hashed path is the escaped form that appears on the
// wire, since that is what the server hashes when it reconstructs the
// canonical request; the query string is excluded.
func SignRequest(r *http.Request, cfg SignConfig) error {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	path := r.URL.EscapedPath()
	if path == "" {
		path = "/"
	}

	headers, err := Headers(r.Method, path, body, cfg)
	if err != nil {
		return err
	}

	for _, h := range headers {
		r.Header.Set(h.Name, h.Value)
	}

	return nil
}

// encryptCanonical performs the raw PKCS#1 v1.5 private-key encryption of
// the canonical request. Passing crypto.Hash(0) signs the message bytes
// directly instead of a digest, which is what protocol version 1.0
// requires. The operation is deterministic for a given key and message.
func encryptCanonical(key *rsa.PrivateKey, canonical []byte) ([]byte, error) {
	sig, err := rsa.SignPKCS1v15(nil, key, crypto.Hash(0), canonical)
	if err != nil {
		if errors.Is(err, rsa.ErrMessageTooLong) {
			return nil, fmt.Errorf("%w: %v", ErrKeyTooSmall, err)
		}

		return nil, fmt.Errorf("chefauth: encrypt canonical request: %w", err)
	}

	return sig, nil
}

// chunkString splits s into consecutive chunks of at most size bytes.
func chunkString(s string, size int) []string {
	chunks := make([]string, 0, (len(s)+size-1)/size)
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}

	return append(chunks, s)
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can still be sent after signing.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
