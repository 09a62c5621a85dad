// Package chefauth implements the Chef server request-signing protocol
// (X-Ops-Sign version 1.0).
//
// Every authenticated request carries a set of X-Ops-* headers derived
// from the request itself: a canonical string built from the HTTP method,
// the SHA-1 hash of the request path, the SHA-1 hash of the body, a UTC
// timestamp, and the calling user's identity. The canonical string is
// encrypted with the caller's RSA private key using PKCS#1 v1.5 padding
// (a raw private-key operation, not a hash-then-sign scheme), base64
// encoded, and split across numbered X-Ops-Authorization-N headers in
// 60-character chunks. The server decrypts with the registered public
// key and compares against its own reconstruction of the canonical
// string.
//
// # Signing Requests
//
// Use SignRequest to add the authentication headers to an HTTP request
// in place:
//
//	key, err := chefauth.ParseKey(pemBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = chefauth.SignRequest(req, chefauth.SignConfig{
//	    UserID: "admin",
//	    Key:    key,
//	})
//
// The request body is read and restored, so SignRequest is safe to call
// on requests whose body has not been consumed yet.
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs all outgoing
// requests automatically. Pass an *http.Transport to configure proxy,
// TLS, and timeout settings, or nil for defaults:
//
//	client := &http.Client{
//	    Transport: chefauth.NewTransport(nil, chefauth.SignConfig{
//	        UserID: "admin",
//	        Key:    key,
//	    }),
//	}
//
// # Determinism
//
// The header set is a pure function of the request and the signing
// identity except for the timestamp, which is captured exactly once per
// signing call. Fix SignConfig.Now to make signing fully deterministic,
// for example in tests.
package chefauth
