// Package chef is a client for the Chef server HTTP API: node, role,
// cookbook, and data-bag inventory plus search.
//
// Every request is authenticated with the X-Ops-Sign version 1.0 protocol
// implemented by the chefauth package: the method, hashed path, body hash,
// timestamp, and user identity are canonicalized, encrypted with the
// caller's RSA private key, and split across numbered headers.
//
// # Creating a Client
//
//	key, err := os.ReadFile("client.pem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := chef.NewClient(chef.Config{
//	    Host:   "chef.example.com",
//	    UserID: "admin",
//	    Key:    key,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	nodes, err := client.Nodes(ctx)
//
// A Client is safe for concurrent use. Configuration is immutable after
// NewClient; every request computes its timestamp, hashes, and signature
// fresh.
//
// # Responses
//
// The server speaks JSON, but responses are intentionally schema-free:
// every resource method returns the decoded document as a generic
// map/slice/scalar tree. An empty or non-JSON response body decodes to
// nil without error — the server reports failures in the body, and the
// body is returned as-is regardless of HTTP status, so callers must
// inspect the decoded content to detect server-side errors. This
// lenient passthrough is deliberate.
//
// # Search
//
// Search supports the server's query syntax plus an optional client-side
// sort by any field found anywhere in each result row:
//
//	result, err := client.Search(ctx, "node", "role:webserver", chef.SearchOptions{
//	    SortBy: "fqdn",
//	})
//
// # Credentials Files
//
// LoadConfig reads a YAML credentials file as a convenience alternative
// to building a Config in code:
//
//	host: chef.example.com
//	port: 4000
//	user_id: admin
//	key_file: /etc/chef/client.pem
package chef
