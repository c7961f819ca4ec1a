// Package client is a request-level HTTP client built on the transfer
// layer. A [Client] owns one transfer handle, resets it after every call
// and maps engine failures to [TransferError].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//	defer c.Close()
//
// # Making Requests
//
// Construct a [URL] and [Request], then execute it with [Client.Exec] for
// the raw response or [Client.Do] for status checking and JSON decoding:
//
//	req, err := client.NewRequest(http.MethodGet, client.URL("https", "api.example.com", "/v1/resource"))
//	err = c.Do(ctx, req, http.StatusOK, client.WithDestination(&result))
//
// # Downloading Files
//
// Stream a response body directly to disk with optional checksum
// verification and progress reporting:
//
//	err = c.Download(ctx, req, http.StatusOK, "/tmp/file.bin",
//		client.WithChecksum(sha256.New(), expectedHex),
//		client.WithProgress(),
//	)
//
// Several files can be fetched concurrently with [Client.DownloadAll],
// which runs each job on its own clone of the Client.
//
// A Client serializes its calls. Use [Client.Clone] for parallel work.
package client
