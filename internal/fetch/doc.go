// Package fetch provides the HTTP page fetcher used by the collection pipeline.
//
// The fetcher retrieves raw markup for a URL with a request timeout, a
// browser-style User-Agent, and retry with exponential backoff for transient
// failures. A fixed politeness delay is applied after every request, success
// or failure, so consecutive fetches never hammer the source site. Failures
// are reported as a typed Error carrying the failure kind (timeout, HTTP
// status, or network) so callers can treat any of them as a missing page.
package fetch
