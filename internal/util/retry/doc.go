// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable attempts,
// delays and a retryable-error classifier. It wraps S3 uploads during
// assembly publishing, where throttling and connection resets are expected.
package retry
