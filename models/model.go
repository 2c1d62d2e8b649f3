package models

import "context"

// Model is a chat completion backend.
//
// Stream_Model_Request returns a non-nil error when the stream could not be
// started at all (connection, auth, invalid request). After a successful start
// deltas arrive on the first channel in backend order; a failure mid-stream is
// reported on the error channel, which is buffered and closed with the delta
// channel.
type Model interface {
	Model_Request(ctx context.Context, request Model_Request) (Model_Response, error)
	Stream_Model_Request(ctx context.Context, request Model_Request) (<-chan Model_Delta, <-chan error, error)
}
