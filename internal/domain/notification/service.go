package notification

import "context"

// Service accepts events for asynchronous delivery. Publish never blocks the
// caller on network I/O and never returns an error; a full queue drops the
// event with a log line.
type Service interface {
	Publish(ctx context.Context, event Event)
	Close()
}
