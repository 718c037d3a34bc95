package queue

import "context"

// Job handles the messages of one type.
type Job interface {
	Name() string
	Type() string
	Handle(ctx context.Context, payload []byte) error
}
