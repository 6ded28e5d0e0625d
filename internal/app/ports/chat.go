package ports

import (
	"context"

	"gotwitcher/internal/app/domain/message"
)

type ChatPort interface {
	SetChannel(channel string) error
	Channel() string
	SendMessage(text string) error
	NextMessage(ctx context.Context) (message.TaggedMessage, error)
	ProcessForever()
	Shutdown()
}

type QueuePort[T any] interface {
	Put(val T) bool
	Get(ctx context.Context) (T, error)
	TryGet() (T, bool)
	Len() int
}
