package azure

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/rs/zerolog"

	"github.com/uxland/go-azure-storage/shared"
)

type messagesClient interface {
	EnqueueMessage(ctx context.Context, content string, o *azqueue.EnqueueMessageOptions) (azqueue.EnqueueMessagesResponse, error)
	DequeueMessages(ctx context.Context, o *azqueue.DequeueMessagesOptions) (azqueue.DequeueMessagesResponse, error)
	DeleteMessage(ctx context.Context, messageID string, popReceipt string, o *azqueue.DeleteMessageOptions) (azqueue.DeleteMessageResponse, error)
	UpdateMessage(ctx context.Context, messageID string, popReceipt string, content string, o *azqueue.UpdateMessageOptions) (azqueue.UpdateMessageResponse, error)
	ClearMessages(ctx context.Context, o *azqueue.ClearMessagesOptions) (azqueue.ClearMessagesResponse, error)
}

// QueueManager wraps a queue client with duration-based options and the
// shared Message shape.
type QueueManager struct {
	client messagesClient
	logger zerolog.Logger
}

type QueueOption func(*QueueManager)

func WithQueueLogger(logger zerolog.Logger) QueueOption {
	return func(m *QueueManager) { m.logger = logger }
}

func NewQueueManager(client *azqueue.QueueClient, options ...QueueOption) *QueueManager {
	m := &QueueManager{client: client, logger: zerolog.Nop()}
	for _, option := range options {
		option(m)
	}
	return m
}

// Enqueue adds a message. Zero timeToLive keeps the service default of
// 7 days; zero visibilityDelay makes the message visible immediately.
func (m *QueueManager) Enqueue(ctx context.Context, content string, timeToLive, visibilityDelay time.Duration) (shared.Message, error) {
	options := &azqueue.EnqueueMessageOptions{}
	if timeToLive > 0 {
		options.TimeToLive = to.Ptr(int32(timeToLive / time.Second))
	}
	if visibilityDelay > 0 {
		options.VisibilityTimeout = to.Ptr(int32(visibilityDelay / time.Second))
	}
	resp, err := m.client.EnqueueMessage(ctx, content, options)
	if err != nil {
		return shared.Message{}, err
	}
	message := shared.Message{Content: content}
	if len(resp.Messages) > 0 {
		enqueued := resp.Messages[0]
		if enqueued.MessageID != nil {
			message.ID = *enqueued.MessageID
		}
		if enqueued.PopReceipt != nil {
			message.PopReceipt = *enqueued.PopReceipt
		}
		if enqueued.InsertionTime != nil {
			message.InsertedAt = *enqueued.InsertionTime
		}
		if enqueued.ExpirationTime != nil {
			message.ExpiresAt = *enqueued.ExpirationTime
		}
		if enqueued.TimeNextVisible != nil {
			message.NextVisibleAt = *enqueued.TimeNextVisible
		}
	}
	m.logger.Debug().Str("messageID", message.ID).Msg("message enqueued")
	return message, nil
}

// Dequeue fetches up to maxMessages messages, hiding them from other
// consumers for the visibility window.
func (m *QueueManager) Dequeue(ctx context.Context, maxMessages int32, visibility time.Duration) ([]shared.Message, error) {
	options := &azqueue.DequeueMessagesOptions{}
	if maxMessages > 0 {
		options.NumberOfMessages = to.Ptr(maxMessages)
	}
	if visibility > 0 {
		options.VisibilityTimeout = to.Ptr(int32(visibility / time.Second))
	}
	resp, err := m.client.DequeueMessages(ctx, options)
	if err != nil {
		return nil, err
	}
	messages := make([]shared.Message, 0, len(resp.Messages))
	for _, dequeued := range resp.Messages {
		if dequeued == nil {
			continue
		}
		message := shared.Message{}
		if dequeued.MessageID != nil {
			message.ID = *dequeued.MessageID
		}
		if dequeued.PopReceipt != nil {
			message.PopReceipt = *dequeued.PopReceipt
		}
		if dequeued.MessageText != nil {
			message.Content = *dequeued.MessageText
		}
		if dequeued.DequeueCount != nil {
			message.DequeueCount = *dequeued.DequeueCount
		}
		if dequeued.InsertionTime != nil {
			message.InsertedAt = *dequeued.InsertionTime
		}
		if dequeued.ExpirationTime != nil {
			message.ExpiresAt = *dequeued.ExpirationTime
		}
		if dequeued.TimeNextVisible != nil {
			message.NextVisibleAt = *dequeued.TimeNextVisible
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (m *QueueManager) Delete(ctx context.Context, message shared.Message) error {
	_, err := m.client.DeleteMessage(ctx, message.ID, message.PopReceipt, nil)
	return err
}

// Update replaces the message content and resets its visibility window,
// returning the message with its fresh pop receipt.
func (m *QueueManager) Update(ctx context.Context, message shared.Message, content string, visibility time.Duration) (shared.Message, error) {
	options := &azqueue.UpdateMessageOptions{}
	if visibility > 0 {
		options.VisibilityTimeout = to.Ptr(int32(visibility / time.Second))
	}
	resp, err := m.client.UpdateMessage(ctx, message.ID, message.PopReceipt, content, options)
	if err != nil {
		return shared.Message{}, err
	}
	message.Content = content
	if resp.PopReceipt != nil {
		message.PopReceipt = *resp.PopReceipt
	}
	if resp.TimeNextVisible != nil {
		message.NextVisibleAt = *resp.TimeNextVisible
	}
	return message, nil
}

func (m *QueueManager) Clear(ctx context.Context) error {
	_, err := m.client.ClearMessages(ctx, nil)
	return err
}
