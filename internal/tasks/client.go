package tasks

import (
	"context"
	"fmt"

	"github.com/bliinmaker/dating-bot/internal/config"
	"github.com/hibiken/asynq"
)

// Client enqueues one-off background tasks. Enqueueing happens outside any
// database transaction — the task must never block or fail the request that
// triggered it.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg *config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.GetAddr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// EnqueueFeedPreload schedules a candidate preload for a user.
func (c *Client) EnqueueFeedPreload(ctx context.Context, userID int) error {
	task, err := NewFeedPreloadTask(userID)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue preload task: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
