package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names. Periodic ones are registered with the scheduler, preload
// is enqueued ad hoc after profile creation.
const (
	TypeRatingSweep  = "rating:sweep_all"
	TypeMatchArchive = "match:archive_stale"
	TypeFeedPreload  = "feed:preload"
)

type FeedPreloadPayload struct {
	UserID int `json:"user_id"`
}

func NewRatingSweepTask() *asynq.Task {
	return asynq.NewTask(TypeRatingSweep, nil)
}

func NewMatchArchiveTask() *asynq.Task {
	return asynq.NewTask(TypeMatchArchive, nil)
}

func NewFeedPreloadTask(userID int) (*asynq.Task, error) {
	payload, err := json.Marshal(FeedPreloadPayload{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preload payload: %w", err)
	}
	return asynq.NewTask(TypeFeedPreload, payload), nil
}
