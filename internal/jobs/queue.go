package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hibiken/asynq"
)

const TaskWarmAssets = "assets:warm"

// Queue wraps the asynq client/server pair. It is optional infrastructure: a
// nil *Queue means no Redis was configured and background warming is off.
type Queue struct {
	client    *asynq.Client
	server    *asynq.Server
	mux       *asynq.ServeMux
	inspector *asynq.Inspector
}

func NewQueue(redisAddr string) *Queue {
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	return &Queue{
		client:    asynq.NewClient(redisOpt),
		server:    server,
		mux:       asynq.NewServeMux(),
		inspector: asynq.NewInspector(redisOpt),
	}
}

func isTaskConflict(err error) bool {
	if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "task ID conflicts") || strings.Contains(msg, "duplicate task")
}

// EnqueueUnique enqueues a task with a deterministic TaskID so the same
// folder cannot be warming twice. A lingering completed task with the same ID
// is cleared and the enqueue retried; an actively running duplicate is
// silently skipped.
func (q *Queue) EnqueueUnique(taskType string, payload interface{}, uniqueID string, opts ...asynq.Option) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	opts = append(opts, asynq.TaskID(uniqueID))
	task := asynq.NewTask(taskType, data, opts...)
	info, err := q.client.Enqueue(task)
	if err == nil {
		return info.ID, nil
	}
	if !isTaskConflict(err) {
		return "", fmt.Errorf("enqueue: %w", err)
	}

	if delErr := q.inspector.DeleteTask("default", uniqueID); delErr == nil {
		log.Printf("Queue: cleared stale task %s", uniqueID)
		if info, err = q.client.Enqueue(task); err == nil {
			return info.ID, nil
		}
	}
	if isTaskConflict(err) {
		log.Printf("Queue: task %s (%s) already active, skipping", taskType, uniqueID)
		return uniqueID, nil
	}
	return "", fmt.Errorf("enqueue: %w", err)
}

func (q *Queue) RegisterHandler(taskType string, handler asynq.Handler) {
	q.mux.Handle(taskType, handler)
}

func (q *Queue) Start() error {
	log.Println("Job queue worker starting...")
	return q.server.Start(q.mux)
}

func (q *Queue) Stop() {
	q.server.Shutdown()
	q.client.Close()
	q.inspector.Close()
}
