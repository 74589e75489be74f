package queue

import (
	"tennismate-api/core/config"
	"tennismate-api/core/logger"

	"github.com/hibiken/asynq"
)

// Worker owns the asynq server that drains the fan-out queue.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewWorker(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *Worker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency: queueCfg.Concurrency,
		},
	)

	return &Worker{srv: srv, mux: asynq.NewServeMux()}
}

// Handle registers a handler for a task type. Wiring happens in server
// startup after the module services exist.
func (w *Worker) Handle(taskType string, handler asynq.HandlerFunc) {
	w.mux.HandleFunc(taskType, handler)
}

// Start runs the worker loop; blocks until Shutdown.
func (w *Worker) Start() error {
	logger.Info("Queue worker starting")
	return w.srv.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
