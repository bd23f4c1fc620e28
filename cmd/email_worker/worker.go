package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/oksasatya/go-article-cms/pkg/mailer"
)

type worker struct {
	logger  *logrus.Logger
	sender  mailer.Sender
	limiter *rate.Limiter
	timeout time.Duration
}

func newWorker(logger *logrus.Logger, s mailer.Sender, perSec int) *worker {
	lim := rate.NewLimiter(rate.Inf, 0)
	if perSec > 0 {
		lim = rate.NewLimiter(rate.Limit(perSec), perSec)
	}
	return &worker{logger: logger, sender: s, limiter: lim, timeout: 15 * time.Second}
}

// handle acks on success, drops jobs that can never be sent, and requeues jobs whose
// delivery failed.
func (w *worker) handle(ctx context.Context, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil || job.To == "" {
		w.logger.WithError(err).Warn("bad email job; dropping")
		_ = msg.Nack(false, false)
		return
	}

	if err := w.limiter.Wait(ctx); err != nil {
		// shutting down; leave the job for the next consumer
		_ = msg.Nack(false, true)
		return
	}

	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := mailer.Process(c, w.sender, job); err != nil {
		var rerr *mailer.RenderError
		requeue := !errors.As(err, &rerr)
		w.logger.WithError(err).WithFields(logrus.Fields{"template": job.Template, "requeue": requeue}).Error("email job failed")
		_ = msg.Nack(false, requeue)
		return
	}
	_ = msg.Ack(false)
}
