package outbox

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/mailer"
)

const (
	defaultPollInterval = 15 * time.Second
	defaultBatchSize    = 25
	maxAttempts         = 5
)

// Dispatcher drains the notification outbox in the background.
// Records that fail are retried with exponential backoff until
// maxAttempts, then parked as failed.
type Dispatcher struct {
	repo     repositories.IOutboxRepository
	sender   mailer.Sender
	logger   zerolog.Logger
	interval time.Duration
	batch    int64
	stop     chan struct{}
	done     chan struct{}
}

// NewDispatcher creates a dispatcher with default polling settings
func NewDispatcher(repo repositories.IOutboxRepository, sender mailer.Sender, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		sender:   sender,
		logger:   logger,
		interval: defaultPollInterval,
		batch:    defaultBatchSize,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. Call Stop to shut it down.
func (d *Dispatcher) Start() {
	go d.run()
	d.logger.Info().Dur("interval", d.interval).Msg("Notification dispatcher started")
}

// Stop halts the poll loop and waits for the in-flight batch to finish
func (d *Dispatcher) Stop() {
	close(d.stop)
	<-d.done
	d.logger.Info().Msg("Notification dispatcher stopped")
}

func (d *Dispatcher) run() {
	defer close(d.done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.drainOnce()
		}
	}
}

// drainOnce sends one batch of due notifications
func (d *Dispatcher) drainOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), d.interval)
	defer cancel()

	due, err := d.repo.FetchDue(ctx, d.batch)
	if err != nil {
		d.logger.Error().Err(err).Msg("Failed to fetch due notifications")
		return
	}

	for _, n := range due {
		msg, err := mailer.BuildMessage(n)
		if err != nil {
			// Unknown template, nothing a retry can fix
			d.logger.Error().Err(err).Str("key", n.Key).Msg("Failed to render notification")
			_ = d.repo.MarkFailed(ctx, n.ID, n.Attempts+1, err.Error(), time.Now().UTC(), true)
			continue
		}

		if err := d.sender.Send(ctx, msg); err != nil {
			attempts := n.Attempts + 1
			terminal := attempts >= maxAttempts
			next := time.Now().UTC().Add(backoff(attempts))
			d.logger.Warn().
				Err(err).
				Str("key", n.Key).
				Int("attempts", attempts).
				Bool("terminal", terminal).
				Msg("Failed to send notification")
			if err := d.repo.MarkFailed(ctx, n.ID, attempts, err.Error(), next, terminal); err != nil {
				d.logger.Error().Err(err).Str("key", n.Key).Msg("Failed to record notification failure")
			}
			continue
		}

		if err := d.repo.MarkSent(ctx, n.ID, time.Now().UTC()); err != nil {
			d.logger.Error().Err(err).Str("key", n.Key).Msg("Failed to mark notification sent")
			continue
		}
		d.logger.Info().
			Str("key", n.Key).
			Str("recipient", n.Recipient).
			Str("template", string(n.Template)).
			Msg("Notification sent")
	}
}

// backoff grows 1m, 2m, 4m, 8m per attempt
func backoff(attempts int) time.Duration {
	d := time.Minute
	for i := 1; i < attempts; i++ {
		d *= 2
	}
	if d > 30*time.Minute {
		d = 30 * time.Minute
	}
	return d
}
