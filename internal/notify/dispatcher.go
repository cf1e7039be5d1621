package notify

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mapsee-lab/placesync/internal/domain"
	"github.com/mapsee-lab/placesync/internal/logger"
	"github.com/mapsee-lab/placesync/internal/metrics"
)

// RecipientStore is the slice of persistence the dispatcher needs.
type RecipientStore interface {
	ListUnnotified(ctx context.Context, contentID uuid.UUID) ([]domain.ContentRecipient, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
}

// Result summarizes one fan-out pass.
type Result struct {
	Attempted int
	Sent      int
	Failed    int
}

// Dispatcher fans a completion notice out to every unnotified recipient
// of a content item. Each recipient gets exactly one attempt per pass; a
// failed recipient keeps notified=false and is retried by the next
// reprocessing pass.
type Dispatcher struct {
	recipients    RecipientStore
	sender        Sender
	sendTimeout   time.Duration
	maxConcurrent int64
	metrics       *metrics.Metrics
	logger        logger.Logger
}

func NewDispatcher(
	recipients RecipientStore,
	sender Sender,
	sendTimeout time.Duration,
	maxConcurrent int,
	m *metrics.Metrics,
	log logger.Logger,
) *Dispatcher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Dispatcher{
		recipients:    recipients,
		sender:        sender,
		sendTimeout:   sendTimeout,
		maxConcurrent: int64(maxConcurrent),
		metrics:       m,
		logger:        log,
	}
}

// Dispatch notifies all unnotified recipients of the content. A single
// recipient failing delivery never blocks the others; the pass joins on
// every attempt before returning counts. The returned error covers only
// the recipient listing, not individual deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, content *domain.Content, placeCount int) (Result, error) {
	recipients, err := d.recipients.ListUnnotified(ctx, content.ID)
	if err != nil {
		return Result{}, fmt.Errorf("list recipients: %w", err)
	}

	if len(recipients) == 0 {
		d.logger.Info("No unnotified recipients",
			logger.String("content_id", content.ID.String()),
		)
		return Result{}, nil
	}

	notice := ComposeCompletionNotice(content, placeCount)

	d.logger.Info("Dispatching completion notices",
		logger.String("content_id", content.ID.String()),
		logger.Int("recipient_count", len(recipients)),
		logger.Int("place_count", placeCount),
	)

	passStart := time.Now()
	sem := semaphore.NewWeighted(d.maxConcurrent)
	var group errgroup.Group
	var sent atomic.Int64

	for _, recipient := range recipients {
		recipient := recipient
		if acquireErr := sem.Acquire(ctx, 1); acquireErr != nil {
			break
		}

		group.Go(func() error {
			defer sem.Release(1)
			d.notifyOne(ctx, notice, recipient, &sent)
			return nil
		})
	}

	_ = group.Wait()

	result := Result{
		Attempted: len(recipients),
		Sent:      int(sent.Load()),
	}
	result.Failed = result.Attempted - result.Sent

	if d.metrics != nil {
		d.metrics.NotificationsSent.Add(float64(result.Sent))
		d.metrics.NotificationsFailed.Add(float64(result.Failed))
		d.metrics.FanOutDuration.Observe(time.Since(passStart).Seconds())
	}

	d.logger.Info("Completion notices dispatched",
		logger.String("content_id", content.ID.String()),
		logger.Int("sent", result.Sent),
		logger.Int("failed", result.Failed),
	)
	return result, nil
}

func (d *Dispatcher) notifyOne(ctx context.Context, notice Notice, recipient domain.ContentRecipient, sent *atomic.Int64) {
	notice.MemberID = recipient.MemberID

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if sendErr := d.sender.Send(sendCtx, notice); sendErr != nil {
		d.logger.Error("Failed to send completion notice",
			logger.String("content_id", recipient.ContentID.String()),
			logger.String("member_id", recipient.MemberID.String()),
			logger.Error(sendErr),
		)
		return
	}

	// The flag only flips after a confirmed delivery.
	if markErr := d.recipients.MarkNotified(ctx, recipient.ID); markErr != nil {
		d.logger.Error("Failed to mark recipient notified",
			logger.String("content_id", recipient.ContentID.String()),
			logger.String("member_id", recipient.MemberID.String()),
			logger.Error(markErr),
		)
		return
	}

	sent.Add(1)
}
