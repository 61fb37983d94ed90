package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanFreecss/celebrity-salon/internal/metrics"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultMaxAttempts = 3
	retryQueueSize     = 100
)

type job struct {
	msg     Message
	attempt int
}

// Notifier delivers a message once inline and hands failures to a bounded
// background retry queue. Delivery never fails the caller.
type Notifier struct {
	sender      Sender
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration

	retries chan job
	once    sync.Once
	stop    chan struct{}
	done    chan struct{}
}

type Options struct {
	Timeout     time.Duration
	MaxAttempts int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
}

func NewNotifier(sender Sender, opts Options) *Notifier {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 2 * time.Second
	}

	n := &Notifier{
		sender:      sender,
		timeout:     opts.Timeout,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
		retries:     make(chan job, retryQueueSize),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	go n.worker()
	return n
}

// Deliver reports whether the first attempt succeeded.
func (n *Notifier) Deliver(ctx context.Context, msg Message) bool {
	if err := n.attempt(ctx, msg); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":       msg.Kind,
			"booking_id": msg.BookingID,
		}).Warn("notification failed, queued for retry")
		n.enqueue(job{msg: msg, attempt: 1})
		return false
	}
	return true
}

func (n *Notifier) attempt(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.sender.Send(ctx, msg); err != nil {
		metrics.Notifications.WithLabelValues(msg.Kind, "failed").Inc()
		return err
	}
	metrics.Notifications.WithLabelValues(msg.Kind, "sent").Inc()
	return nil
}

func (n *Notifier) enqueue(j job) {
	if j.attempt >= n.maxAttempts {
		logrus.WithFields(logrus.Fields{
			"kind":       j.msg.Kind,
			"booking_id": j.msg.BookingID,
			"attempts":   j.attempt,
		}).Error("notification dropped: max attempts reached")
		return
	}
	select {
	case <-n.stop:
		logrus.WithField("booking_id", j.msg.BookingID).Warn("notifier stopped, dropping retry")
	case n.retries <- j:
	default:
		logrus.WithField("booking_id", j.msg.BookingID).Warn("notification retry queue full, dropping")
	}
}

func (n *Notifier) worker() {
	defer close(n.done)
	for {
		select {
		case <-n.stop:
			return
		case j := <-n.retries:
			timer := time.NewTimer(n.backoff * time.Duration(j.attempt))
			select {
			case <-n.stop:
				timer.Stop()
				return
			case <-timer.C:
			}
			j.attempt++
			if err := n.attempt(context.Background(), j.msg); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"kind":       j.msg.Kind,
					"booking_id": j.msg.BookingID,
					"attempt":    j.attempt,
				}).Warn("notification retry failed")
				n.enqueue(j)
			}
		}
	}
}

// Pending returns the number of queued retries.
func (n *Notifier) Pending() int {
	return len(n.retries)
}

// Close stops the retry worker. Queued retries are abandoned.
func (n *Notifier) Close() {
	n.once.Do(func() { close(n.stop) })
	<-n.done
}
