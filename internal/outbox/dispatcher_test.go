package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/pkg/mailer"
)

type stubOutboxRepo struct {
	due    []models.Notification
	sent   []primitive.ObjectID
	failed []struct {
		ID       primitive.ObjectID
		Attempts int
		Next     time.Time
		Terminal bool
	}
}

func (r *stubOutboxRepo) Enqueue(_ context.Context, n *models.Notification) error {
	r.due = append(r.due, *n)
	return nil
}

func (r *stubOutboxRepo) FetchDue(_ context.Context, limit int64) ([]models.Notification, error) {
	if int64(len(r.due)) < limit {
		limit = int64(len(r.due))
	}
	return r.due[:limit], nil
}

func (r *stubOutboxRepo) MarkSent(_ context.Context, id primitive.ObjectID, _ time.Time) error {
	r.sent = append(r.sent, id)
	return nil
}

func (r *stubOutboxRepo) MarkFailed(_ context.Context, id primitive.ObjectID, attempts int, _ string, next time.Time, terminal bool) error {
	r.failed = append(r.failed, struct {
		ID       primitive.ObjectID
		Attempts int
		Next     time.Time
		Terminal bool
	}{id, attempts, next, terminal})
	return nil
}

type stubSender struct {
	err  error
	sent []mailer.Message
}

func (s *stubSender) Send(_ context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func pendingNotification() models.Notification {
	return models.Notification{
		ID:        primitive.NewObjectID(),
		Key:       "otp:new@example.com:482913",
		Template:  models.TemplateOTP,
		Recipient: "new@example.com",
		Subject:   "Your verification code",
		Payload:   map[string]string{"code": "482913"},
	}
}

func TestDrainOnceSends(t *testing.T) {
	repo := &stubOutboxRepo{due: []models.Notification{pendingNotification()}}
	sender := &stubSender{}
	d := NewDispatcher(repo, sender, zerolog.Nop())

	d.drainOnce()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "new@example.com", sender.sent[0].ToEmail)
	assert.Len(t, repo.sent, 1)
	assert.Empty(t, repo.failed)
}

func TestDrainOnceRetriesWithBackoff(t *testing.T) {
	n := pendingNotification()
	n.Attempts = 1
	repo := &stubOutboxRepo{due: []models.Notification{n}}
	sender := &stubSender{err: errors.New("smtp unavailable")}
	d := NewDispatcher(repo, sender, zerolog.Nop())

	before := time.Now().UTC()
	d.drainOnce()

	require.Len(t, repo.failed, 1)
	failure := repo.failed[0]
	assert.Equal(t, 2, failure.Attempts)
	assert.False(t, failure.Terminal)
	// second attempt backs off two minutes
	assert.WithinDuration(t, before.Add(2*time.Minute), failure.Next, 5*time.Second)
}

func TestDrainOnceParksAfterMaxAttempts(t *testing.T) {
	n := pendingNotification()
	n.Attempts = 4
	repo := &stubOutboxRepo{due: []models.Notification{n}}
	sender := &stubSender{err: errors.New("smtp unavailable")}
	d := NewDispatcher(repo, sender, zerolog.Nop())

	d.drainOnce()

	require.Len(t, repo.failed, 1)
	assert.Equal(t, 5, repo.failed[0].Attempts)
	assert.True(t, repo.failed[0].Terminal)
}

func TestDrainOnceUnknownTemplateIsTerminal(t *testing.T) {
	n := pendingNotification()
	n.Template = "carrier-pigeon"
	repo := &stubOutboxRepo{due: []models.Notification{n}}
	sender := &stubSender{}
	d := NewDispatcher(repo, sender, zerolog.Nop())

	d.drainOnce()

	assert.Empty(t, sender.sent)
	require.Len(t, repo.failed, 1)
	assert.True(t, repo.failed[0].Terminal)
}

func TestBackoffCap(t *testing.T) {
	assert.Equal(t, time.Minute, backoff(1))
	assert.Equal(t, 2*time.Minute, backoff(2))
	assert.Equal(t, 8*time.Minute, backoff(4))
	assert.Equal(t, 30*time.Minute, backoff(10))
}

func TestStartStop(t *testing.T) {
	repo := &stubOutboxRepo{}
	d := NewDispatcher(repo, &stubSender{}, zerolog.Nop())
	d.interval = 10 * time.Millisecond

	d.Start()
	time.Sleep(30 * time.Millisecond)
	d.Stop()
}
