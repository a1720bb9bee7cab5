package broadcast

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"

	"ph-jobfinder-bot/internal/models"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent    []sentMessage
	failFor map[int64]error
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	var chatID int64
	if id, ok := to.(tele.ChatID); ok {
		chatID = int64(id)
	}
	if err, ok := f.failFor[chatID]; ok {
		return nil, err
	}
	text, _ := what.(string)
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return &tele.Message{}, nil
}

type fakeStore struct {
	subscribers  []models.Subscriber
	unsubscribed []int64
}

func (f *fakeStore) GetSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	return f.subscribers, nil
}

func (f *fakeStore) SetSubscribed(ctx context.Context, userID int64, subscribed bool) error {
	if !subscribed {
		f.unsubscribed = append(f.unsubscribed, userID)
	}
	return nil
}

func newTestBroadcaster(sender *fakeSender, store *fakeStore, groupChatID int64) *Broadcaster {
	b := New(sender, store, groupChatID, zap.NewNop())
	b.pace = time.Millisecond
	return b
}

func makeJobs(n int, category models.Category) []models.JobPosting {
	jobs := make([]models.JobPosting, n)
	for i := range jobs {
		jobs[i] = models.JobPosting{
			Title:    "Customer Service Representative",
			Company:  "Acme BPO",
			Link:     "https://example.com/job/" + string(rune('a'+i)),
			Category: category,
			Location: "Manila",
			Source:   "Indeed PH",
		}
	}
	return jobs
}

func TestBroadcastEmptyIsNoOp(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{subscribers: []models.Subscriber{
		{UserID: 1, Subscribed: true, Filters: models.FilterAll},
	}}

	core, logs := observer.New(zapcore.DebugLevel)
	b := New(sender, store, -100, zap.New(core))
	b.pace = time.Millisecond

	summary := b.Broadcast(context.Background(), nil)

	if len(sender.sent) != 0 {
		t.Fatalf("expected no messages, got %d", len(sender.sent))
	}
	if summary.GroupSent || summary.UsersNotified != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if logs.FilterMessage("no new jobs, skipping broadcast").Len() != 1 {
		t.Error("empty batch skip was not logged")
	}
}

func TestBroadcastSendsGroupAndSubscribers(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{subscribers: []models.Subscriber{
		{UserID: 10, Subscribed: true, Filters: models.FilterAll},
		{UserID: 20, Subscribed: true, Filters: models.FilterAll},
	}}

	jobs := makeJobs(3, models.CategoryCallCenterBPO)
	summary := newTestBroadcaster(sender, store, -100).Broadcast(context.Background(), jobs)

	if !summary.GroupSent {
		t.Error("group digest not sent")
	}
	if summary.UsersNotified != 2 {
		t.Errorf("users notified = %d, want 2", summary.UsersNotified)
	}
	if len(sender.sent) != 3 {
		t.Fatalf("messages sent = %d, want 3", len(sender.sent))
	}
	if sender.sent[0].chatID != -100 {
		t.Errorf("first message went to %d, want group -100", sender.sent[0].chatID)
	}
}

func TestBroadcastSkipsGroupWhenUnconfigured(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}

	summary := newTestBroadcaster(sender, store, 0).Broadcast(context.Background(), makeJobs(1, models.CategoryITTech))

	if summary.GroupSent {
		t.Error("group digest sent despite no group configured")
	}
	if len(sender.sent) != 0 {
		t.Errorf("messages sent = %d, want 0", len(sender.sent))
	}
}

func TestBroadcastHonorsCategoryFilter(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{subscribers: []models.Subscriber{
		{UserID: 10, Subscribed: true, Filters: string(models.CategoryITTech)},
		{UserID: 20, Subscribed: true, Filters: string(models.CategoryHealthcare)},
	}}

	jobs := makeJobs(2, models.CategoryITTech)
	summary := newTestBroadcaster(sender, store, 0).Broadcast(context.Background(), jobs)

	if summary.UsersNotified != 1 {
		t.Fatalf("users notified = %d, want 1", summary.UsersNotified)
	}
	if sender.sent[0].chatID != 10 {
		t.Errorf("notified user %d, want 10", sender.sent[0].chatID)
	}
}

func TestBroadcastUnsubscribesBlockedUsers(t *testing.T) {
	sender := &fakeSender{failFor: map[int64]error{
		10: tele.ErrBlockedByUser,
	}}
	store := &fakeStore{subscribers: []models.Subscriber{
		{UserID: 10, Subscribed: true, Filters: models.FilterAll},
		{UserID: 20, Subscribed: true, Filters: models.FilterAll},
	}}

	summary := newTestBroadcaster(sender, store, 0).Broadcast(context.Background(), makeJobs(1, models.CategoryGeneral))

	if summary.Unsubscribed != 1 {
		t.Errorf("unsubscribed = %d, want 1", summary.Unsubscribed)
	}
	if summary.UsersNotified != 1 {
		t.Errorf("users notified = %d, want 1", summary.UsersNotified)
	}
	if len(store.unsubscribed) != 1 || store.unsubscribed[0] != 10 {
		t.Errorf("store unsubscribed = %v, want [10]", store.unsubscribed)
	}
}

func TestBroadcastKeepsSubscribersOnTransientFailure(t *testing.T) {
	sender := &fakeSender{failFor: map[int64]error{
		10: context.DeadlineExceeded,
	}}
	store := &fakeStore{subscribers: []models.Subscriber{
		{UserID: 10, Subscribed: true, Filters: models.FilterAll},
	}}

	summary := newTestBroadcaster(sender, store, 0).Broadcast(context.Background(), makeJobs(1, models.CategoryGeneral))

	if summary.Unsubscribed != 0 {
		t.Errorf("unsubscribed = %d, want 0", summary.Unsubscribed)
	}
	if len(store.unsubscribed) != 0 {
		t.Errorf("store unsubscribed = %v, want none", store.unsubscribed)
	}
}

func TestPermanentFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"blocked by user", tele.ErrBlockedByUser, true},
		{"user deactivated", tele.ErrUserIsDeactivated, true},
		{"timeout", context.DeadlineExceeded, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := permanentFailure(tc.err); got != tc.want {
				t.Errorf("permanentFailure(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
