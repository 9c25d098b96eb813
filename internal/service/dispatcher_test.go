package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/maternalcare/sms-reminders/internal/model"
	"github.com/maternalcare/sms-reminders/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeLogRepo struct {
	entries   []model.MessageLog
	insertErr error
}

var _ repo.MessageLogRepository = (*fakeLogRepo)(nil)

func (f *fakeLogRepo) Insert(ctx context.Context, entry *model.MessageLog) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	entry.ID = primitive.NewObjectID()
	entry.SentAt = time.Now().UTC()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.MessageLog, error) {
	var out []model.MessageLog
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeSender struct {
	failFor map[string]error // keyed by phone

	calls []struct {
		To   string
		Body string
	}
}

func (f *fakeSender) Send(ctx context.Context, to, body string) (string, string, error) {
	f.calls = append(f.calls, struct {
		To   string
		Body string
	}{To: to, Body: body})

	if err, ok := f.failFor[to]; ok {
		return "", "", err
	}
	return fmt.Sprintf("SM-%d", len(f.calls)), "queued", nil
}

type recordingCache struct {
	stored map[string]string // messageID -> userID
}

func (c *recordingCache) StoreDelivery(ctx context.Context, messageID, userID string, sentAt time.Time) error {
	if c.stored == nil {
		c.stored = make(map[string]string)
	}
	c.stored[messageID] = userID
	return nil
}

func seedActiveUsers(t *testing.T, fr *fakeUserRepo, phones ...string) []model.User {
	t.Helper()

	d := NewDirectory(fr)
	for i, phone := range phones {
		if _, err := d.Register(context.Background(), fmt.Sprintf("User%d", i+1), phone, "2026-11-20"); err != nil {
			t.Fatalf("seed Register(%s) error: %v", phone, err)
		}
	}
	users, err := fr.ListActive(context.Background())
	if err != nil {
		t.Fatalf("seed ListActive error: %v", err)
	}
	return users
}

func TestDispatchReminders_NoActiveUsers(t *testing.T) {
	t.Parallel()

	fr := &fakeUserRepo{}
	fl := &fakeLogRepo{}
	fs := &fakeSender{}

	disp := NewDispatcher(fr, fl, fs, nil)

	report, err := disp.DispatchReminders(context.Background())
	if err != nil {
		t.Fatalf("DispatchReminders() error: %v", err)
	}

	if report.TotalUsers != 0 {
		t.Fatalf("expected totalUsers=0, got %d", report.TotalUsers)
	}
	if len(report.Results) != 0 {
		t.Fatalf("expected empty results, got %d", len(report.Results))
	}
	if len(fs.calls) != 0 {
		t.Fatalf("expected zero gateway calls, got %d", len(fs.calls))
	}
}

func TestDispatchReminders_AllSent(t *testing.T) {
	t.Parallel()

	fr := &fakeUserRepo{}
	users := seedActiveUsers(t, fr, "+15551112222", "+15553334444", "+15556667777")

	fl := &fakeLogRepo{}
	fs := &fakeSender{}
	rc := &recordingCache{}

	disp := NewDispatcher(fr, fl, fs, rc)

	report, err := disp.DispatchReminders(context.Background())
	if err != nil {
		t.Fatalf("DispatchReminders() error: %v", err)
	}

	if report.TotalUsers != 3 {
		t.Fatalf("expected totalUsers=3, got %d", report.TotalUsers)
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(report.Results))
	}
	for i, outcome := range report.Results {
		if outcome.Status != model.OutcomeSent {
			t.Fatalf("outcome %d: expected sent, got %s (%s)", i, outcome.Status, outcome.Error)
		}
		if outcome.MessageID == "" {
			t.Fatalf("outcome %d: expected messageId", i)
		}
		if outcome.UserID != users[i].ID {
			t.Fatalf("outcome %d: expected enumeration order preserved", i)
		}
	}

	if len(fl.entries) != 3 {
		t.Fatalf("expected 3 message log entries, got %d", len(fl.entries))
	}
	if len(rc.stored) != 3 {
		t.Fatalf("expected 3 cached deliveries, got %d", len(rc.stored))
	}
}

func TestDispatchReminders_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	fr := &fakeUserRepo{}
	users := seedActiveUsers(t, fr, "+15551112222", "+15553334444")

	fl := &fakeLogRepo{}
	fs := &fakeSender{
		failFor: map[string]error{
			"+15553334444": errors.New("gateway rejected recipient"),
		},
	}

	disp := NewDispatcher(fr, fl, fs, nil)

	report, err := disp.DispatchReminders(context.Background())
	if err != nil {
		t.Fatalf("DispatchReminders() error: %v", err)
	}

	if report.TotalUsers != 2 {
		t.Fatalf("expected totalUsers=2, got %d", report.TotalUsers)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(report.Results))
	}

	first, second := report.Results[0], report.Results[1]

	if first.UserID != users[0].ID || first.Status != model.OutcomeSent || first.MessageID == "" {
		t.Fatalf("unexpected first outcome: %+v", first)
	}
	if second.UserID != users[1].ID || second.Status != model.OutcomeFailed {
		t.Fatalf("unexpected second outcome: %+v", second)
	}
	if !strings.Contains(second.Error, "gateway rejected recipient") {
		t.Fatalf("expected failure reason in outcome, got %q", second.Error)
	}
	if second.MessageID != "" {
		t.Fatalf("failed outcome must not carry a messageId, got %q", second.MessageID)
	}

	// Both users were attempted.
	if len(fs.calls) != 2 {
		t.Fatalf("expected 2 gateway calls, got %d", len(fs.calls))
	}

	// MessageLog only for the sent subset.
	if len(fl.entries) != 1 {
		t.Fatalf("expected exactly 1 message log entry, got %d", len(fl.entries))
	}
	if fl.entries[0].UserID != users[0].ID {
		t.Fatalf("expected log entry for first user, got %s", fl.entries[0].UserID.Hex())
	}
}

func TestDispatchReminders_LogFailureKeepsOutcomeSent(t *testing.T) {
	t.Parallel()

	fr := &fakeUserRepo{}
	seedActiveUsers(t, fr, "+15551112222")

	fl := &fakeLogRepo{insertErr: errors.New("messages collection unavailable")}
	fs := &fakeSender{}

	disp := NewDispatcher(fr, fl, fs, nil)

	report, err := disp.DispatchReminders(context.Background())
	if err != nil {
		t.Fatalf("DispatchReminders() error: %v", err)
	}

	if len(report.Results) != 1 || report.Results[0].Status != model.OutcomeSent {
		t.Fatalf("expected sent outcome despite log failure, got %+v", report.Results)
	}
}

func TestDispatchReminders_ListErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("mongo down")
	fr := &fakeUserRepo{listErr: boom}
	fs := &fakeSender{}

	disp := NewDispatcher(fr, &fakeLogRepo{}, fs, nil)

	_, err := disp.DispatchReminders(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(fs.calls) != 0 {
		t.Fatalf("expected no gateway calls, got %d", len(fs.calls))
	}
}

func TestDispatchReminders_SkipsDeactivatedUsers(t *testing.T) {
	t.Parallel()

	fr := &fakeUserRepo{}
	users := seedActiveUsers(t, fr, "+15551112222", "+15553334444")

	if err := fr.Deactivate(context.Background(), users[0].ID); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}

	fs := &fakeSender{}
	disp := NewDispatcher(fr, &fakeLogRepo{}, fs, nil)

	report, err := disp.DispatchReminders(context.Background())
	if err != nil {
		t.Fatalf("DispatchReminders() error: %v", err)
	}

	if report.TotalUsers != 1 {
		t.Fatalf("expected totalUsers=1, got %d", report.TotalUsers)
	}
	if len(fs.calls) != 1 || fs.calls[0].To != "+15553334444" {
		t.Fatalf("expected a single send to the remaining active user, got %+v", fs.calls)
	}
}

func TestComposeReminder_IsDeterministicAndPersonal(t *testing.T) {
	t.Parallel()

	user := model.User{Name: "Amina", DueDate: "2026-11-20"}

	first := composeReminder(user)
	second := composeReminder(user)

	if first != second {
		t.Fatalf("expected deterministic message body")
	}
	if !strings.Contains(first, "Hello Amina!") {
		t.Fatalf("expected greeting with name, got %q", first)
	}
	if !strings.Contains(first, "Due date: 2026-11-20") {
		t.Fatalf("expected due date in body, got %q", first)
	}
	for _, tip := range []string{"iron and folic acid", "hydrated", "unusual symptoms"} {
		if !strings.Contains(first, tip) {
			t.Fatalf("expected health tip %q in body", tip)
		}
	}
}
