package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bluesphere-studio/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	fail map[int64]bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	if f.fail[msg.ChatID] {
		return tgbotapi.Message{}, errors.New("chat not found")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func sampleInquiry() storage.Inquiry {
	date := time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC)
	return storage.Inquiry{
		Reference:       "3f2b9c1e-aaaa-bbbb-cccc-000000000000",
		Name:            "Jane Citizen",
		Email:           "jane@example.com",
		Phone:           "+61412345678",
		ServiceInterest: "weddings",
		PreferredDate:   &date,
		Message:         "Ceremony at the Arboretum",
		Status:          storage.StatusSent,
		CreatedAt:       time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNotifyInquiry_SendsToEveryChat(t *testing.T) {
	sender := &fakeSender{fail: map[int64]bool{200: true}}
	n := newTelegramNotifier(sender, []int64{100, 0, 200, 300}, zap.NewNop())

	n.NotifyInquiry(context.Background(), sampleInquiry())

	require.Len(t, sender.sent, 2)
	assert.Equal(t, int64(100), sender.sent[0].ChatID)
	assert.Equal(t, int64(300), sender.sent[1].ChatID)
	assert.Contains(t, sender.sent[0].Text, "3f2b9c1e")
}

func TestNotifyInquiry_Disabled(t *testing.T) {
	n, err := NewTelegramNotifier("", []int64{1}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, n.Enabled())
	n.NotifyInquiry(context.Background(), sampleInquiry())

	sender := &fakeSender{}
	n = newTelegramNotifier(sender, nil, zap.NewNop())
	assert.False(t, n.Enabled())
	n.NotifyInquiry(context.Background(), sampleInquiry())
	assert.Empty(t, sender.sent)
}

func TestNotifyInquiry_CancelledContext(t *testing.T) {
	sender := &fakeSender{}
	n := newTelegramNotifier(sender, []int64{1, 2}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.NotifyInquiry(ctx, sampleInquiry())
	assert.Empty(t, sender.sent)
}

func TestNotifyInquiry_FromGoroutine(t *testing.T) {
	sender := &fakeSender{}
	n := newTelegramNotifier(sender, []int64{1}, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		n.NotifyInquiry(context.Background(), sampleInquiry())
	}()
	wg.Wait()

	assert.Len(t, sender.sent, 1)
}

func TestFormatInquiryNotification(t *testing.T) {
	text := FormatInquiryNotification(sampleInquiry())

	assert.Contains(t, text, "New inquiry 3f2b9c1e")
	assert.Contains(t, text, "Name: Jane Citizen")
	assert.Contains(t, text, "Service: weddings")
	assert.Contains(t, text, "Preferred date: 05.12.2026")
	assert.Contains(t, text, "Ceremony at the Arboretum")
	assert.Contains(t, text, "Received: 01.10.2026 09:30")

	inq := sampleInquiry()
	inq.ServiceInterest = ""
	inq.PreferredDate = nil
	inq.Reference = "abc"
	text = FormatInquiryNotification(inq)
	assert.NotContains(t, text, "Service:")
	assert.NotContains(t, text, "Preferred date:")
	assert.Contains(t, text, "New inquiry abc")
}
