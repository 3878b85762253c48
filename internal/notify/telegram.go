package notify

import (
	"context"
	"fmt"
	"strings"

	"bluesphere-studio/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier pushes new inquiries to the studio admins.
type TelegramNotifier struct {
	bot     messageSender
	chatIDs []int64
	logger  *zap.Logger
}

// NewTelegramNotifier connects to the Bot API. An empty token yields a
// notifier that only logs.
func NewTelegramNotifier(token string, chatIDs []int64, logger *zap.Logger) (*TelegramNotifier, error) {
	const operation = "notify.NewTelegramNotifier"

	if token == "" {
		return &TelegramNotifier{logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create bot: %w", operation, err)
	}

	logger.Info("Authorized on Telegram account", zap.String("username", bot.Self.UserName))
	return newTelegramNotifier(bot, chatIDs, logger), nil
}

func newTelegramNotifier(bot messageSender, chatIDs []int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:     bot,
		chatIDs: chatIDs,
		logger:  logger,
	}
}

func (n *TelegramNotifier) Enabled() bool {
	return n.bot != nil && len(n.chatIDs) > 0
}

// NotifyInquiry sends a summary to every configured admin chat. Failures
// are logged per chat and never returned.
func (n *TelegramNotifier) NotifyInquiry(ctx context.Context, inq storage.Inquiry) {
	if !n.Enabled() {
		n.logger.Warn("Admin notifications disabled - no bot token or chat IDs configured")
		return
	}

	text := FormatInquiryNotification(inq)
	for _, chatID := range n.chatIDs {
		if chatID == 0 {
			n.logger.Warn("Skipping notification to zero chat ID")
			continue
		}
		if err := ctx.Err(); err != nil {
			n.logger.Warn("Inquiry notification abandoned", zap.Error(err))
			return
		}

		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := n.bot.Send(msg); err != nil {
			n.logger.Error("Failed to send inquiry notification",
				zap.Int64("chat_id", chatID),
				zap.String("reference", inq.Reference),
				zap.Error(err))
		}
	}
}

func FormatInquiryNotification(inq storage.Inquiry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📸 New inquiry %s\n\n", shortRef(inq.Reference))
	fmt.Fprintf(&b, "Name: %s\n", inq.Name)
	fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	fmt.Fprintf(&b, "Phone: %s\n", inq.Phone)
	if inq.ServiceInterest != "" {
		fmt.Fprintf(&b, "Service: %s\n", inq.ServiceInterest)
	}
	if inq.PreferredDate != nil {
		fmt.Fprintf(&b, "Preferred date: %s\n", inq.PreferredDate.Format("02.01.2006"))
	}
	b.WriteString("──────────────────\n")
	b.WriteString(inq.Message)
	b.WriteString("\n──────────────────\n")
	fmt.Fprintf(&b, "Status: %s\n", inq.Status)
	fmt.Fprintf(&b, "Received: %s", inq.CreatedAt.Format("02.01.2006 15:04"))

	return b.String()
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return ref[:8]
	}
	return ref
}
