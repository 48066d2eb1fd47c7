package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes short messages to the admin Telegram chat so new
// registrations and renewal requests do not sit unnoticed in the queue.
// With an empty token it is a no-op.
type Notifier struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	adminChat int64
}

func New(token string, adminChatID int64, log *slog.Logger) *Notifier {
	n := &Notifier{log: log, adminChat: adminChatID}
	if token == "" || adminChatID == 0 {
		return n
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Error("telegram init failed, notifications disabled", "err", err)
		return n
	}
	n.api = api
	return n
}

func (n *Notifier) send(text string) {
	if n.api == nil {
		return
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.adminChat, text)); err != nil {
		n.log.Error("telegram send failed", "err", err)
	}
}

func (n *Notifier) MemberRegistered(name, planID string) {
	n.send(fmt.Sprintf("Registrasi baru: %s (paket %s) menunggu verifikasi.", name, planID))
}

func (n *Notifier) RenewalSubmitted(memberID, planID string) {
	n.send(fmt.Sprintf("Pengajuan perpanjangan baru dari member %s (paket %s).", memberID, planID))
}
