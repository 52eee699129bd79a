// Package notify delivers completion alerts to the user.
package notify

import (
	"fmt"
	"html"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lifeflow/internal/service"
)

// Telegram sends weekly completion reports to a single chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Printf("[info] notifier authorized on account %s", api.Self.UserName)
	return &Telegram{api: api, chatID: chatID}, nil
}

// SendWeeklyReport renders the report and pushes it to the configured chat.
func (t *Telegram) SendWeeklyReport(report *service.WeeklyReport) error {
	msg := tgbotapi.NewMessage(t.chatID, renderReport(report))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}

func renderReport(report *service.WeeklyReport) string {
	var b strings.Builder
	b.WriteString("📊 <b>Weekly progress</b>\n")
	b.WriteString(fmt.Sprintf("🗓 %s — %s\n\n",
		report.WeekStart.Format("02.01.2006"), report.WeekEnd.Format("02.01.2006")))

	for _, stats := range report.Categories {
		icon := "🟢"
		if stats.BelowThreshold && report.Alerting {
			icon = "⚠️"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>: %.1f / %.1f h",
			icon, html.EscapeString(stats.Category.Name), stats.TrackedHours, stats.GoalHours))
		if stats.GoalHours > 0 {
			b.WriteString(fmt.Sprintf(" (%.0f%%)", stats.CompletionRate))
		}
		b.WriteByte('\n')
	}

	alerts := report.Alerts()
	if len(alerts) > 0 {
		b.WriteString("\n⚠️ <b>Falling behind</b>\n")
		for _, stats := range alerts {
			b.WriteString(fmt.Sprintf("• %s is at %.0f%% of its weekly goal\n",
				html.EscapeString(stats.Category.Name), stats.CompletionRate))
		}
	} else if !report.Alerting {
		b.WriteString(fmt.Sprintf("\nℹ️ Alerts off: %d day(s) of data this week\n", report.DataDays))
	}

	return strings.TrimSpace(b.String())
}
