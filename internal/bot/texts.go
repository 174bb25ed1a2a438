package bot

import (
	"fmt"
	"strings"

	"leadbot/internal/domain"
)

// User-facing texts. Static by design: the bot serves a single audience.
const (
	TextGreeting = "Здравствуйте! Я бот для заявок на игрушки для автоматов Хватайка. Нажмите 'Оставить заявку' для оформления."
	TextAskName  = "Введите ваше имя:"
	TextAskPhone = "Введите ваш телефон:"
	TextAskNote  = "Комментарий к заявке (или пропустите):"
	TextThankYou = "Спасибо! Ваша заявка принята. Мы свяжемся с вами."

	TextListDenied = "Только владелец или создатель бота могут просматривать заявки."
	TextNoLeads    = "Заявок пока нет."
	TextListHeader = "Последние заявки:"

	TextSaveFailed = "Не удалось сохранить заявку, попробуйте ещё раз."
)

// ButtonLeaveRequest is the entry-affordance label on the reply keyboard.
// The router matches the literal text, so it doubles as a route key.
const ButtonLeaveRequest = "Оставить заявку"

const timeLayout = "2006-01-02 15:04:05"

// RenderNotification formats the operator notification for a stored lead.
func RenderNotification(l domain.Lead) string {
	return fmt.Sprintf("Новая заявка:\nИмя: %s\nТелефон: %s\nКомментарий: %s", l.Name, l.Phone, l.Comment)
}

// RenderLeads formats the admin listing: one labeled block per lead, newest
// first, separated by a delimiter line.
func RenderLeads(leads []domain.Lead) string {
	var b strings.Builder
	b.WriteString(TextListHeader)
	b.WriteString("\n")
	for _, l := range leads {
		fmt.Fprintf(&b, "\nИмя: %s\nТелефон: %s\nКомментарий: %s\nВремя: %s\n---",
			l.Name, l.Phone, l.Comment, l.CreatedAt.Format(timeLayout))
	}
	return b.String()
}
