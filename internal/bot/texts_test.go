package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leadbot/internal/domain"
)

func TestRenderNotification(t *testing.T) {
	got := RenderNotification(domain.Lead{Name: "Alice", Phone: "555-0100", Comment: "call after 5pm"})
	assert.Equal(t, "Новая заявка:\nИмя: Alice\nТелефон: 555-0100\nКомментарий: call after 5pm", got)
}

func TestRenderNotificationEmptyComment(t *testing.T) {
	got := RenderNotification(domain.Lead{Name: "Bob", Phone: "1"})

	// trailing field renders even when empty
	assert.Equal(t, "Новая заявка:\nИмя: Bob\nТелефон: 1\nКомментарий: ", got)
}

func TestRenderLeads(t *testing.T) {
	ts := time.Date(2026, 8, 27, 12, 30, 0, 0, time.UTC)
	got := RenderLeads([]domain.Lead{
		{Name: "Alice", Phone: "555-0100", Comment: "a", CreatedAt: ts},
		{Name: "Bob", Phone: "555-0200", Comment: "", CreatedAt: ts},
	})

	assert.Contains(t, got, TextListHeader)
	assert.Contains(t, got, "Имя: Alice\nТелефон: 555-0100\nКомментарий: a\nВремя: 2026-08-27 12:30:00\n---")
	assert.Contains(t, got, "Имя: Bob")
	assert.Less(t, strings.Index(got, "Alice"), strings.Index(got, "Bob"), "listing order preserved")
}
