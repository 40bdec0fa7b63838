package models

import "time"

// NotificationType — вид уведомления.
type NotificationType int

const (
	NotificationPlain NotificationType = iota
	NotificationSuccess
	NotificationError
	NotificationInfoWithImage
)

// String — стабильное имя типа для фронта.
func (t NotificationType) String() string {
	switch t {
	case NotificationPlain:
		return "plain"
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationInfoWithImage:
		return "info_with_image"
	default:
		return "unknown"
	}
}

// Valid — входит ли тип в известный набор.
func (t NotificationType) Valid() bool {
	return t >= NotificationPlain && t <= NotificationInfoWithImage
}

// Notification — уведомление пользователя. Content — markdown.
// URL заполнен только для NotificationInfoWithImage.
type Notification struct {
	Type    NotificationType `json:"type"`
	Content string           `json:"content"`
	SentAt  time.Time        `json:"sent_at"`
	URL     string           `json:"url,omitempty"`
}

// Notifications — ответ GET /api/users/notifications: id -> уведомление.
type Notifications map[string]Notification
