package models

import (
	"fmt"
	"time"
)

// User — пользователь каталога.
type User struct {
	ID                  string                  `json:"id"`
	Username            string                  `json:"username"`
	Avatar              string                  `json:"avatar"`
	Bio                 *string                 `json:"bio"`
	BannerURL           *string                 `json:"banner_url"`
	NotificationsViewed bool                    `json:"notifications_viewed"`
	Notifications       map[string]Notification `json:"notifications,omitempty"`
	Flags               int                     `json:"flags"`
	PublicFlags         int                     `json:"public_flags,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
}

// AvatarURL — ссылка на аватар в CDN Discord.
func (u User) AvatarURL(size int) string {
	return discordAvatarURL(u.ID, u.Avatar, size)
}

// Developer — краткая карточка владельца бота.
type Developer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// UserPatch — тело PATCH /api/users. Nil-поле не отправляется,
// пустая строка в Clear* поле отправляется как null.
type UserPatch struct {
	Bio                 *string `json:"bio,omitempty"`
	BannerURL           *string `json:"banner_url,omitempty"`
	NotificationsViewed *bool   `json:"notifications_viewed,omitempty"`
	ClearBio            bool    `json:"-"`
	ClearBanner         bool    `json:"-"`
}

// Body собирает JSON-тело с явными null для очищаемых полей.
func (p UserPatch) Body() map[string]any {
	body := make(map[string]any, 3)

	switch {
	case p.ClearBio:
		body["bio"] = nil
	case p.Bio != nil:
		body["bio"] = *p.Bio
	}

	switch {
	case p.ClearBanner:
		body["banner_url"] = nil
	case p.BannerURL != nil:
		body["banner_url"] = *p.BannerURL
	}

	if p.NotificationsViewed != nil {
		body["notifications_viewed"] = *p.NotificationsViewed
	}

	return body
}

func discordAvatarURL(id, hash string, size int) string {
	if id == "" || hash == "" {
		return ""
	}

	if size <= 0 {
		size = 128
	}

	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png?size=%d", id, hash, size)
}
