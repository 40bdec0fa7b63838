// Package models содержит JSON-модели удалённого API Simo (боты, пользователи,
// команды, отзывы, уведомления, голоса).
package models

import "time"

// Vote — агрегат голосов одного пользователя за бота.
type Vote struct {
	User     string    `json:"user"`
	Votes    int       `json:"votes"`
	LastVote time.Time `json:"last_vote"`
}

// Bot — карточка бота в каталоге.
type Bot struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Avatar           string    `json:"avatar"`
	OwnerID          string    `json:"owner_id"`
	TeamID           string    `json:"team_id,omitempty"`
	Prefix           string    `json:"prefix"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	Tags             []string  `json:"tags"`
	SupportServer    string    `json:"support_server,omitempty"`
	WebsiteURL       string    `json:"website_url,omitempty"`
	SourceCode       string    `json:"source_code,omitempty"`
	InviteURL        string    `json:"invite_url,omitempty"`
	VoteMessage      string    `json:"vote_message,omitempty"`
	Approved         bool      `json:"approved"`
	CreatedAt        time.Time `json:"created_at"`
	Votes            []Vote    `json:"votes"`
}

// TotalVotes — сумма голосов по всем пользователям.
func (b Bot) TotalVotes() int {
	total := 0
	for _, v := range b.Votes {
		total += v.Votes
	}

	return total
}

// AvatarURL — ссылка на аватар в CDN Discord.
func (b Bot) AvatarURL(size int) string {
	return discordAvatarURL(b.ID, b.Avatar, size)
}

// BotInput — тело заявки на размещение/изменение бота.
type BotInput struct {
	Name             string   `json:"name"`
	Avatar           string   `json:"avatar,omitempty"`
	Prefix           string   `json:"prefix"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	Tags             []string `json:"tags"`
	SupportServer    string   `json:"support_server,omitempty"`
	WebsiteURL       string   `json:"website_url,omitempty"`
	SourceCode       string   `json:"source_code,omitempty"`
	InviteURL        string   `json:"invite_url,omitempty"`
	VoteMessage      string   `json:"vote_message,omitempty"`
	TeamID           string   `json:"team_id,omitempty"`
}

// Status — сводка /api/status. Bots — общее число ботов в каталоге.
type Status struct {
	Bots   int `json:"bots"`
	Users  int `json:"users"`
	Uptime int `json:"uptime,omitempty"`
}

// VoteStatus — ответ /api/vote-status/{botID}. RestTime в миллисекундах.
type VoteStatus struct {
	CanVote  bool  `json:"can_vote"`
	RestTime int64 `json:"rest_time"`
}
