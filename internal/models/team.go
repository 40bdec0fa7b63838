package models

// Права участника команды.
const (
	PermissionMember        = 0
	PermissionAdministrator = 1
)

// TeamMember — участник команды.
type TeamMember struct {
	ID         string `json:"id"`
	Username   string `json:"username,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	Permission int    `json:"permission"`
	Owner      bool   `json:"owner,omitempty"`
}

// Team — команда разработчиков.
type Team struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AvatarURL   string       `json:"avatar_url"`
	Description string       `json:"description"`
	InviteCode  string       `json:"invite_code,omitempty"`
	Members     []TeamMember `json:"members"`
	BotIDs      []string     `json:"bot_ids,omitempty"`
}

// Owner возвращает владельца команды, если он есть в списке участников.
func (t Team) Owner() (TeamMember, bool) {
	for _, m := range t.Members {
		if m.Owner {
			return m, true
		}
	}

	return TeamMember{}, false
}
