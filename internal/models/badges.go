package models

// Badge — публичный значок Discord, разобранный из public_flags.
type Badge struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// publicBadges — известные биты public_flags в порядке показа.
var publicBadges = []struct {
	bit   int
	badge Badge
}{
	{1 << 0, Badge{Key: "DISCORD_EMPLOYEE", Name: "Discord Employee"}},
	{1 << 1, Badge{Key: "PARTNERED_SERVER_OWNER", Name: "Partnered"}},
	{1 << 2, Badge{Key: "HYPESQUAD_EVENTS", Name: "HypeSquad Events"}},
	{1 << 3, Badge{Key: "BUG_HUNTER_LEVEL_1", Name: "Bug Hunter"}},
	{1 << 6, Badge{Key: "EARLY_SUPPORTER", Name: "Early Supporter"}},
	{1 << 8, Badge{Key: "BUG_HUNTER_LEVEL_2", Name: "Bug Hunter II"}},
	{1 << 9, Badge{Key: "VERIFIED_BOT", Name: "Verified Bot"}},
	{1 << 17, Badge{Key: "EARLY_VERIFIED_BOT_DEVELOPER", Name: "Early Verified Bot Developer"}},
}

// Badges раскладывает битовую маску public_flags в список значков.
// Неизвестные биты пропускаются.
func Badges(flags int) []Badge {
	out := make([]Badge, 0)
	if flags <= 0 {
		return out
	}

	for _, b := range publicBadges {
		if flags&b.bit != 0 {
			out = append(out, b.badge)
		}
	}

	return out
}
