// listing — заявка на размещение нового бота в каталоге.
package listing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// Ограничения формы заявки.
const (
	MaxNameLen     = 32
	MaxPrefixLen   = 5
	MinShortDesc   = 50
	MaxShortDesc   = 80
	MinLongDesc    = 200
	MaxLongDesc    = 4000
	MaxTags        = 5
	MaxTagLen      = 20
	MaxVoteMessage = 200
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrLoginRequired    = errors.New("login required")
	ErrPermissionDenied = errors.New("not the bot owner")
)

var snowflake = regexp.MustCompile(`^[0-9]{17,20}$`)

// ListingAPI — часть удалённого API, нужная Submit.
type ListingAPI interface {
	CreateBot(ctx context.Context, id string, in models.BotInput) (models.Bot, error)
}

// OwnerAPI — часть удалённого API для правки и удаления своего бота.
type OwnerAPI interface {
	Bot(ctx context.Context, id string) (models.Bot, error)
	UpdateBot(ctx context.Context, id string, in models.BotInput) (models.Bot, error)
	DeleteBot(ctx context.Context, id string) error
}

// FieldError — нарушение в одном поле формы.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError — все нарушения формы; разворачивается в ErrInvalidArgument.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}

	return "invalid listing: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// Normalize обрезает пробелы и убирает пустые/повторяющиеся теги.
func Normalize(in models.BotInput) models.BotInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Prefix = strings.TrimSpace(in.Prefix)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.LongDescription = strings.TrimSpace(in.LongDescription)
	in.SupportServer = strings.TrimSpace(in.SupportServer)
	in.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
	in.SourceCode = strings.TrimSpace(in.SourceCode)
	in.InviteURL = strings.TrimSpace(in.InviteURL)
	in.VoteMessage = strings.TrimSpace(in.VoteMessage)

	seen := make(map[string]bool, len(in.Tags))
	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	in.Tags = tags

	return in
}

// Validate проверяет заявку (после Normalize). nil — заявка корректна.
func Validate(id string, in models.BotInput) error {
	var fields []FieldError
	if !snowflake.MatchString(strings.TrimSpace(id)) {
		fields = append(fields, FieldError{Field: "id", Reason: "must be a discord snowflake (17-20 digits)"})
	}

	return validationError(append(fields, checkFields(in)...))
}

func validationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}

	sortFields(fields)

	return &ValidationError{Fields: fields}
}

// checkFields — проверки полей карточки без id.
func checkFields(in models.BotInput) []FieldError {
	var fields []FieldError
	add := func(field, reason string) {
		fields = append(fields, FieldError{Field: field, Reason: reason})
	}

	if n := utf8.RuneCountInString(in.Name); n == 0 || n > MaxNameLen {
		add("name", fmt.Sprintf("must be 1-%d characters", MaxNameLen))
	}

	if n := utf8.RuneCountInString(in.Prefix); n == 0 || n > MaxPrefixLen {
		add("prefix", fmt.Sprintf("must be 1-%d characters", MaxPrefixLen))
	}

	if n := utf8.RuneCountInString(in.ShortDescription); n < MinShortDesc || n > MaxShortDesc {
		add("short_description", fmt.Sprintf("must be %d-%d characters", MinShortDesc, MaxShortDesc))
	}

	if n := utf8.RuneCountInString(in.LongDescription); n < MinLongDesc || n > MaxLongDesc {
		add("long_description", fmt.Sprintf("must be %d-%d characters", MinLongDesc, MaxLongDesc))
	}

	if len(in.Tags) == 0 || len(in.Tags) > MaxTags {
		add("tags", fmt.Sprintf("must have 1-%d tags", MaxTags))
	}
	for _, t := range in.Tags {
		if utf8.RuneCountInString(t) > MaxTagLen {
			add("tags", fmt.Sprintf("tag %q longer than %d characters", t, MaxTagLen))
		}
	}

	for field, link := range map[string]string{
		"support_server": in.SupportServer,
		"website_url":    in.WebsiteURL,
		"source_code":    in.SourceCode,
		"invite_url":     in.InviteURL,
	} {
		if link != "" && !isHTTPURL(link) {
			add(field, "must be an http(s) url")
		}
	}

	if utf8.RuneCountInString(in.VoteMessage) > MaxVoteMessage {
		add("vote_message", fmt.Sprintf("must be at most %d characters", MaxVoteMessage))
	}

	return fields
}

// Submit нормализует и проверяет заявку, затем отправляет её.
// Новый бот ожидает модерации (approved=false).
func Submit(ctx context.Context, api ListingAPI, actorID, id string, in models.BotInput) (models.Bot, error) {
	const op = "listing/Submit"

	if actorID == "" {
		return models.Bot{}, fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	id = strings.TrimSpace(id)
	in = Normalize(in)
	if err := Validate(id, in); err != nil {
		return models.Bot{}, fmt.Errorf("%s: %w", op, err)
	}

	bot, err := api.CreateBot(ctx, id, in)
	if err != nil {
		log.From(ctx).Warn("bot submit failed", "op", op, "bot_id", id, "err", err)
		return models.Bot{}, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("bot submitted", "op", op, "bot_id", id)

	return bot, nil
}

// Update проверяет новую карточку и сохраняет её. Править может только владелец.
func Update(ctx context.Context, api OwnerAPI, actorID, id string, in models.BotInput) (models.Bot, error) {
	const op = "listing/Update"

	if actorID == "" {
		return models.Bot{}, fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	in = Normalize(in)
	if err := validationError(checkFields(in)); err != nil {
		return models.Bot{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := ensureOwner(ctx, api, actorID, id); err != nil {
		return models.Bot{}, fmt.Errorf("%s: %w", op, err)
	}

	bot, err := api.UpdateBot(ctx, id, in)
	if err != nil {
		log.From(ctx).Warn("bot update failed", "op", op, "bot_id", id, "err", err)
		return models.Bot{}, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("bot updated", "op", op, "bot_id", id)

	return bot, nil
}

// Delete удаляет бота из каталога. Удалить может только владелец.
func Delete(ctx context.Context, api OwnerAPI, actorID, id string) error {
	const op = "listing/Delete"

	if actorID == "" {
		return fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}

	if err := ensureOwner(ctx, api, actorID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := api.DeleteBot(ctx, id); err != nil {
		log.From(ctx).Warn("bot delete failed", "op", op, "bot_id", id, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("bot deleted", "op", op, "bot_id", id)

	return nil
}

func ensureOwner(ctx context.Context, api OwnerAPI, actorID, id string) error {
	bot, err := api.Bot(ctx, id)
	if err != nil {
		return err
	}

	if bot.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// sortFields — стабильный порядок полей для повторяемых ответов.
func sortFields(fields []FieldError) {
	order := map[string]int{
		"id": 0, "name": 1, "prefix": 2, "short_description": 3, "long_description": 4,
		"tags": 5, "support_server": 6, "website_url": 7, "source_code": 8, "invite_url": 9, "vote_message": 10,
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return order[fields[i].Field] < order[fields[j].Field]
	})
}
