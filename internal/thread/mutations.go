package thread

import (
	"context"
	"fmt"

	"github.com/ThisPythonJS/SimoWebsite/internal/models"
	"github.com/ThisPythonJS/SimoWebsite/pkg/log"
)

// acquire находит элемент, проверяет guard и выставляет busy.
// Всё под одним захватом мьютекса: две отправки на один элемент не пройдут.
func (c *Collection) acquire(key string, guard func(*item) error) (*item, models.Feedback, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.byKey[key]
	if !ok {
		return nil, models.Feedback{}, ErrNotFound
	}
	if err := guard(it); err != nil {
		return nil, models.Feedback{}, err
	}
	if it.busy {
		return nil, models.Feedback{}, ErrBusy
	}

	it.busy = true

	return it, it.fb, nil
}

// release снимает busy и применяет fn к элементу.
func (c *Collection) release(it *item, fn func(*item)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it.busy = false
	if fn != nil {
		fn(it)
	}
}

// itemView возвращает модель элемента по ключу (после перечитывания — новую).
func (c *Collection) itemView(key string) ItemView {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it, ok := c.byKey[key]; ok {
		return c.viewLocked(it)
	}

	return ItemView{}
}

// SubmitEdit сохраняет правку отзыва автором.
//
// Если текст и оценка не изменились, запрос не отправляется и элемент
// возвращается в viewing. Иначе отправляется правка с edited=true, элемент
// возвращается в viewing, коллекция перечитывается.
func (c *Collection) SubmitEdit(ctx context.Context, key, content string, stars int) (ItemView, error) {
	const op = "thread/SubmitEdit"

	lg := log.From(ctx).With("op", op, "bot_id", c.botID, "author_id", key)
	stars = ClampStars(stars)

	if err := ValidateContent(content); err != nil {
		return ItemView{}, fmt.Errorf("%s: %w", op, err)
	}

	it, old, err := c.acquire(key, func(it *item) error {
		if !c.isAuthor(it) {
			return c.denied()
		}
		if it.mode != ModeEditingParent {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return c.itemView(key), fmt.Errorf("%s: %w", op, err)
	}

	if old.Content == content && old.Stars == stars {
		c.release(it, func(it *item) { it.mode = ModeViewing })
		lg.Debug("edit unchanged, skipped")
		return c.itemView(key), nil
	}

	err = c.api.EditFeedback(ctx, c.botID, models.FeedbackEdit{Content: content, Stars: stars, Edited: true})
	if err != nil {
		c.release(it, nil)
		lg.Warn("edit failed", "err", err)
		return c.itemView(key), fmt.Errorf("%s: %w", op, err)
	}

	c.release(it, func(it *item) {
		it.mode = ModeViewing
		it.fb.Content, it.fb.Stars, it.fb.Edited = content, stars, true
	})

	if err := c.Load(ctx); err != nil {
		lg.Warn("reload after edit failed", "err", err)
	}

	return c.itemView(key), nil
}

// SubmitReply публикует ответ владельца. Если ответ уже есть, запрос не отправляется.
func (c *Collection) SubmitReply(ctx context.Context, key, content string) (ItemView, error) {
	const op = "thread/SubmitReply"

	lg := log.From(ctx).With("op", op, "bot_id", c.botID, "author_id", key)

	it, _, err := c.acquire(key, func(it *item) error {
		if !c.isOwner() {
			return c.denied()
		}
		if it.fb.HasReply() {
			return ErrReplyExists
		}
		if it.mode != ModeReplyComposing {
			return ErrInvalidTransition
		}
		return ValidateContent(content)
	})
	if err != nil {
		return c.itemView(key), fmt.Errorf("%s: %w", op, err)
	}

	reply := models.Reply{Content: content, PostedAt: c.now().UTC()}
	if err := c.api.PatchReply(ctx, c.botID, key, models.ReplyPatch{Reply: &reply}); err != nil {
		c.release(it, nil)
		lg.Warn("reply failed", "err", err)
		return c.itemView(key), fmt.Errorf("%s: %w", op, err)
	}

	c.release(it, func(it *item) {
		it.fb.Reply = &reply
		it.mode = ModeViewing
	})

	return c.itemView(key), nil
}

// SubmitReplyEdit меняет существующий ответ владельца; edited=true всегда.
func (c *Collection) SubmitReplyEdit(ctx context.Context, key, content string) (ItemView, error) {
	const op = "thread/SubmitReplyEdit"

	lg := log.From(ctx).With("op", op, "bot_id", c.botID, "author_id", key)

	it, old, err := c.acquire(key, func(it *item) error {
		if !c.isOwner() {
			return c.denied()
		}
		if !it.fb.HasReply() {
			return ErrNoReply
		}
		if it.mode != ModeReplyEditing {
			return ErrInvalidTransition
		}
		return ValidateContent(content)
	})
	if err != nil {
		return c.itemView(key), fmt.Errorf("%s: %w", op, err)
	}

	reply := models.Reply{Content: content, PostedAt: old.Reply.PostedAt, Edited: true}
	if err := c.api.PatchReply(ctx, c.botID, key, models.ReplyPatch{Reply: &reply}); err != nil {
		c.release(it, nil)
		lg.Warn("reply edit failed", "err", err)
		return c.itemView(key), fmt.Errorf("%s: %w", op, err)
	}

	c.release(it, func(it *item) {
		it.fb.Reply = &reply
		it.mode = ModeViewing
	})

	return c.itemView(key), nil
}

// DeleteParent удаляет отзыв (только автор). После завершения запроса,
// успешного или нет, коллекция перечитывается.
func (c *Collection) DeleteParent(ctx context.Context, key string) error {
	const op = "thread/DeleteParent"

	it, _, err := c.acquire(key, func(it *item) error {
		if !c.isAuthor(it) {
			return c.denied()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.settle(ctx, op, it, c.api.DeleteFeedback(ctx, c.botID))
}

// DeleteReply удаляет ответ (только владелец). После завершения запроса
// коллекция перечитывается.
func (c *Collection) DeleteReply(ctx context.Context, key string) error {
	const op = "thread/DeleteReply"

	it, _, err := c.acquire(key, func(it *item) error {
		if !c.isOwner() {
			return c.denied()
		}
		if !it.fb.HasReply() {
			return ErrNoReply
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return c.settle(ctx, op, it, c.api.PatchReply(ctx, c.botID, key, models.ReplyPatch{}))
}

// settle снимает busy и перечитывает коллекцию. Возвращает ошибку удаления,
// если она была, иначе ошибку перечитывания.
func (c *Collection) settle(ctx context.Context, op string, it *item, err error) error {
	lg := log.From(ctx).With("op", op, "bot_id", c.botID)

	c.release(it, func(it *item) { it.mode = ModeViewing })

	if err != nil {
		lg.Warn("delete failed", "err", err)
	}

	if lerr := c.Load(ctx); lerr != nil {
		if err == nil {
			return fmt.Errorf("%s: reload: %w", op, lerr)
		}
		lg.Warn("reload after failed delete failed", "err", lerr)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Submit публикует новый отзыв текущего пользователя и перечитывает коллекцию.
func (c *Collection) Submit(ctx context.Context, content string, stars int) error {
	const op = "thread/Submit"

	if c.actorID == "" {
		return fmt.Errorf("%s: %w", op, ErrLoginRequired)
	}
	if err := ValidateContent(content); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	_, exists := c.byKey[c.actorID]
	c.mu.Unlock()
	if exists {
		return fmt.Errorf("%s: %w", op, ErrAlreadyReviewed)
	}

	in := models.FeedbackInput{
		Stars:     ClampStars(stars),
		PostedAt:  c.now().UTC(),
		Content:   content,
		TargetBot: c.botID,
		AuthorID:  c.actorID,
	}
	if err := c.api.CreateFeedback(ctx, c.botID, in); err != nil {
		log.From(ctx).Warn("feedback create failed", "op", op, "bot_id", c.botID, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%s: reload: %w", op, err)
	}

	return nil
}
