package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/poll"
	"github.com/five82/perch/internal/state"
)

var (
	ErrEmptyTitle  = errors.New("todo title is empty")
	ErrUnknownTodo = errors.New("todo not found")
)

// TodoAPI is the slice of the backend the todo widget needs.
type TodoAPI interface {
	Todos(ctx context.Context) ([]backend.Todo, error)
	CreateTodo(ctx context.Context, title string) (backend.Todo, error)
	UpdateTodo(ctx context.Context, id int64, update backend.TodoUpdate) error
	DeleteTodo(ctx context.Context, id int64) error
	ReorderTodos(ctx context.Context, order []int64) error
}

// Todos is the reorderable todo list. Edits apply locally first and are
// persisted in the background; a failed call resyncs the whole list.
type Todos struct {
	*Feed[backend.Todo]
	api     TodoAPI
	mutator *poll.Mutator[[]backend.Todo]
	logger  *slog.Logger
}

// NewTodos builds the todo widget.
func NewTodos(api TodoAPI, opts poll.Options, storeOpts ...state.Option[[]backend.Todo]) *Todos {
	feed := NewFeed[backend.Todo]("todos", "Todo List", "No tasks pending.", api.Todos, opts, storeOpts...)
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Todos{
		Feed:    feed,
		api:     api,
		mutator: poll.NewMutator("todos", feed.store, feed.Refetch, opts),
		logger:  logger,
	}
}

// Add creates a todo and appends the stored record once the backend answers.
// Nothing is shown optimistically because the id comes from the backend.
func (t *Todos) Add(ctx context.Context, title string) (backend.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return backend.Todo{}, ErrEmptyTitle
	}
	created, err := t.api.CreateTodo(ctx, title)
	if err != nil {
		t.logger.Warn("create todo failed", "widget", "todos", "err", err)
		return backend.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	t.store.Mutate(func(items []backend.Todo) []backend.Todo {
		return poll.Append[int64](items, created)
	})
	return created, nil
}

// Toggle flips the completion flag of a todo.
func (t *Todos) Toggle(ctx context.Context, id int64) error {
	item, ok := t.find(id)
	if !ok {
		return ErrUnknownTodo
	}
	return t.SetCompleted(ctx, id, !item.Completed)
}

// SetCompleted sets the completion flag of a todo.
func (t *Todos) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return t.update(ctx, "toggle", id, func(item *backend.Todo) {
		item.Completed = completed
	})
}

// Rename replaces a todo's title.
func (t *Todos) Rename(ctx context.Context, id int64, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return t.update(ctx, "edit", id, func(item *backend.Todo) {
		item.Title = title
	})
}

// update edits the todo with id in place. The lookup happens inside the
// store write, so a todo removed by a concurrent poll is reported as unknown
// and no request is sent.
func (t *Todos) update(ctx context.Context, op string, id int64, edit func(*backend.Todo)) error {
	var (
		body  backend.TodoUpdate
		found bool
	)
	applied := t.mutator.Apply(ctx, op, func(items []backend.Todo) []backend.Todo {
		if i := poll.IndexOf(items, id); i >= 0 {
			edit(&items[i])
			body = backend.TodoUpdate{Title: items[i].Title, Completed: items[i].Completed}
			found = true
		}
		return items
	}, func(ctx context.Context) error {
		if !found {
			return nil
		}
		return t.api.UpdateTodo(ctx, id, body)
	})
	if applied && !found {
		return ErrUnknownTodo
	}
	return nil
}

// Delete removes a todo.
func (t *Todos) Delete(ctx context.Context, id int64) error {
	var found bool
	applied := t.mutator.Apply(ctx, "delete", func(items []backend.Todo) []backend.Todo {
		found = poll.IndexOf(items, id) >= 0
		return poll.Remove(items, id)
	}, func(ctx context.Context) error {
		if !found {
			return nil
		}
		return t.api.DeleteTodo(ctx, id)
	})
	if applied && !found {
		return ErrUnknownTodo
	}
	return nil
}

// Move places the todo with id at position and persists the complete new
// order in one call.
func (t *Todos) Move(ctx context.Context, id int64, position int) error {
	var (
		order []int64
		found bool
	)
	applied := t.mutator.Apply(ctx, "reorder", func(items []backend.Todo) []backend.Todo {
		if found = poll.IndexOf(items, id) >= 0; !found {
			return items
		}
		order = poll.MoveKey(poll.Keys[int64](items), id, position)
		items = poll.ReorderByKeys(items, order)
		for i := range items {
			items[i].Order = i
		}
		return items
	}, func(ctx context.Context) error {
		if !found {
			return nil
		}
		return t.api.ReorderTodos(ctx, order)
	})
	if applied && !found {
		return ErrUnknownTodo
	}
	return nil
}

// Wait blocks until outstanding mutations and fetches resolve.
func (t *Todos) Wait() {
	t.mutator.Wait()
	t.Feed.Wait()
}

func (t *Todos) find(id int64) (backend.Todo, bool) {
	items := t.Snapshot().Data
	if i := poll.IndexOf(items, id); i >= 0 {
		return items[i], true
	}
	return backend.Todo{}, false
}
