package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/perch/internal/backend"
	"github.com/five82/perch/internal/poll"
)

var errBlankTitle = errors.New("todo title is empty")

func newTodoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list without opening the dashboard",
	}
	cmd.AddCommand(
		newTodoListCmd(),
		newTodoAddCmd(),
		newTodoDoneCmd("done", "Mark a todo as completed", true),
		newTodoDoneCmd("undo", "Mark a todo as not completed", false),
		newTodoRenameCmd(),
		newTodoRemoveCmd(),
		newTodoMoveCmd(),
	)
	return cmd
}

func newTodoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			todos, err := client.Todos(cmd.Context())
			if err != nil {
				return fmt.Errorf("list todos: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(todos) == 0 {
				fmt.Fprintln(out, "No tasks pending.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDONE\tTITLE")
			for _, t := range todos {
				done := " "
				if t.Completed {
					done = "x"
				}
				fmt.Fprintf(w, "%d\t[%s]\t%s\n", t.ID, done, t.Title)
			}
			return w.Flush()
		},
	}
}

func newTodoAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo to the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errBlankTitle
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			created, err := client.CreateTodo(cmd.Context(), title)
			if err != nil {
				return fmt.Errorf("add todo: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", created.ID, created.Title)
			return nil
		},
	}
}

func newTodoDoneCmd(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTodo(cmd, args[0], func(t *backend.Todo) { t.Completed = completed })
		},
	}
}

func newTodoRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change a todo's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return errBlankTitle
			}
			return editTodo(cmd, args[0], func(t *backend.Todo) { t.Title = title })
		},
	}
}

// editTodo applies edit to the current record and PUTs the full result.
func editTodo(cmd *cobra.Command, rawID string, edit func(*backend.Todo)) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	todos, err := client.Todos(cmd.Context())
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}
	i := poll.IndexOf(todos, id)
	if i < 0 {
		return fmt.Errorf("todo #%d not found", id)
	}
	todo := todos[i]
	edit(&todo)
	if err := client.UpdateTodo(cmd.Context(), id, backend.TodoUpdate{Title: todo.Title, Completed: todo.Completed}); err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d %s\n", id, todo.Title)
	return nil
}

func newTodoRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.DeleteTodo(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete todo: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			return nil
		},
	}
}

func newTodoMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move a todo to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			position, err := strconv.Atoi(args[1])
			if err != nil || position < 1 {
				return fmt.Errorf("invalid position %q", args[1])
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			todos, err := client.Todos(cmd.Context())
			if err != nil {
				return fmt.Errorf("list todos: %w", err)
			}
			if poll.IndexOf(todos, id) < 0 {
				return fmt.Errorf("todo #%d not found", id)
			}
			order := poll.MoveKey(poll.Keys[int64](todos), id, position-1)
			if err := client.ReorderTodos(cmd.Context(), order); err != nil {
				return fmt.Errorf("reorder todos: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved #%d to position %d\n", id, min(position, len(order)))
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}
