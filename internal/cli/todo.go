package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"obsui/internal/store"
	"obsui/internal/todo"
	"obsui/pkg/types"
)

// withService opens the configured store, runs fn against a todo service
// started at startURL and closes both.
func (o *options) withService(ctx context.Context, startURL string, fn func(*todo.Service) error) error {
	st, err := store.Open(ctx, o.cfg.Store.Kind, o.cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()
	if startURL == "" {
		startURL = o.cfg.Router.StartURL
	}
	svc, err := todo.New(ctx, todo.Config{
		Store:      st,
		StorageKey: o.cfg.Store.Key,
		StartURL:   startURL,
		Router:     o.cfg.RouterStart(),
	})
	if err != nil {
		return err
	}
	defer svc.Close()
	if err := fn(svc); err != nil {
		return err
	}
	if status := svc.Status(); status.LastError != "" {
		return fmt.Errorf("save todos: %s", status.LastError)
	}
	return nil
}

func newTodoCmd(opts *options) *cobra.Command {
	todoCmd := &cobra.Command{Use: "todo", Short: "Edit the stored todo list"}

	addCmd := &cobra.Command{
		Use:   "add <task>...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), "", func(svc *todo.Service) error {
				t, err := svc.Add(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.ID)
				return nil
			})
		},
	}

	var filter string
	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			switch filter {
			case "", string(types.FilterAll):
			case string(types.FilterActive), string(types.FilterCompleted):
				path = "/" + filter
			default:
				return fmt.Errorf("unknown filter %q (all|active|completed)", filter)
			}
			return opts.withService(cmd.Context(), path, func(svc *todo.Service) error {
				printTodos(cmd.OutOrStdout(), svc.Todos())
				return nil
			})
		},
	}
	lsCmd.Flags().StringVar(&filter, "filter", "", "all|active|completed")

	setCompleted := func(use, short string, done bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withService(cmd.Context(), "", func(svc *todo.Service) error {
					t, err := svc.Update(args[0], types.UpdateTodoRequest{Completed: &done})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark(t.Completed), t.Task)
					return nil
				})
			},
		}
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), "", func(svc *todo.Service) error {
				return svc.Remove(args[0])
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd.Context(), "", func(svc *todo.Service) error {
				n := svc.ClearCompleted()
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", n)
				return nil
			})
		},
	}

	todoCmd.AddCommand(addCmd, lsCmd, setCompleted("done", "Mark a task completed", true), setCompleted("undo", "Mark a task active", false), rmCmd, clearCmd)
	return todoCmd
}

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func printTodos(w io.Writer, res types.TodosResponse) {
	if len(res.Todos) == 0 {
		fmt.Fprintln(w, res.Status)
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, t := range res.Todos {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", mark(t.Completed), t.ID, t.Task)
		}
		_ = tw.Flush()
	}
	fmt.Fprintf(w, "%d left, %d done, %d total\n", res.Left, res.Done, res.Total)
}
