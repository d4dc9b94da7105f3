package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tasklistio/tasklist/pkg/model"
)

// TaskListUsers resolves the member users of a list. Records are fetched
// concurrently; the result preserves the order of the list's userIds.
// Member IDs whose user record has been deleted are skipped.
func (r *Resolver) TaskListUsers(ctx context.Context, list *model.TaskList) ([]*model.User, error) {
	fetched := make([]*model.User, len(list.UserIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range list.UserIDs {
		i, id := i, id
		g.Go(func() error {
			user, err := r.store.UserByID(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to load user %s: %w", id, err)
			}
			fetched[i] = user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(fetched))
	for _, user := range fetched {
		if user != nil {
			users = append(users, user)
		}
	}
	return users, nil
}

// TaskListToDos resolves the items of a list, in store order.
func (r *Resolver) TaskListToDos(ctx context.Context, list *model.TaskList) ([]*model.ToDo, error) {
	todos, err := r.store.ToDosByTaskList(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}
	return todos, nil
}

// TaskListProgress computes the completion percentage of a list: 0 for an
// empty list, otherwise 100 × completed/total, unrounded.
func (r *Resolver) TaskListProgress(ctx context.Context, list *model.TaskList) (float64, error) {
	todos, err := r.store.ToDosByTaskList(ctx, list.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load todos: %w", err)
	}
	if len(todos) == 0 {
		return 0, nil
	}

	completed := 0
	for _, todo := range todos {
		if todo.IsCompleted {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(todos)), nil
}

// ToDoTaskList resolves the parent list of an item. Returns nil when the
// parent has been deleted (orphaned item).
func (r *Resolver) ToDoTaskList(ctx context.Context, todo *model.ToDo) (*model.TaskList, error) {
	list, err := r.store.TaskListByID(ctx, todo.TaskListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parent task list: %w", err)
	}
	return list, nil
}
