// Package store provides persistence for users, task lists and to-dos over
// three normalized collections. Implementations: MongoDB for production and
// an in-memory store for tests and local development.
package store

import (
	"context"

	"github.com/tasklistio/tasklist/pkg/model"
)

// Store is the document-store boundary used by the resolver layer.
//
// Lookups return (nil, nil) when no matching record exists; callers treat
// absence as a normal outcome, not an error. Writes rely only on the
// store's per-document atomicity. Each Create assigns the record's ID.
type Store interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)

	CreateTaskList(ctx context.Context, list *model.TaskList) (*model.TaskList, error)
	TaskListByID(ctx context.Context, id string) (*model.TaskList, error)
	TaskListsByMember(ctx context.Context, userID string) ([]*model.TaskList, error)
	SetTaskListTitle(ctx context.Context, id, title string) error
	AddTaskListMember(ctx context.Context, listID, userID string) error
	DeleteTaskList(ctx context.Context, id string) error

	CreateToDo(ctx context.Context, todo *model.ToDo) (*model.ToDo, error)
	ToDoByID(ctx context.Context, id string) (*model.ToDo, error)
	ToDosByTaskList(ctx context.Context, listID string) ([]*model.ToDo, error)
	UpdateToDo(ctx context.Context, id string, content *string, isCompleted *bool) error
	DeleteToDo(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
