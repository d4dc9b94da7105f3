package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/tasklistio/tasklist/pkg/model"
)

// SignUpInput carries the signUp arguments.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Avatar   string
}

// SignUp creates an account and signs the caller in. Email uniqueness is
// left to the store (the Mongo backend keeps a unique index); this layer
// does not pre-check it.
func (r *Resolver) SignUp(ctx context.Context, rc *RequestContext, input SignUpInput) (*model.AuthPayload, error) {
	hash, err := r.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := r.store.CreateUser(ctx, &model.User{
		Name:         input.Name,
		Email:        input.Email,
		Avatar:       input.Avatar,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := r.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.AuthPayload{User: user, Token: token}, nil
}

// SignIn verifies the credentials and returns a fresh token. Unknown email
// and wrong password both fail with ErrInvalidCredential.
func (r *Resolver) SignIn(ctx context.Context, rc *RequestContext, email, password string) (*model.AuthPayload, error) {
	user, err := r.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !r.auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	token, err := r.auth.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.AuthPayload{User: user, Token: token}, nil
}

// CreateTaskList creates a task list with the caller as its sole member.
func (r *Resolver) CreateTaskList(ctx context.Context, rc *RequestContext, title string) (*model.TaskList, error) {
	user, err := rc.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	list, err := r.store.CreateTaskList(ctx, &model.TaskList{
		Title:     title,
		CreatedAt: time.Now(),
		UserIDs:   []string{user.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}
	return list, nil
}

// UpdateTaskList sets the title and returns the list re-read from the
// store after the write.
func (r *Resolver) UpdateTaskList(ctx context.Context, rc *RequestContext, id, title string) (*model.TaskList, error) {
	if _, err := rc.requireUser(ctx); err != nil {
		return nil, err
	}

	if err := r.store.SetTaskListTitle(ctx, id, title); err != nil {
		return nil, fmt.Errorf("failed to update task list: %w", err)
	}
	list, err := r.store.TaskListByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task list: %w", err)
	}
	return list, nil
}

// DeleteTaskList removes the list record. Child to-dos are not cascaded;
// they become orphans whose taskList field resolves to null.
func (r *Resolver) DeleteTaskList(ctx context.Context, rc *RequestContext, id string) (bool, error) {
	if _, err := rc.requireUser(ctx); err != nil {
		return false, err
	}

	if err := r.store.DeleteTaskList(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete task list: %w", err)
	}
	return true, nil
}

// AddUserToTaskList adds a member to a list. Returns nil when the list
// does not exist. The add is idempotent, and the result is re-read from
// the store after the write rather than patched locally.
func (r *Resolver) AddUserToTaskList(ctx context.Context, rc *RequestContext, taskListID, userID string) (*model.TaskList, error) {
	if _, err := rc.requireUser(ctx); err != nil {
		return nil, err
	}

	list, err := r.store.TaskListByID(ctx, taskListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task list: %w", err)
	}
	if list == nil {
		return nil, nil
	}

	if err := r.store.AddTaskListMember(ctx, taskListID, userID); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	updated, err := r.store.TaskListByID(ctx, taskListID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task list: %w", err)
	}
	return updated, nil
}

// CreateToDo creates an item inside a task list, initially not completed.
func (r *Resolver) CreateToDo(ctx context.Context, rc *RequestContext, content, taskListID string) (*model.ToDo, error) {
	if _, err := rc.requireUser(ctx); err != nil {
		return nil, err
	}

	todo, err := r.store.CreateToDo(ctx, &model.ToDo{
		Content:    content,
		TaskListID: taskListID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// UpdateToDo merges the provided fields into the item and returns it
// re-read from the store after the write.
func (r *Resolver) UpdateToDo(ctx context.Context, rc *RequestContext, id string, content *string, isCompleted *bool) (*model.ToDo, error) {
	if _, err := rc.requireUser(ctx); err != nil {
		return nil, err
	}

	if err := r.store.UpdateToDo(ctx, id, content, isCompleted); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	todo, err := r.store.ToDoByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}
	return todo, nil
}

// DeleteToDo removes the item record.
func (r *Resolver) DeleteToDo(ctx context.Context, rc *RequestContext, id string) (bool, error) {
	if _, err := rc.requireUser(ctx); err != nil {
		return false, err
	}

	if err := r.store.DeleteToDo(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}
	return true, nil
}
