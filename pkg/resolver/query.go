package resolver

import (
	"context"
	"fmt"

	"github.com/tasklistio/tasklist/pkg/model"
)

// MyTaskLists returns the task lists the current user is a member of. An
// anonymous caller gets an empty result rather than an error.
func (r *Resolver) MyTaskLists(ctx context.Context, rc *RequestContext) ([]*model.TaskList, error) {
	user := rc.CurrentUser(ctx)
	if user == nil {
		return nil, nil
	}

	lists, err := r.store.TaskListsByMember(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task lists: %w", err)
	}
	return lists, nil
}

// TaskList returns a task list by ID, or nil when it does not exist.
//
// Note: any authenticated or anonymous caller may read any list by ID.
// There is no membership check here; see DESIGN.md.
func (r *Resolver) TaskList(ctx context.Context, rc *RequestContext, id string) (*model.TaskList, error) {
	list, err := r.store.TaskListByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task list: %w", err)
	}
	return list, nil
}
