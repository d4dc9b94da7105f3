package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tasklistio/tasklist/pkg/model"
)

// MemoryStore keeps all records in process memory. It backs tests and
// local development and preserves insertion order within each collection.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[string]*model.User
	taskLists map[string]*model.TaskList
	toDos     map[string]*model.ToDo

	// insertion order per collection, for stable list results
	taskListOrder []string
	toDoOrder     []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]*model.User),
		taskLists: make(map[string]*model.TaskList),
		toDos:     make(map[string]*model.ToDo),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.NewString()
	stored := *user
	s.users[user.ID] = &stored
	return user, nil
}

func (s *MemoryStore) UserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyUser(s.users[id]), nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// DeleteUser removes a user record. Not part of the Store interface
// (accounts are immutable in the API); tests use it to simulate tokens
// whose subject no longer exists.
func (s *MemoryStore) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
}

func (s *MemoryStore) CreateTaskList(_ context.Context, list *model.TaskList) (*model.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list.ID = uuid.NewString()
	stored := *list
	stored.UserIDs = append([]string(nil), list.UserIDs...)
	s.taskLists[list.ID] = &stored
	s.taskListOrder = append(s.taskListOrder, list.ID)
	return list, nil
}

func (s *MemoryStore) TaskListByID(_ context.Context, id string) (*model.TaskList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyTaskList(s.taskLists[id]), nil
}

func (s *MemoryStore) TaskListsByMember(_ context.Context, userID string) ([]*model.TaskList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.TaskList
	for _, id := range s.taskListOrder {
		list, ok := s.taskLists[id]
		if !ok {
			continue
		}
		for _, member := range list.UserIDs {
			if member == userID {
				out = append(out, copyTaskList(list))
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) SetTaskListTitle(_ context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list, ok := s.taskLists[id]; ok {
		list.Title = title
	}
	return nil
}

// AddTaskListMember is idempotent; adding an existing member is a no-op.
func (s *MemoryStore) AddTaskListMember(_ context.Context, listID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.taskLists[listID]
	if !ok {
		return nil
	}
	for _, member := range list.UserIDs {
		if member == userID {
			return nil
		}
	}
	list.UserIDs = append(list.UserIDs, userID)
	return nil
}

func (s *MemoryStore) DeleteTaskList(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.taskLists, id)
	return nil
}

func (s *MemoryStore) CreateToDo(_ context.Context, todo *model.ToDo) (*model.ToDo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo.ID = uuid.NewString()
	stored := *todo
	s.toDos[todo.ID] = &stored
	s.toDoOrder = append(s.toDoOrder, todo.ID)
	return todo, nil
}

func (s *MemoryStore) ToDoByID(_ context.Context, id string) (*model.ToDo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if todo, ok := s.toDos[id]; ok {
		cp := *todo
		return &cp, nil
	}
	return nil, nil
}

func (s *MemoryStore) ToDosByTaskList(_ context.Context, listID string) ([]*model.ToDo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.ToDo
	for _, id := range s.toDoOrder {
		todo, ok := s.toDos[id]
		if !ok || todo.TaskListID != listID {
			continue
		}
		cp := *todo
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) UpdateToDo(_ context.Context, id string, content *string, isCompleted *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.toDos[id]
	if !ok {
		return nil
	}
	if content != nil {
		todo.Content = *content
	}
	if isCompleted != nil {
		todo.IsCompleted = *isCompleted
	}
	return nil
}

func (s *MemoryStore) DeleteToDo(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.toDos, id)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func copyTaskList(l *model.TaskList) *model.TaskList {
	if l == nil {
		return nil
	}
	cp := *l
	cp.UserIDs = append([]string(nil), l.UserIDs...)
	return &cp
}
