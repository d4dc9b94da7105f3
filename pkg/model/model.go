// Package model defines the domain records persisted in the document store.
package model

import "time"

// User is a registered account. The password hash is stored alongside the
// profile but never serialized into API responses.
type User struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Avatar       string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	PasswordHash string `bson:"password" json:"-"`
}

// TaskList is a named collection of to-do items shared by one or more
// member users. Progress is derived from the child to-dos and never stored.
type TaskList struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UserIDs   []string  `bson:"userIds" json:"userIds"`
}

// ToDo is a single item belonging to exactly one task list.
type ToDo struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Content     string `bson:"content" json:"content"`
	IsCompleted bool   `bson:"isCompleted" json:"isCompleted"`
	TaskListID  string `bson:"taskListId" json:"taskListId"`
}

// AuthPayload is returned by signUp and signIn: the account plus a signed
// bearer token the client presents on subsequent requests.
type AuthPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
