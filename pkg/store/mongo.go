package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tasklistio/tasklist/pkg/model"
)

// MongoStore persists records in three MongoDB collections.
type MongoStore struct {
	client    *mongo.Client
	users     *mongo.Collection
	taskLists *mongo.Collection
	toDos     *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store bound to the given
// database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:    client,
		users:     db.Collection("users"),
		taskLists: db.Collection("taskLists"),
		toDos:     db.Collection("toDos"),
	}, nil
}

// EnsureIndexes creates the unique email index on the users collection.
// Email uniqueness is enforced here, at the store, not by the resolvers.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = primitive.NewObjectID().Hex()
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id string) (*model.User, error) {
	return decodeOne[model.User](s.users.FindOne(ctx, bson.M{"_id": id}), "user")
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return decodeOne[model.User](s.users.FindOne(ctx, bson.M{"email": email}), "user")
}

func (s *MongoStore) CreateTaskList(ctx context.Context, list *model.TaskList) (*model.TaskList, error) {
	list.ID = primitive.NewObjectID().Hex()
	if _, err := s.taskLists.InsertOne(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to insert task list: %w", err)
	}
	return list, nil
}

func (s *MongoStore) TaskListByID(ctx context.Context, id string) (*model.TaskList, error) {
	return decodeOne[model.TaskList](s.taskLists.FindOne(ctx, bson.M{"_id": id}), "task list")
}

func (s *MongoStore) TaskListsByMember(ctx context.Context, userID string) ([]*model.TaskList, error) {
	cursor, err := s.taskLists.Find(ctx, bson.M{"userIds": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query task lists: %w", err)
	}
	return decodeAll[model.TaskList](ctx, cursor)
}

func (s *MongoStore) SetTaskListTitle(ctx context.Context, id, title string) error {
	_, err := s.taskLists.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return fmt.Errorf("failed to update task list: %w", err)
	}
	return nil
}

// AddTaskListMember is idempotent: $addToSet leaves the member set
// unchanged when the user already belongs to the list.
func (s *MongoStore) AddTaskListMember(ctx context.Context, listID, userID string) error {
	_, err := s.taskLists.UpdateOne(ctx, bson.M{"_id": listID}, bson.M{"$addToSet": bson.M{"userIds": userID}})
	if err != nil {
		return fmt.Errorf("failed to add task list member: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteTaskList(ctx context.Context, id string) error {
	if _, err := s.taskLists.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateToDo(ctx context.Context, todo *model.ToDo) (*model.ToDo, error) {
	todo.ID = primitive.NewObjectID().Hex()
	if _, err := s.toDos.InsertOne(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	return todo, nil
}

func (s *MongoStore) ToDoByID(ctx context.Context, id string) (*model.ToDo, error) {
	return decodeOne[model.ToDo](s.toDos.FindOne(ctx, bson.M{"_id": id}), "todo")
}

func (s *MongoStore) ToDosByTaskList(ctx context.Context, listID string) ([]*model.ToDo, error) {
	cursor, err := s.toDos.Find(ctx, bson.M{"taskListId": listID})
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	return decodeAll[model.ToDo](ctx, cursor)
}

func (s *MongoStore) UpdateToDo(ctx context.Context, id string, content *string, isCompleted *bool) error {
	set := bson.M{}
	if content != nil {
		set["content"] = *content
	}
	if isCompleted != nil {
		set["isCompleted"] = *isCompleted
	}
	if len(set) == 0 {
		return nil
	}
	if _, err := s.toDos.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteToDo(ctx context.Context, id string) error {
	if _, err := s.toDos.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func decodeOne[T any](res *mongo.SingleResult, kind string) (*T, error) {
	var out T
	if err := res.Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return &out, nil
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]*T, error) {
	defer cursor.Close(ctx)

	var out []*T
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}
