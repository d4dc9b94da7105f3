// Package schema wires the resolver layer into a GraphQL schema. Each
// entity exposes its fields as a name→resolver mapping; the executor
// invokes a field resolver only when the caller's selection asks for it.
package schema

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/tasklistio/tasklist/pkg/metrics"
	"github.com/tasklistio/tasklist/pkg/model"
	"github.com/tasklistio/tasklist/pkg/resolver"
)

type builder struct {
	resolvers *resolver.Resolver
	metrics   *metrics.Metrics

	userType        *graphql.Object
	authPayloadType *graphql.Object
	taskListType    *graphql.Object
	toDoType        *graphql.Object
}

// New builds the executable schema on top of the given resolver layer.
// metrics may be nil.
func New(r *resolver.Resolver, m *metrics.Metrics) (graphql.Schema, error) {
	b := &builder{resolvers: r, metrics: m}
	b.buildTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryType(),
		Mutation: b.mutationType(),
	})
	if err != nil {
		return graphql.Schema{}, err
	}
	return schema, nil
}

func (b *builder) buildTypes() {
	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"avatar": &graphql.Field{Type: graphql.String},
		},
	})

	b.authPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthUser",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"user":  &graphql.Field{Type: graphql.NewNonNull(b.userType)},
				"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			}
		}),
	})

	b.toDoType = graphql.NewObject(graphql.ObjectConfig{
		Name: "ToDo",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"content":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"isCompleted": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
				"taskList": &graphql.Field{
					Type: b.taskListType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						todo := p.Source.(*model.ToDo)
						list, err := b.resolvers.ToDoTaskList(p.Context, todo)
						if err != nil || list == nil {
							return nil, err
						}
						return list, nil
					},
				},
			}
		}),
	})

	b.taskListType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskList",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"users": &graphql.Field{
					Type: graphql.NewList(b.userType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						list := p.Source.(*model.TaskList)
						return b.resolvers.TaskListUsers(p.Context, list)
					},
				},
				"todos": &graphql.Field{
					Type: graphql.NewList(b.toDoType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						list := p.Source.(*model.TaskList)
						return b.resolvers.TaskListToDos(p.Context, list)
					},
				},
				"progress": &graphql.Field{
					Type: graphql.Float,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						list := p.Source.(*model.TaskList)
						return b.resolvers.TaskListProgress(p.Context, list)
					},
				},
			}
		}),
	})
}

func (b *builder) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"myTaskList": &graphql.Field{
				Type: graphql.NewList(b.taskListType),
				Resolve: b.instrument("myTaskList", func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolvers.MyTaskLists(p.Context, b.requestContext(p))
				}),
			},
			"getTaskList": &graphql.Field{
				Type: b.taskListType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.instrument("getTaskList", func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.resolvers.TaskList(p.Context, b.requestContext(p), p.Args["id"].(string))
					if err != nil || list == nil {
						return nil, err
					}
					return list, nil
				}),
			},
		},
	})
}

func (b *builder) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signUp": &graphql.Field{
				Type: b.authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"avatar":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: b.instrument("signUp", func(p graphql.ResolveParams) (interface{}, error) {
					input := resolver.SignUpInput{
						Email:    p.Args["email"].(string),
						Password: p.Args["password"].(string),
						Name:     p.Args["name"].(string),
					}
					if avatar, ok := p.Args["avatar"].(string); ok {
						input.Avatar = avatar
					}
					return b.resolvers.SignUp(p.Context, b.requestContext(p), input)
				}),
			},
			"signIn": &graphql.Field{
				Type: b.authPayloadType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: b.instrument("signIn", func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolvers.SignIn(p.Context, b.requestContext(p),
						p.Args["email"].(string), p.Args["password"].(string))
				}),
			},
			"createTaskList": &graphql.Field{
				Type: b.taskListType,
				Args: graphql.FieldConfigArgument{
					"title": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: b.instrument("createTaskList", func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolvers.CreateTaskList(p.Context, b.requestContext(p), p.Args["title"].(string))
				}),
			},
			"updateTaskList": &graphql.Field{
				Type: b.taskListType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: b.instrument("updateTaskList", func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.resolvers.UpdateTaskList(p.Context, b.requestContext(p),
						p.Args["id"].(string), p.Args["title"].(string))
					if err != nil || list == nil {
						return nil, err
					}
					return list, nil
				}),
			},
			"deleteTaskList": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.instrument("deleteTaskList", func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolvers.DeleteTaskList(p.Context, b.requestContext(p), p.Args["id"].(string))
				}),
			},
			"addUserToTaskList": &graphql.Field{
				Type: b.taskListType,
				Args: graphql.FieldConfigArgument{
					"taskListId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"userId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.instrument("addUserToTaskList", func(p graphql.ResolveParams) (interface{}, error) {
					list, err := b.resolvers.AddUserToTaskList(p.Context, b.requestContext(p),
						p.Args["taskListId"].(string), p.Args["userId"].(string))
					if err != nil || list == nil {
						return nil, err
					}
					return list, nil
				}),
			},
			"createToDo": &graphql.Field{
				Type: b.toDoType,
				Args: graphql.FieldConfigArgument{
					"content":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"taskListId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.instrument("createToDo", func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolvers.CreateToDo(p.Context, b.requestContext(p),
						p.Args["content"].(string), p.Args["taskListId"].(string))
				}),
			},
			"updateToDo": &graphql.Field{
				Type: b.toDoType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content":     &graphql.ArgumentConfig{Type: graphql.String},
					"isCompleted": &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: b.instrument("updateToDo", func(p graphql.ResolveParams) (interface{}, error) {
					var content *string
					if v, ok := p.Args["content"].(string); ok {
						content = &v
					}
					var isCompleted *bool
					if v, ok := p.Args["isCompleted"].(bool); ok {
						isCompleted = &v
					}
					todo, err := b.resolvers.UpdateToDo(p.Context, b.requestContext(p),
						p.Args["id"].(string), content, isCompleted)
					if err != nil || todo == nil {
						return nil, err
					}
					return todo, nil
				}),
			},
			"deleteToDo": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.instrument("deleteToDo", func(p graphql.ResolveParams) (interface{}, error) {
					return b.resolvers.DeleteToDo(p.Context, b.requestContext(p), p.Args["id"].(string))
				}),
			},
		},
	})
}

// instrument wraps a top-level field resolver with operation metrics.
func (b *builder) instrument(operation string, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	if b.metrics == nil {
		return resolve
	}
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		out, err := resolve(p)
		b.metrics.RecordOperation(operation, err, time.Since(start))
		return out, err
	}
}
