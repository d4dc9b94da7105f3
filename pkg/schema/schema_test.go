package schema

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/tasklistio/tasklist/pkg/auth"
	"github.com/tasklistio/tasklist/pkg/metrics"
	"github.com/tasklistio/tasklist/pkg/resolver"
	"github.com/tasklistio/tasklist/pkg/store"
)

func newTestSchema(t *testing.T) (graphql.Schema, *resolver.Resolver) {
	t.Helper()
	st := store.NewMemoryStore()
	authSvc := auth.NewService("test-secret", time.Hour, 4)
	r := resolver.New(st, authSvc, nil)

	s, err := New(r, metrics.New())
	if err != nil {
		t.Fatalf("New() schema error = %v", err)
	}
	return s, r
}

func exec(t *testing.T, s graphql.Schema, rc *resolver.RequestContext, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	ctx := context.Background()
	if rc != nil {
		ctx = WithRequestContext(ctx, rc)
	}
	return graphql.Do(graphql.Params{
		Schema:         s,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func data(t *testing.T, result *graphql.Result) map[string]interface{} {
	t.Helper()
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected GraphQL errors: %v", result.Errors)
	}
	return result.Data.(map[string]interface{})
}

// signUp registers a user through the schema and returns a request context
// authenticated with the returned token, plus the user's ID.
func signUp(t *testing.T, s graphql.Schema, r *resolver.Resolver, email string) (*resolver.RequestContext, string) {
	t.Helper()
	result := exec(t, s, nil, `
		mutation($email: String!) {
			signUp(email: $email, password: "password123", name: "Test") {
				token
				user { id }
			}
		}`, map[string]interface{}{"email": email})

	payload := data(t, result)["signUp"].(map[string]interface{})
	token := payload["token"].(string)
	userID := payload["user"].(map[string]interface{})["id"].(string)
	return r.NewRequestContext(token), userID
}

func TestSignUpAndSignInThroughSchema(t *testing.T) {
	s, r := newTestSchema(t)
	signUp(t, s, r, "ada@example.com")

	result := exec(t, s, nil, `
		mutation {
			signIn(email: "ada@example.com", password: "password123") {
				token
				user { id name email }
			}
		}`, nil)

	payload := data(t, result)["signIn"].(map[string]interface{})
	if payload["token"].(string) == "" {
		t.Error("signIn returned an empty token")
	}
	user := payload["user"].(map[string]interface{})
	if user["email"] != "ada@example.com" {
		t.Errorf("signIn user email = %v, want ada@example.com", user["email"])
	}
}

func TestSignInRejectionThroughSchema(t *testing.T) {
	s, r := newTestSchema(t)
	signUp(t, s, r, "ada@example.com")

	wrong := exec(t, s, nil, `mutation { signIn(email: "ada@example.com", password: "bad") { token } }`, nil)
	unknown := exec(t, s, nil, `mutation { signIn(email: "nobody@example.com", password: "bad") { token } }`, nil)

	if len(wrong.Errors) == 0 || len(unknown.Errors) == 0 {
		t.Fatal("expected signIn errors for both wrong password and unknown email")
	}
	if wrong.Errors[0].Message != unknown.Errors[0].Message {
		t.Errorf("error messages differ: %q vs %q", wrong.Errors[0].Message, unknown.Errors[0].Message)
	}
}

func TestUserTypeHasNoPasswordField(t *testing.T) {
	s, r := newTestSchema(t)
	signUp(t, s, r, "ada@example.com")

	result := exec(t, s, nil, `mutation { signIn(email: "ada@example.com", password: "password123") { user { password } } }`, nil)
	if len(result.Errors) == 0 {
		t.Fatal("selecting a password field must be a schema error")
	}
}

func TestMutationRequiresAuthenticationThroughSchema(t *testing.T) {
	s, _ := newTestSchema(t)

	result := exec(t, s, nil, `mutation { createTaskList(title: "x") { id } }`, nil)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for an unauthenticated mutation")
	}
	if !strings.Contains(result.Errors[0].Message, "unauthenticated") {
		t.Errorf("error = %q, want it to mention unauthenticated", result.Errors[0].Message)
	}
}

func TestTaskListGraphStitching(t *testing.T) {
	s, r := newTestSchema(t)
	rc, userID := signUp(t, s, r, "ada@example.com")

	created := data(t, exec(t, s, rc, `mutation { createTaskList(title: "groceries") { id title progress } }`, nil))
	list := created["createTaskList"].(map[string]interface{})
	listID := list["id"].(string)
	if list["progress"].(float64) != 0 {
		t.Errorf("progress of a fresh list = %v, want 0", list["progress"])
	}

	first := data(t, exec(t, s, rc, `
		mutation($listId: ID!) { createToDo(content: "milk", taskListId: $listId) { id isCompleted } }`,
		map[string]interface{}{"listId": listID}))
	todo := first["createToDo"].(map[string]interface{})
	if todo["isCompleted"].(bool) {
		t.Error("new todo must start not completed")
	}
	data(t, exec(t, s, rc, `
		mutation($listId: ID!) { createToDo(content: "eggs", taskListId: $listId) { id } }`,
		map[string]interface{}{"listId": listID}))

	data(t, exec(t, s, rc, `
		mutation($id: ID!) { updateToDo(id: $id, isCompleted: true) { id isCompleted } }`,
		map[string]interface{}{"id": todo["id"]}))

	result := data(t, exec(t, s, rc, `
		query($id: ID!) {
			getTaskList(id: $id) {
				title
				progress
				users { id email }
				todos { content isCompleted }
			}
		}`, map[string]interface{}{"id": listID}))

	got := result["getTaskList"].(map[string]interface{})
	if got["progress"].(float64) != 50.0 {
		t.Errorf("progress = %v, want exactly 50.0", got["progress"])
	}
	users := got["users"].([]interface{})
	if len(users) != 1 || users[0].(map[string]interface{})["id"] != userID {
		t.Errorf("users = %v, want only the creator %s", users, userID)
	}
	todos := got["todos"].([]interface{})
	if len(todos) != 2 {
		t.Errorf("todos = %v, want 2 items", todos)
	}
}

func TestGetTaskListMissingIsNull(t *testing.T) {
	s, _ := newTestSchema(t)

	result := data(t, exec(t, s, nil, `query { getTaskList(id: "no-such-id") { id } }`, nil))
	if result["getTaskList"] != nil {
		t.Errorf("getTaskList(missing) = %v, want null", result["getTaskList"])
	}
}

func TestMyTaskListScopedToCaller(t *testing.T) {
	s, r := newTestSchema(t)
	adaRC, _ := signUp(t, s, r, "ada@example.com")
	bobRC, _ := signUp(t, s, r, "bob@example.com")

	data(t, exec(t, s, adaRC, `mutation { createTaskList(title: "ada's") { id } }`, nil))

	adaLists := data(t, exec(t, s, adaRC, `query { myTaskList { title } }`, nil))["myTaskList"].([]interface{})
	if len(adaLists) != 1 {
		t.Errorf("ada's myTaskList = %v, want 1 list", adaLists)
	}

	bobLists := data(t, exec(t, s, bobRC, `query { myTaskList { title } }`, nil))["myTaskList"]
	if bobLists != nil {
		if lists, ok := bobLists.([]interface{}); ok && len(lists) != 0 {
			t.Errorf("bob's myTaskList = %v, want empty", lists)
		}
	}

	anonymous := data(t, exec(t, s, nil, `query { myTaskList { title } }`, nil))["myTaskList"]
	if anonymous != nil {
		if lists, ok := anonymous.([]interface{}); ok && len(lists) != 0 {
			t.Errorf("anonymous myTaskList = %v, want empty", lists)
		}
	}
}

func TestDeleteTaskListThroughSchema(t *testing.T) {
	s, r := newTestSchema(t)
	rc, _ := signUp(t, s, r, "ada@example.com")

	created := data(t, exec(t, s, rc, `mutation { createTaskList(title: "doomed") { id } }`, nil))
	listID := created["createTaskList"].(map[string]interface{})["id"].(string)

	todoResult := data(t, exec(t, s, rc, `
		mutation($listId: ID!) { createToDo(content: "orphan-to-be", taskListId: $listId) { id } }`,
		map[string]interface{}{"listId": listID}))
	todoID := todoResult["createToDo"].(map[string]interface{})["id"].(string)

	deleted := data(t, exec(t, s, rc, `
		mutation($id: ID!) { deleteTaskList(id: $id) }`, map[string]interface{}{"id": listID}))
	if deleted["deleteTaskList"] != true {
		t.Errorf("deleteTaskList = %v, want true", deleted["deleteTaskList"])
	}

	after := data(t, exec(t, s, rc, `query($id: ID!) { getTaskList(id: $id) { id } }`,
		map[string]interface{}{"id": listID}))
	if after["getTaskList"] != nil {
		t.Errorf("getTaskList(deleted) = %v, want null", after["getTaskList"])
	}

	// The orphaned todo still exists and its parent resolves to null.
	orphan := data(t, exec(t, s, rc, `
		mutation($id: ID!) { updateToDo(id: $id) { id taskList { id } } }`,
		map[string]interface{}{"id": todoID}))
	got := orphan["updateToDo"].(map[string]interface{})
	if got["taskList"] != nil {
		t.Errorf("orphaned todo taskList = %v, want null", got["taskList"])
	}
}
