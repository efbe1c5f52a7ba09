package api

import (
	"net/http"
	"testing"

	"miniblog/pkg/types"
)

func withKey(path string) string {
	return path + "?api-key=" + validKey
}

func TestUserLifecycle(t *testing.T) {
	srv, stores := newTestServer()
	h := srv.Routes()

	rec := doJSON(t, h, "POST", withKey("/api/users"), `{"name":"Ann","username":"ann","email":"ann@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201", rec.Code)
	}
	created := decode[types.User](t, rec)
	if created.ID != 1 || created.Username != "ann" {
		t.Errorf("created %+v", created)
	}

	rec = doJSON(t, h, "PATCH", withKey("/api/users/1"), `{"email":"ann@example.org"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: got status %d, want 200", rec.Code)
	}
	want := types.User{ID: 1, Name: "Ann", Username: "ann", Email: "ann@example.org"}
	if got := decode[types.User](t, rec); got != want {
		t.Errorf("patched %+v, want %+v", got, want)
	}

	rec = do(t, h, "GET", withKey("/api/users/1"), "", "")
	if got := decode[types.User](t, rec); got != want {
		t.Errorf("get %+v, want %+v", got, want)
	}

	rec = do(t, h, "DELETE", withKey("/api/users/1"), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got status %d, want 200", rec.Code)
	}
	users, _ := stores.users.List()
	if len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}

	rec = do(t, h, "GET", withKey("/api/users/1"), "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d, want 404", rec.Code)
	}
	if got := errorMessage(t, rec); got != "User not found" {
		t.Errorf("got error %q", got)
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"missing email", `{"name":"Bo","username":"bo"}`, http.StatusBadRequest, "Insufficient Data"},
		{"duplicate username", `{"name":"Other","username":"cyare23","email":"x@example.com"}`, http.StatusConflict, "Username Already Taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, stores := newTestServer()
			stores.users.Create(types.User{Name: "Carey", Username: "cyare23", Email: "c@example.com"})

			rec := doJSON(t, srv.Routes(), "POST", withKey("/api/users"), tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := errorMessage(t, rec); got != tt.wantError {
				t.Errorf("got error %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestPatchUserUsernameConflict(t *testing.T) {
	srv, stores := newTestServer()
	stores.users.Create(types.User{Name: "A", Username: "a", Email: "a@example.com"})
	stores.users.Create(types.User{Name: "B", Username: "b", Email: "b@example.com"})
	h := srv.Routes()

	rec := doJSON(t, h, "PATCH", withKey("/api/users/2"), `{"username":"a"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409", rec.Code)
	}

	// keeping your own username is not a conflict
	rec = doJSON(t, h, "PATCH", withKey("/api/users/2"), `{"username":"b","name":"Bee"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	rec = doJSON(t, h, "PATCH", withKey("/api/users/9"), `{"name":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing user: got status %d, want 404", rec.Code)
	}
}

func TestListUserPosts(t *testing.T) {
	srv, stores := newTestServer()
	stores.posts.Create(types.Post{UserID: 1, Title: "a", Content: "x"})
	stores.posts.Create(types.Post{UserID: 2, Title: "b", Content: "x"})
	stores.posts.Create(types.Post{UserID: 1, Title: "c", Content: "x"})

	rec := do(t, srv.Routes(), "GET", withKey("/api/users/1/posts"), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	posts := decode[[]types.Post](t, rec)
	if len(posts) != 2 || posts[0].Title != "a" || posts[1].Title != "c" {
		t.Errorf("got %+v", posts)
	}
}
