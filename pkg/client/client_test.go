package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"miniblog/pkg/api"
	"miniblog/pkg/store"
	"miniblog/pkg/types"
)

const testKey = "perscholas"

func setup() (*Client, store.CommentStore, store.UserStore, store.PostStore, *httptest.Server) {
	comments := store.NewMemStore[types.Comment]()
	users := store.NewMemStore[types.User]()
	posts := store.NewMemStore[types.Post]()

	srv := &api.Server{Comments: comments, Users: users, Posts: posts, APIKeys: []string{testKey}}
	ts := httptest.NewServer(srv.Routes())

	c := New(ts.URL, testKey)
	return c, comments, users, posts, ts
}

func TestCommentRoundTrip(t *testing.T) {
	c, comments, _, _, ts := setup()
	defer ts.Close()

	// create
	created, err := c.CreateComment(types.Comment{UserID: 1, PostID: 2, Body: "hello"})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("got id %d, want 1", created.ID)
	}
	if all, _ := comments.List(); len(all) != 1 {
		t.Fatalf("expected 1 comment in store")
	}

	// get
	got, found, err := c.GetComment(created.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if !found || got != created {
		t.Fatalf("got %+v (found=%v), want %+v", got, found, created)
	}

	// list with filters
	c.CreateComment(types.Comment{UserID: 3, PostID: 2, Body: "other"})
	byUser, err := c.ListComments(CommentFilter{UserID: 3})
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(byUser) != 1 || byUser[0].Body != "other" {
		t.Errorf("got %+v", byUser)
	}
	onPost, err := c.PostComments(2, 0)
	if err != nil {
		t.Fatalf("PostComments: %v", err)
	}
	if len(onPost) != 2 {
		t.Errorf("got %d post comments, want 2", len(onPost))
	}
	byUserOnPost, err := c.UserComments(1, 2)
	if err != nil {
		t.Fatalf("UserComments: %v", err)
	}
	if len(byUserOnPost) != 1 {
		t.Errorf("got %d user comments, want 1", len(byUserOnPost))
	}

	// update
	updated, err := c.UpdateCommentBody(created.ID, "edited")
	if err != nil {
		t.Fatalf("UpdateCommentBody: %v", err)
	}
	if updated.Body != "edited" || updated.UserID != 1 {
		t.Errorf("got %+v", updated)
	}

	// delete
	removed, err := c.DeleteComment(created.ID)
	if err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if removed != updated {
		t.Errorf("removed %+v, want %+v", removed, updated)
	}

	_, found, _ = c.GetComment(created.ID)
	if found {
		t.Error("expected comment to be deleted")
	}
}

func TestCreateCommentError(t *testing.T) {
	c, _, _, _, ts := setup()
	defer ts.Close()

	_, err := c.CreateComment(types.Comment{UserID: 1})
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got err %T %v, want *Error", err, err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "Insufficient data to create comment" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestDeleteMissingComment(t *testing.T) {
	c, _, _, _, ts := setup()
	defer ts.Close()

	_, err := c.DeleteComment(5)
	if !IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestUserAndPostRoundTrip(t *testing.T) {
	c, _, users, _, ts := setup()
	defer ts.Close()

	user, err := c.CreateUser(types.User{Name: "Ann", Username: "ann", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if all, _ := users.List(); len(all) != 1 {
		t.Fatalf("expected 1 user in store")
	}

	user, err = c.UpdateUser(user.ID, types.User{Name: "Annie"})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if user.Name != "Annie" || user.Username != "ann" {
		t.Errorf("got %+v", user)
	}

	post, err := c.CreatePost(types.Post{UserID: user.ID, Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := c.UpdatePost(post.ID, types.Post{Content: "C2"}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	posts, err := c.UserPosts(user.ID)
	if err != nil {
		t.Fatalf("UserPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Content != "C2" {
		t.Errorf("got %+v", posts)
	}
	if filtered, _ := c.ListPosts(user.ID + 1); len(filtered) != 0 {
		t.Errorf("expected no posts for other user, got %+v", filtered)
	}

	if _, err := c.DeletePost(post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, found, _ := c.GetPost(post.ID); found {
		t.Error("expected post to be deleted")
	}
	if _, err := c.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, found, _ := c.GetUser(user.ID); found {
		t.Error("expected user to be deleted")
	}
}

func TestWrongAPIKey(t *testing.T) {
	_, _, _, _, ts := setup()
	defer ts.Close()

	c := New(ts.URL, "bogus")
	_, err := c.ListUsers()
	apiErr, ok := err.(*Error)
	if !ok || apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid API Key" {
		t.Errorf("got %v, want 401 Invalid API Key", err)
	}

	links, err := c.Links()
	if err != nil {
		t.Fatalf("root links need no key: %v", err)
	}
	if len(links.Links) != 1 {
		t.Errorf("got %d root links", len(links.Links))
	}
}
