package testutil

import (
	"net/http/httptest"

	"miniblog/pkg/api"
	"miniblog/pkg/client"
	"miniblog/pkg/store"
	"miniblog/pkg/types"
)

const APIKey = "perscholas"

type TestEnv struct {
	Server   *httptest.Server
	Client   *client.Client
	Comments store.CommentStore
	Users    store.UserStore
	Posts    store.PostStore
}

func NewTestEnv() *TestEnv {
	return NewTestEnvWithStores(
		store.NewMemStore[types.Comment](),
		store.NewMemStore[types.User](),
		store.NewMemStore[types.Post](),
	)
}

func NewTestEnvWithStores(comments store.CommentStore, users store.UserStore, posts store.PostStore) *TestEnv {
	srv := &api.Server{
		Comments: comments,
		Users:    users,
		Posts:    posts,
		APIKeys:  []string{APIKey},
	}
	ts := httptest.NewServer(srv.Routes())

	return &TestEnv{
		Server:   ts,
		Client:   client.New(ts.URL, APIKey),
		Comments: comments,
		Users:    users,
		Posts:    posts,
	}
}

func (e *TestEnv) Close() {
	e.Server.Close()
}
