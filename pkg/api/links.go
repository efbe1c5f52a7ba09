package api

import (
	"net/http"

	"miniblog/pkg/types"
)

var rootLinks = types.LinkList{Links: []types.Link{
	{Href: "/api", Rel: "api", Type: "GET"},
}}

var apiLinks = types.LinkList{Links: []types.Link{
	{Href: "api/users", Rel: "users", Type: "GET"},
	{Href: "api/users", Rel: "users", Type: "POST"},
	{Href: "/api/users/:id/posts", Rel: "user-posts", Type: "GET"},
	{Href: "api/posts", Rel: "posts", Type: "GET"},
	{Href: "api/posts", Rel: "posts", Type: "POST"},
	{Href: "/api/posts?userId=<VALUE>", Rel: "posts-by-user", Type: "GET"},
	{Href: "/comments", Rel: "comments", Type: "GET"},
	{Href: "/comments", Rel: "comments", Type: "POST"},
	{Href: "/comments/:id", Rel: "comment", Type: "GET"},
	{Href: "/comments/:id", Rel: "comment", Type: "PATCH"},
	{Href: "/comments/:id", Rel: "comment", Type: "DELETE"},
	{Href: "/comments?userId=<VALUE>", Rel: "comments-by-user", Type: "GET"},
	{Href: "/comments?postId=<VALUE>", Rel: "comments-by-post", Type: "GET"},
	{Href: "/posts/:id/comments", Rel: "post-comments", Type: "GET"},
	{Href: "/users/:id/comments", Rel: "user-comments", Type: "GET"},
	{Href: "/api/posts/:id/comments?userId=<VALUE>", Rel: "post-comments-by-user", Type: "GET"},
	{Href: "/api/users/:id/comments?postId=<VALUE>", Rel: "user-comments-by-post", Type: "GET"},
}}

func (s *Server) rootLinks(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, rootLinks)
	return nil
}

func (s *Server) apiLinks(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, apiLinks)
	return nil
}
