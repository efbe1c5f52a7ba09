// Package seed loads the starter users, posts and comments.
package seed

import (
	"fmt"

	"miniblog/pkg/store"
	"miniblog/pkg/types"
)

var Users = []types.User{
	{Name: "Carey", Username: "cyare23", Email: "cyare23@gmail.com"},
	{Name: "Mikoto", Username: "mikoto_reborn", Email: "mikoto_reborn@yahoo.com"},
	{Name: "Ronald", Username: "RonZ", Email: "ronzthegreat@hotmail.com"},
}

var Posts = []types.Post{
	{UserID: 1, Title: "My First Post", Content: "This is my first post. Please be nice!"},
	{UserID: 1, Title: "Second Post", Content: "Wow, I'm really getting the hang of this."},
	{UserID: 2, Title: "Hello World", Content: "Is anyone out there?"},
	{UserID: 3, Title: "On Routing", Content: "Mount your routers before the 404 handler."},
}

var Comments = []types.Comment{
	{UserID: 2, PostID: 1, Body: "Welcome aboard!"},
	{UserID: 3, PostID: 1, Body: "Nice first post."},
	{UserID: 1, PostID: 3, Body: "Hello Mikoto!"},
	{UserID: 2, PostID: 4, Body: "Good tip, thanks."},
}

// Load fills each store with the starter records, skipping any store that
// already holds data. It reports how many records were added.
func Load(users store.UserStore, posts store.PostStore, comments store.CommentStore) (int, error) {
	added := 0
	n, err := fill(users, Users)
	if err != nil {
		return added, fmt.Errorf("seeding users: %w", err)
	}
	added += n
	if n, err = fill(posts, Posts); err != nil {
		return added, fmt.Errorf("seeding posts: %w", err)
	}
	added += n
	if n, err = fill(comments, Comments); err != nil {
		return added, fmt.Errorf("seeding comments: %w", err)
	}
	added += n
	return added, nil
}

func fill[T store.Entity[T]](s store.Store[T], records []T) (int, error) {
	existing, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, rec := range records {
		if _, err := s.Create(rec); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}
