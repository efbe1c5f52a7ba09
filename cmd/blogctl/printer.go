package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"miniblog/pkg/types"
)

var (
	idColor   = color.New(color.FgCyan, color.Bold).SprintFunc()
	metaColor = color.New(color.FgYellow).SprintFunc()
	dimColor  = color.New(color.Faint).SprintFunc()
	errColor  = color.New(color.FgRed).SprintFunc()
)

func printComments(w io.Writer, comments []types.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, dimColor("no comments"))
		return
	}
	for _, c := range comments {
		fmt.Fprintf(w, "%s %s\n    %s\n",
			idColor(fmt.Sprintf("#%d", c.ID)),
			metaColor(fmt.Sprintf("user %d on post %d", c.UserID, c.PostID)),
			c.Body)
	}
}

func printUsers(w io.Writer, users []types.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, dimColor("no users"))
		return
	}
	for _, u := range users {
		fmt.Fprintf(w, "%s %s (%s) %s\n", idColor(fmt.Sprintf("#%d", u.ID)), u.Name, metaColor(u.Username), dimColor(u.Email))
	}
}

func printPosts(w io.Writer, posts []types.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, dimColor("no posts"))
		return
	}
	for _, p := range posts {
		fmt.Fprintf(w, "%s %s %s\n    %s\n",
			idColor(fmt.Sprintf("#%d", p.ID)),
			p.Title,
			metaColor(fmt.Sprintf("by user %d", p.UserID)),
			p.Content)
	}
}
