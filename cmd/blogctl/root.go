package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"miniblog/pkg/client"
	"miniblog/pkg/types"
)

type globals struct {
	server  string
	apiKey  string
	asJSON  bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Command line client for the miniblog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.server, "server", "s", "http://localhost:3000", "API server URL")
	flags.StringVarP(&g.apiKey, "api-key", "k", "perscholas", "API key for /api routes")
	flags.BoolVar(&g.asJSON, "json", false, "print raw JSON")
	flags.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCommentsCmd(g), newUsersCmd(g), newPostsCmd(g))
	return root
}

func (g *globals) client() *client.Client {
	return client.New(g.server, g.apiKey)
}

func newCommentsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "comments", Short: "Manage comments"}

	var userID, postID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List comments, optionally by user or post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := g.client().ListComments(client.CommentFilter{UserID: userID, PostID: postID})
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), comments, func(w io.Writer) { printComments(w, comments) })
		},
	}
	list.Flags().IntVar(&userID, "user", 0, "only comments by this user id")
	list.Flags().IntVar(&postID, "post", 0, "only comments on this post id")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			comment, found, err := g.client().GetComment(id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("comment %d not found", id)
			}
			return g.printComment(cmd.OutOrStdout(), comment)
		},
	}

	var newComment types.Comment
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := g.client().CreateComment(newComment)
			if err != nil {
				return err
			}
			return g.printComment(cmd.OutOrStdout(), created)
		},
	}
	create.Flags().IntVar(&newComment.UserID, "user", 0, "author user id")
	create.Flags().IntVar(&newComment.PostID, "post", 0, "post id")
	create.Flags().StringVar(&newComment.Body, "body", "", "comment text")

	var body string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace a comment's body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			updated, err := g.client().UpdateCommentBody(id, body)
			if err != nil {
				return err
			}
			return g.printComment(cmd.OutOrStdout(), updated)
		},
	}
	edit.Flags().StringVar(&body, "body", "", "new comment text")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := g.client().DeleteComment(id)
			if err != nil {
				return err
			}
			return g.printComment(cmd.OutOrStdout(), removed)
		},
	}

	cmd.AddCommand(list, get, create, edit, del)
	return cmd
}

func newUsersCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Browse users"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := g.client().ListUsers()
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), users, func(w io.Writer) { printUsers(w, users) })
		},
	})
	return cmd
}

func newPostsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "posts", Short: "Browse posts"}

	var userID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts, optionally by user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := g.client().ListPosts(userID)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), posts, func(w io.Writer) { printPosts(w, posts) })
		},
	}
	list.Flags().IntVar(&userID, "user", 0, "only posts by this user id")

	cmd.AddCommand(list)
	return cmd
}

func (g *globals) printComment(w io.Writer, c types.Comment) error {
	return g.print(w, c, func(w io.Writer) { printComments(w, []types.Comment{c}) })
}

// print writes v as indented JSON with --json, otherwise calls pretty.
func (g *globals) print(w io.Writer, v any, pretty func(io.Writer)) error {
	if !g.asJSON {
		pretty(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
