package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/models"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.New(usage)
	}
	return id, nil
}

// Posts lists posts, optionally filtered by a search query. When the server
// is unreachable the most recently fetched list is shown from the local
// cache; successful fetches replace that cache.
func (a *App) Posts(ctx context.Context, args []string) error {
	filter := api.PostFilter{Search: strings.Join(args, " ")}

	posts, err := a.api.ListPosts(ctx, filter)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) && filter.Search == "" {
			cached, cerr := a.posts.List(ctx)
			if cerr == nil && len(cached) > 0 {
				fmt.Fprintln(a.out, "Server unavailable, showing cached posts:")
				a.printPosts(cached)
				return nil
			}
		}
		return err
	}

	if filter.Search == "" {
		if cerr := a.posts.ReplaceAll(ctx, posts); cerr != nil {
			a.logger.Warn(ctx, "updating post cache", "error", cerr)
		}
	}
	a.printPosts(posts)
	return nil
}

func (a *App) printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts.")
		return
	}
	for _, p := range posts {
		var marks []string
		if p.IsPinned {
			marks = append(marks, "pinned")
		}
		if p.IsClosed {
			marks = append(marks, "closed")
		}
		if p.IsSolved {
			marks = append(marks, "solved")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " [" + strings.Join(marks, ",") + "]"
		}
		fmt.Fprintf(a.out, "#%d %s - %s, %d likes, %d comments%s\n",
			p.ID, p.Title, p.Author.Username, p.LikesCount, p.CommentsCount, suffix)
	}
}

// Show prints one post with its top-level comments. Offline it falls back to
// the cached copy, without comments.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: show <post-id>")
	if err != nil {
		return err
	}

	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			cached, cerr := a.posts.Get(ctx, id)
			if cerr == nil && cached != nil {
				fmt.Fprintln(a.out, "Server unavailable, showing cached copy:")
				a.printPost(cached)
				return nil
			}
		}
		return err
	}
	a.printPost(post)

	comments, err := a.api.ListComments(ctx, id, true)
	if err != nil {
		return err
	}
	for _, c := range comments {
		fmt.Fprintf(a.out, "  [%d] %s: %s (%d likes)\n", c.ID, c.Author.Username, c.Content, c.LikesCount)
	}
	return nil
}

func (a *App) printPost(p *models.Post) {
	fmt.Fprintf(a.out, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(a.out, "by %s in %s on %s - %d views, %d likes\n",
		p.Author.Username, p.CategoryName, p.CreatedAt.Format("2006-01-02"), p.ViewsCount, p.LikesCount)
	fmt.Fprintln(a.out, p.Content)
}

// NewPost interactively creates a post.
func (a *App) NewPost(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}

	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "  %d: %s\n", c.ID, c.Name)
	}
	catArg, err := getSimpleText(a.reader, "Category id", a.out)
	if err != nil {
		return err
	}
	category, err := strconv.ParseInt(catArg, 10, 64)
	if err != nil {
		return errors.New("category must be a number")
	}

	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	post, err := a.api.CreatePost(ctx, models.PostDraft{Title: title, Content: content, Category: category})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created post #%d.\n", post.ID)
	return nil
}

// Comment interactively replies to a post, or to another comment when a
// parent id is given.
func (a *App) Comment(ctx context.Context, args []string) error {
	postID, err := parseID(args, "usage: comment <post-id>")
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	parentArg, err := getSimpleText(a.reader, "Reply to comment id (empty for top level)", a.out)
	if err != nil {
		return err
	}

	draft := models.CommentDraft{Post: postID, Content: content}
	if parentArg != "" {
		parent, err := strconv.ParseInt(parentArg, 10, 64)
		if err != nil {
			return errors.New("parent must be a number")
		}
		draft.Parent = &parent
	}

	comment, err := a.api.CreateComment(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment #%d added.\n", comment.ID)
	return nil
}

// EditPost interactively replaces the editable fields of an owned post. The
// current values are fetched first so pressing Enter keeps them.
func (a *App) EditPost(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: edit <post-id>")
	if err != nil {
		return err
	}
	current, err := a.api.GetPost(ctx, id)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = current.Title
	}
	content, err := getMultiline(a.reader, "Content (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = current.Content
	}

	draft := models.PostDraft{Title: title, Content: content, Category: current.Category}
	if _, err := a.api.UpdatePost(ctx, id, draft); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post #%d updated.\n", id)
	return nil
}

// DeletePost removes an owned (or moderated) post after confirmation.
func (a *App) DeletePost(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: delete <post-id>")
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete post #%d? (yes/no)", id), a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Fprintln(a.out, "Not deleted.")
		return nil
	}
	if err := a.api.DeletePost(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post #%d deleted.\n", id)
	return nil
}

// Like toggles the caller's like on a post.
func (a *App) Like(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: like <post-id>")
	if err != nil {
		return err
	}
	res, err := a.api.LikePost(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s, %d likes now.\n", res.Status, res.LikesCount)
	return nil
}

// LikeComment toggles the caller's like on a comment.
func (a *App) LikeComment(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: likecomment <comment-id>")
	if err != nil {
		return err
	}
	res, err := a.api.LikeComment(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s, %d likes now.\n", res.Status, res.LikesCount)
	return nil
}

// Replies lists the nested replies of one comment.
func (a *App) Replies(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: replies <comment-id>")
	if err != nil {
		return err
	}
	replies, err := a.api.Replies(ctx, id)
	if err != nil {
		return err
	}
	if len(replies) == 0 {
		fmt.Fprintln(a.out, "No replies.")
		return nil
	}
	for _, c := range replies {
		fmt.Fprintf(a.out, "  [%d] %s: %s (%d likes)\n", c.ID, c.Author.Username, c.Content, c.LikesCount)
	}
	return nil
}

// EditComment replaces the text of an owned comment.
func (a *App) EditComment(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: editcomment <comment-id>")
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "New text", a.out)
	if err != nil {
		return err
	}
	if _, err := a.api.UpdateComment(ctx, id, content); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment #%d updated.\n", id)
	return nil
}

// DeleteComment removes an owned (or moderated) comment.
func (a *App) DeleteComment(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: delcomment <comment-id>")
	if err != nil {
		return err
	}
	if err := a.api.DeleteComment(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment #%d deleted.\n", id)
	return nil
}

// Pin toggles the pinned state of a post. Moderator or admin only; the
// server enforces the role.
func (a *App) Pin(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: pin <post-id>")
	if err != nil {
		return err
	}
	pinned, err := a.api.PinPost(ctx, id)
	if err != nil {
		return err
	}
	if pinned {
		fmt.Fprintln(a.out, "Post pinned.")
	} else {
		fmt.Fprintln(a.out, "Post unpinned.")
	}
	return nil
}

// CloseThread toggles the closed state of a post.
func (a *App) CloseThread(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: close <post-id>")
	if err != nil {
		return err
	}
	closed, err := a.api.ClosePost(ctx, id)
	if err != nil {
		return err
	}
	if closed {
		fmt.Fprintln(a.out, "Post closed.")
	} else {
		fmt.Fprintln(a.out, "Post reopened.")
	}
	return nil
}

// Solve marks the caller's own post as solved, optionally naming the
// best-answer comment as a second argument.
func (a *App) Solve(ctx context.Context, args []string) error {
	id, err := parseID(args, "usage: solve <post-id> [comment-id]")
	if err != nil {
		return err
	}
	var commentID *int64
	if len(args) > 1 {
		cid, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.New("usage: solve <post-id> [comment-id]")
		}
		commentID = &cid
	}
	if err := a.api.MarkSolved(ctx, id, commentID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Post marked solved.")
	return nil
}

// MyPosts lists the authenticated user's posts.
func (a *App) MyPosts(ctx context.Context) error {
	posts, err := a.api.MyPosts(ctx)
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}

// Categories lists the forum's categories.
func (a *App) Categories(ctx context.Context) error {
	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "%s (%s): %d posts\n", c.Name, c.Slug, c.PostsCount)
	}
	return nil
}

// CategoryPosts shows one category and the posts filed under it.
func (a *App) CategoryPosts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: category <slug>")
	}

	category, err := a.api.GetCategory(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s - %s\n", category.Name, category.Description)

	posts, err := a.api.CategoryPosts(ctx, args[0])
	if err != nil {
		return err
	}
	a.printPosts(posts)
	return nil
}
