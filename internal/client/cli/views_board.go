package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
)

func (a *App) printBoards(boards []models.Board) {
	if len(boards) == 0 {
		a.println("No posts yet.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tVIEWS\tCREATED")
	for _, b := range boards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", b.BoardID, b.Title, b.Author(), b.ViewCount, b.CreatedAt)
	}
	tw.Flush()
}

func (a *App) viewBoardList(ctx context.Context, _ Navigation, _ []string) error {
	a.boards.FetchBoards(ctx)
	st := a.boards.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	a.printBoards(st.Boards)
	return nil
}

func (a *App) viewMyBoards(ctx context.Context, _ Navigation, _ []string) error {
	a.boards.FetchMyBoards(ctx)
	st := a.boards.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	a.printBoards(st.MyBoards)
	return nil
}

func (a *App) viewBoardDetail(ctx context.Context, nav Navigation, _ []string) error {
	id, err := parseID("post id", nav.Params["id"])
	if err != nil {
		return err
	}

	a.boards.FetchBoardByID(ctx, id)
	st := a.boards.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	if st.Board == nil {
		a.println("Post not found.")
		return nil
	}

	b := st.Board
	a.printf("#%d %s\n", b.BoardID, b.Title)
	a.printf("by %s | %s | views %d", b.Author(), b.CreatedAt, b.ViewCount)
	if b.Category != "" {
		a.printf(" | %s", b.Category)
	}
	a.println()
	a.println()
	a.println(b.Content)
	for _, img := range b.Images {
		a.println("  [image]", img.ImageURL)
	}
	a.println()

	a.comments.FetchComments(ctx, id)
	a.printComments()
	return nil
}

func (a *App) printComments() {
	st := a.comments.State()
	if st.Error != "" {
		a.println(st.Error)
		return
	}
	a.printf("Comments (%d)\n", len(st.Comments))
	for _, c := range st.Comments {
		a.printf("  [%d] %s (%s): %s\n", c.CommentID, c.AuthorName, c.CreatedAt, c.Content)
	}
}

func (a *App) viewBoardCreate(ctx context.Context, _ Navigation, _ []string) error {
	in, err := a.promptBoard(models.Board{})
	if err != nil {
		return err
	}
	if in.Title == "" || in.Content == "" {
		return errors.New("title and content are required")
	}

	images, err := getSimpleText(a.reader, "Image files, comma separated (optional)", a.out)
	if err != nil {
		return err
	}

	// Files are opened up front so a bad path fails before the post exists.
	parts, closeFiles, err := openImages(splitList(images))
	if err != nil {
		return err
	}
	defer closeFiles()

	if _, err := a.boards.CreateBoard(ctx, in); err != nil {
		return err
	}
	a.println("Post created.")

	if len(parts) == 0 {
		return a.Open(ctx, RouteBoardList, nil)
	}

	// The create endpoint answers with a row count; the newest of the
	// user's own posts is the one just written.
	a.boards.FetchMyBoards(ctx)
	var boardID int64
	for _, b := range a.boards.State().MyBoards {
		boardID = max(boardID, b.BoardID)
	}
	if boardID == 0 {
		return errors.New("could not find the new post to attach images to")
	}

	if err := a.boards.UploadBoardImages(ctx, boardID, parts); err != nil {
		return fmt.Errorf("post %d was created without images: %w", boardID, err)
	}
	a.printf("%d image(s) uploaded.\n", len(parts))
	return a.Open(ctx, RouteBoardDetail, []string{fmt.Sprint(boardID)})
}

func (a *App) viewBoardUpdate(ctx context.Context, nav Navigation, _ []string) error {
	id, err := parseID("post id", nav.Params["id"])
	if err != nil {
		return err
	}

	a.boards.FetchBoardByID(ctx, id)
	st := a.boards.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	if st.Board == nil {
		a.println("Post not found.")
		return nil
	}

	a.println("Leave a field empty to keep it.")
	in, err := a.promptBoard(*st.Board)
	if err != nil {
		return err
	}
	if err := a.boards.UpdateBoard(ctx, id, in); err != nil {
		return err
	}
	a.println("Post updated.")
	return a.Open(ctx, RouteBoardDetail, []string{fmt.Sprint(id)})
}

// promptBoard asks for the post fields, keeping cur's values for empty
// answers.
func (a *App) promptBoard(cur models.Board) (models.BoardInput, error) {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return models.BoardInput{}, err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return models.BoardInput{}, err
	}
	category, err := getSimpleText(a.reader, "Category (optional)", a.out)
	if err != nil {
		return models.BoardInput{}, err
	}

	return models.BoardInput{
		Title:    orString(title, cur.Title),
		Content:  orString(content, cur.Content),
		Category: orString(category, cur.Category),
	}, nil
}

// openImages opens every path or none. The returned func closes the files.
func openImages(paths []string) ([]client.FilePart, func(), error) {
	files := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	parts := make([]client.FilePart, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("image %s: %w", p, err)
		}
		files = append(files, f)
		parts = append(parts, client.FilePart{Name: filepath.Base(p), Reader: f})
	}
	return parts, closeAll, nil
}

func (a *App) DeleteBoard(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 1 {
		return errors.New("usage: delete <boardId>")
	}
	id, err := parseID("post id", args[0])
	if err != nil {
		return err
	}
	if err := a.boards.DeleteBoard(ctx, id); err != nil {
		return err
	}
	a.println("Post deleted.")
	a.printBoards(a.boards.State().Boards)
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: comment <boardId> <text>")
	}
	boardID, err := parseID("post id", args[0])
	if err != nil {
		return err
	}

	if err := a.comments.CreateComment(ctx, boardID, strings.Join(args[1:], " "), a.displayName()); err != nil {
		return err
	}
	a.printComments()
	return nil
}

func (a *App) EditComment(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 3 {
		return errors.New("usage: editcomment <boardId> <commentId> <text>")
	}
	boardID, err := parseID("post id", args[0])
	if err != nil {
		return err
	}
	commentID, err := parseID("comment id", args[1])
	if err != nil {
		return err
	}
	if err := a.comments.UpdateComment(ctx, boardID, commentID, strings.Join(args[2:], " ")); err != nil {
		return err
	}
	a.printComments()
	return nil
}

func (a *App) DeleteComment(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: uncomment <boardId> <commentId>")
	}
	boardID, err := parseID("post id", args[0])
	if err != nil {
		return err
	}
	commentID, err := parseID("comment id", args[1])
	if err != nil {
		return err
	}
	if err := a.comments.DeleteComment(ctx, boardID, commentID); err != nil {
		return err
	}
	a.printComments()
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
