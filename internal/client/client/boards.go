package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nutricare/nutricare-client/internal/client/models"
)

func (c *HTTPClient) ListBoards(ctx context.Context) ([]models.Board, error) {
	var out []models.Board
	if err := c.get(ctx, "/boards", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *HTTPClient) GetBoard(ctx context.Context, id int64) (*models.Board, error) {
	var out *models.Board
	if err := c.get(ctx, fmt.Sprintf("/boards/%d", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListMyBoards(ctx context.Context) ([]models.Board, error) {
	var out []models.Board
	if err := c.get(ctx, "/boards/me", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// CreateBoard returns what the server answers, which is the number of rows
// created.
func (c *HTTPClient) CreateBoard(ctx context.Context, in models.BoardInput) (int, error) {
	var created int
	if err := c.sendJSON(ctx, http.MethodPost, "/boards", in, &created); err != nil {
		return 0, err
	}
	return created, nil
}

func (c *HTTPClient) UpdateBoard(ctx context.Context, id int64, in models.BoardInput) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/boards/%d", id), in, nil)
}

func (c *HTTPClient) DeleteBoard(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/boards/%d", id))
}

func (c *HTTPClient) UploadBoardImages(ctx context.Context, boardID int64, files []FilePart) error {
	cl, err := multipartCall(http.MethodPost, "/board-images",
		map[string]string{"boardId": strconv.FormatInt(boardID, 10)}, "file", files)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, cl, nil)
	return err
}

func (c *HTTPClient) ListComments(ctx context.Context, boardID int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.get(ctx, fmt.Sprintf("/boards/%d/comments", boardID), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, boardID int64, in models.CommentInput) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/boards/%d/comments", boardID), in, nil)
}

func (c *HTTPClient) UpdateComment(ctx context.Context, commentID int64, in models.CommentInput) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", commentID), in, nil)
}

func (c *HTTPClient) DeleteComment(ctx context.Context, commentID int64) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%d", commentID))
}
