package models

// Board is a discussion post.
type Board struct {
	BoardID    int64        `json:"boardId"`
	UserID     int64        `json:"userId"`
	UserName   string       `json:"userName"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Category   string       `json:"category"`
	ViewCount  int          `json:"viewCount"`
	CreatedAt  Time         `json:"createdAt"`
	UpdatedAt  Time         `json:"updatedAt"`
	Images     []BoardImage `json:"images"`
	AuthorName string       `json:"authorName"`
}

// Author returns the display name, preferring the joined author name.
func (b Board) Author() string {
	if b.AuthorName != "" {
		return b.AuthorName
	}
	return b.UserName
}

type BoardImage struct {
	ImageID  int64  `json:"imageId"`
	BoardID  int64  `json:"boardId"`
	ImageURL string `json:"imageUrl"`
}

// BoardInput is the create/update body.
type BoardInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// Comment belongs to a board.
type Comment struct {
	CommentID  int64  `json:"commentId"`
	BoardID    int64  `json:"boardId"`
	UserID     int64  `json:"userId"`
	Content    string `json:"content"`
	CreatedAt  Time   `json:"createdAt"`
	UpdatedAt  Time   `json:"updatedAt"`
	AuthorName string `json:"authorName"`
}

// CommentInput is the create/update body.
type CommentInput struct {
	Content  string `json:"content"`
	UserName string `json:"userName,omitempty"`
}
