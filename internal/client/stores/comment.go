package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/logging"
)

var (
	ErrCommentCreate = errors.New("failed to write the comment")
	ErrCommentUpdate = errors.New("failed to edit the comment")
	ErrCommentDelete = errors.New("failed to delete the comment")
)

const msgLoadComments = "failed to load comments"

type CommentState struct {
	Comments []models.Comment
	Loading  bool
	Error    string
}

// CommentStore owns the comments of the board being viewed.
type CommentStore struct {
	api client.Client
	log logging.Logger

	mu    sync.Mutex
	state CommentState
}

func NewCommentStore(api client.Client, log logging.Logger) *CommentStore {
	if log == nil {
		log = logging.Nop()
	}
	return &CommentStore{
		api:   api,
		log:   log.With("store", "comment"),
		state: CommentState{Comments: []models.Comment{}},
	}
}

func (s *CommentStore) State() CommentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Comments = slices.Clone(st.Comments)
	return st
}

func (s *CommentStore) setLoading(v bool) {
	s.mu.Lock()
	s.state.Loading = v
	s.mu.Unlock()
}

// FetchComments loads the comments of boardID. A zero id is a no-op.
func (s *CommentStore) FetchComments(ctx context.Context, boardID int64) {
	if boardID == 0 {
		return
	}

	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	comments, err := s.api.ListComments(ctx, boardID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.log.Error(ctx, msgLoadComments, "boardId", boardID, "error", err)
		s.state.Error = msgLoadComments
		return
	}
	s.state.Comments = orEmpty(comments)
}

// CreateComment posts a comment and reloads the list. It does nothing unless
// boardID, content and userName are all set.
func (s *CommentStore) CreateComment(ctx context.Context, boardID int64, content, userName string) error {
	if boardID == 0 || content == "" || userName == "" {
		return nil
	}
	s.setLoading(true)
	defer s.setLoading(false)

	err := s.api.CreateComment(ctx, boardID, models.CommentInput{Content: content, UserName: userName})
	if err != nil {
		s.log.Error(ctx, "failed to create comment", "boardId", boardID, "error", err)
		return fmt.Errorf("%w: %w", ErrCommentCreate, err)
	}
	s.FetchComments(ctx, boardID)
	return nil
}

func (s *CommentStore) UpdateComment(ctx context.Context, boardID, commentID int64, content string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.UpdateComment(ctx, commentID, models.CommentInput{Content: content}); err != nil {
		s.log.Error(ctx, "failed to update comment", "commentId", commentID, "error", err)
		return fmt.Errorf("%w: %w", ErrCommentUpdate, err)
	}
	s.FetchComments(ctx, boardID)
	return nil
}

func (s *CommentStore) DeleteComment(ctx context.Context, boardID, commentID int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.DeleteComment(ctx, commentID); err != nil {
		s.log.Error(ctx, "failed to delete comment", "commentId", commentID, "error", err)
		return fmt.Errorf("%w: %w", ErrCommentDelete, err)
	}
	s.FetchComments(ctx, boardID)
	return nil
}
