package stores

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/logging"
)

const (
	msgLoadBoards   = "failed to load posts"
	msgLoadBoard    = "failed to load the post"
	msgLoadMyBoards = "failed to load your posts"
	msgCreateBoard  = "failed to create the post"
	msgUploadImages = "failed to upload images"
	msgUpdateBoard  = "failed to update the post"
	msgDeleteBoard  = "failed to delete the post"
)

type BoardState struct {
	Boards   []models.Board
	Board    *models.Board
	MyBoards []models.Board
	Loading  bool
	Error    string
}

// BoardStore owns the discussion board.
type BoardStore struct {
	api client.Client
	log logging.Logger

	mu    sync.Mutex
	state BoardState
}

func NewBoardStore(api client.Client, log logging.Logger) *BoardStore {
	if log == nil {
		log = logging.Nop()
	}
	return &BoardStore{
		api:   api,
		log:   log.With("store", "board"),
		state: BoardState{Boards: []models.Board{}, MyBoards: []models.Board{}},
	}
}

func (s *BoardStore) State() BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Boards = slices.Clone(st.Boards)
	st.MyBoards = slices.Clone(st.MyBoards)
	if st.Board != nil {
		b := *st.Board
		st.Board = &b
	}
	return st
}

// begin marks the store busy and resets the error; reset clears data
// belonging to the operation.
func (s *BoardStore) begin(reset func(*BoardState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Error = ""
	if reset != nil {
		reset(&s.state)
	}
}

func (s *BoardStore) finish(apply func(*BoardState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if apply != nil {
		apply(&s.state)
	}
}

func (s *BoardStore) fail(ctx context.Context, msg string, err error, args ...any) {
	s.log.Error(ctx, msg, append(args, "error", err)...)
	s.finish(func(st *BoardState) { st.Error = msg })
}

func (s *BoardStore) FetchBoards(ctx context.Context) {
	s.begin(func(st *BoardState) { st.Boards = []models.Board{} })

	boards, err := s.api.ListBoards(ctx)
	if err != nil {
		s.fail(ctx, msgLoadBoards, err)
		return
	}
	s.finish(func(st *BoardState) { st.Boards = orEmpty(boards) })
}

func (s *BoardStore) FetchBoardByID(ctx context.Context, id int64) {
	s.begin(func(st *BoardState) { st.Board = nil })

	board, err := s.api.GetBoard(ctx, id)
	if err != nil {
		s.fail(ctx, msgLoadBoard, err, "boardId", id)
		return
	}
	s.finish(func(st *BoardState) { st.Board = board })
}

func (s *BoardStore) FetchMyBoards(ctx context.Context) {
	s.begin(func(st *BoardState) { st.MyBoards = []models.Board{} })

	boards, err := s.api.ListMyBoards(ctx)
	if err != nil {
		s.fail(ctx, msgLoadMyBoards, err)
		return
	}
	s.finish(func(st *BoardState) { st.MyBoards = orEmpty(boards) })
}

// CreateBoard returns the server's answer, the number of posts created.
func (s *BoardStore) CreateBoard(ctx context.Context, in models.BoardInput) (int, error) {
	s.begin(nil)

	created, err := s.api.CreateBoard(ctx, in)
	if err != nil {
		s.fail(ctx, msgCreateBoard, err)
		return 0, fmt.Errorf("create board: %w", err)
	}
	s.finish(nil)
	return created, nil
}

// UploadBoardImages attaches files to a post. No files is a no-op.
func (s *BoardStore) UploadBoardImages(ctx context.Context, boardID int64, files []client.FilePart) error {
	if len(files) == 0 {
		return nil
	}
	s.begin(nil)

	if err := s.api.UploadBoardImages(ctx, boardID, files); err != nil {
		s.fail(ctx, msgUploadImages, err, "boardId", boardID)
		return fmt.Errorf("upload board images: %w", err)
	}
	s.finish(nil)
	return nil
}

// UpdateBoard saves the post and reloads it.
func (s *BoardStore) UpdateBoard(ctx context.Context, id int64, in models.BoardInput) error {
	s.begin(nil)

	if err := s.api.UpdateBoard(ctx, id, in); err != nil {
		s.fail(ctx, msgUpdateBoard, err, "boardId", id)
		return fmt.Errorf("update board: %w", err)
	}
	s.finish(nil)

	s.FetchBoardByID(ctx, id)
	return nil
}

// DeleteBoard removes the post and reloads the list.
func (s *BoardStore) DeleteBoard(ctx context.Context, id int64) error {
	s.begin(nil)

	if err := s.api.DeleteBoard(ctx, id); err != nil {
		s.fail(ctx, msgDeleteBoard, err, "boardId", id)
		return fmt.Errorf("delete board: %w", err)
	}
	s.finish(nil)

	s.FetchBoards(ctx)
	return nil
}
