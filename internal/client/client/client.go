package client

import (
	"context"
	"io"

	"github.com/nutricare/nutricare-client/internal/client/models"
)

// FilePart is one file in a multipart upload.
type FilePart struct {
	Name   string
	Reader io.Reader
}

// Client is the NutriCare REST API contract used by the stores.
//
// Single-record getters return (nil, nil) when the server answers 204 or a
// null body. List getters return an empty, non-nil slice in that case.
type Client interface {
	// Users
	Register(ctx context.Context, req models.SignupRequest) error
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.UserDetail, error)
	UpdateMyInfo(ctx context.Context, req models.UserUpdate) error
	UpdateMyPassword(ctx context.Context, req models.PasswordUpdate) error
	DeleteMe(ctx context.Context) error

	// Boards
	ListBoards(ctx context.Context) ([]models.Board, error)
	GetBoard(ctx context.Context, id int64) (*models.Board, error)
	ListMyBoards(ctx context.Context) ([]models.Board, error)
	CreateBoard(ctx context.Context, in models.BoardInput) (int, error)
	UpdateBoard(ctx context.Context, id int64, in models.BoardInput) error
	DeleteBoard(ctx context.Context, id int64) error
	UploadBoardImages(ctx context.Context, boardID int64, files []FilePart) error

	// Comments
	ListComments(ctx context.Context, boardID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, boardID int64, in models.CommentInput) error
	UpdateComment(ctx context.Context, commentID int64, in models.CommentInput) error
	DeleteComment(ctx context.Context, commentID int64) error

	// Photos and analysis
	UploadPhoto(ctx context.Context, file FilePart) (*models.PhotoUpload, error)
	ListMyPhotos(ctx context.Context) ([]models.Photo, error)
	GetPhoto(ctx context.Context, id int64) (*models.Photo, error)
	ListAnalysisResults(ctx context.Context) ([]models.AnalysisResult, error)
	GetAnalysisResult(ctx context.Context, id int64) (*models.AnalysisResult, error)
	GetAnalysisByPhoto(ctx context.Context, photoID int64) (*models.AnalysisResult, error)

	// Diet recommendations
	CreateDietRecommendation(ctx context.Context, req models.DietRecommendationCreate) (*models.DietRecommendation, error)
	GenerateDietResults(ctx context.Context, recID int64) error
	ListDietResults(ctx context.Context, recID int64) ([]models.DietResult, error)
	GetDietRecommendationByAnalysis(ctx context.Context, analysisID int64) (*models.DietRecommendation, error)

	// DownloadPhoto saves a public photo URL into dir and returns the path.
	DownloadPhoto(ctx context.Context, photoURL, dir string) (string, error)
}

// TokenSource yields the persisted access token. An empty token means the
// request goes out without Authorization.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Hooks are invoked by the response side of the interceptor.
type Hooks struct {
	// OnUnauthorized runs once for every 401 outside the login endpoint.
	OnUnauthorized func(ctx context.Context)
	// OnForbidden runs for every 403 except on /users/me.
	OnForbidden func(ctx context.Context, path string)
}
