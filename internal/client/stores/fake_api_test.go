package stores

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/client/repositories"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements client.Client. Every method records its name; unset
// funcs return zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	login     func(email, password string) (*models.LoginResponse, error)
	me        func() (*models.UserDetail, error)
	register  func(models.SignupRequest) error
	updInfo   func(models.UserUpdate) error
	updPass   func(models.PasswordUpdate) error
	deleteMe  func() error
	boards    func() ([]models.Board, error)
	board     func(id int64) (*models.Board, error)
	myBoards  func() ([]models.Board, error)
	create    func(models.BoardInput) (int, error)
	updBoard  func(id int64, in models.BoardInput) error
	delBoard  func(id int64) error
	images    func(boardID int64, files []client.FilePart) error
	comments  func(boardID int64) ([]models.Comment, error)
	addCmt    func(boardID int64, in models.CommentInput) error
	updCmt    func(id int64, in models.CommentInput) error
	delCmt    func(id int64) error
	upload    func(client.FilePart) (*models.PhotoUpload, error)
	photos    func() ([]models.Photo, error)
	photo     func(id int64) (*models.Photo, error)
	results   func() ([]models.AnalysisResult, error)
	result    func(id int64) (*models.AnalysisResult, error)
	byPhoto   func(photoID int64) (*models.AnalysisResult, error)
	createRec func(models.DietRecommendationCreate) (*models.DietRecommendation, error)
	generate  func(recID int64) error
	diet      func(recID int64) ([]models.DietResult, error)
	recByAn   func(analysisID int64) (*models.DietRecommendation, error)
	download  func(url, dir string) (string, error)
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Register(_ context.Context, req models.SignupRequest) error {
	f.record("Register")
	if f.register != nil {
		return f.register(req)
	}
	return nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	f.record("Login")
	if f.login != nil {
		return f.login(email, password)
	}
	return nil, client.ErrUnauthorized
}

func (f *fakeAPI) Me(context.Context) (*models.UserDetail, error) {
	f.record("Me")
	if f.me != nil {
		return f.me()
	}
	return nil, nil
}

func (f *fakeAPI) UpdateMyInfo(_ context.Context, req models.UserUpdate) error {
	f.record("UpdateMyInfo")
	if f.updInfo != nil {
		return f.updInfo(req)
	}
	return nil
}

func (f *fakeAPI) UpdateMyPassword(_ context.Context, req models.PasswordUpdate) error {
	f.record("UpdateMyPassword")
	if f.updPass != nil {
		return f.updPass(req)
	}
	return nil
}

func (f *fakeAPI) DeleteMe(context.Context) error {
	f.record("DeleteMe")
	if f.deleteMe != nil {
		return f.deleteMe()
	}
	return nil
}

func (f *fakeAPI) ListBoards(context.Context) ([]models.Board, error) {
	f.record("ListBoards")
	if f.boards != nil {
		return f.boards()
	}
	return []models.Board{}, nil
}

func (f *fakeAPI) GetBoard(_ context.Context, id int64) (*models.Board, error) {
	f.record("GetBoard")
	if f.board != nil {
		return f.board(id)
	}
	return nil, nil
}

func (f *fakeAPI) ListMyBoards(context.Context) ([]models.Board, error) {
	f.record("ListMyBoards")
	if f.myBoards != nil {
		return f.myBoards()
	}
	return []models.Board{}, nil
}

func (f *fakeAPI) CreateBoard(_ context.Context, in models.BoardInput) (int, error) {
	f.record("CreateBoard")
	if f.create != nil {
		return f.create(in)
	}
	return 1, nil
}

func (f *fakeAPI) UpdateBoard(_ context.Context, id int64, in models.BoardInput) error {
	f.record("UpdateBoard")
	if f.updBoard != nil {
		return f.updBoard(id, in)
	}
	return nil
}

func (f *fakeAPI) DeleteBoard(_ context.Context, id int64) error {
	f.record("DeleteBoard")
	if f.delBoard != nil {
		return f.delBoard(id)
	}
	return nil
}

func (f *fakeAPI) UploadBoardImages(_ context.Context, boardID int64, files []client.FilePart) error {
	f.record("UploadBoardImages")
	if f.images != nil {
		return f.images(boardID, files)
	}
	return nil
}

func (f *fakeAPI) ListComments(_ context.Context, boardID int64) ([]models.Comment, error) {
	f.record("ListComments")
	if f.comments != nil {
		return f.comments(boardID)
	}
	return []models.Comment{}, nil
}

func (f *fakeAPI) CreateComment(_ context.Context, boardID int64, in models.CommentInput) error {
	f.record("CreateComment")
	if f.addCmt != nil {
		return f.addCmt(boardID, in)
	}
	return nil
}

func (f *fakeAPI) UpdateComment(_ context.Context, id int64, in models.CommentInput) error {
	f.record("UpdateComment")
	if f.updCmt != nil {
		return f.updCmt(id, in)
	}
	return nil
}

func (f *fakeAPI) DeleteComment(_ context.Context, id int64) error {
	f.record("DeleteComment")
	if f.delCmt != nil {
		return f.delCmt(id)
	}
	return nil
}

func (f *fakeAPI) UploadPhoto(_ context.Context, file client.FilePart) (*models.PhotoUpload, error) {
	f.record("UploadPhoto")
	if f.upload != nil {
		return f.upload(file)
	}
	return &models.PhotoUpload{}, nil
}

func (f *fakeAPI) ListMyPhotos(context.Context) ([]models.Photo, error) {
	f.record("ListMyPhotos")
	if f.photos != nil {
		return f.photos()
	}
	return []models.Photo{}, nil
}

func (f *fakeAPI) GetPhoto(_ context.Context, id int64) (*models.Photo, error) {
	f.record("GetPhoto")
	if f.photo != nil {
		return f.photo(id)
	}
	return nil, nil
}

func (f *fakeAPI) ListAnalysisResults(context.Context) ([]models.AnalysisResult, error) {
	f.record("ListAnalysisResults")
	if f.results != nil {
		return f.results()
	}
	return []models.AnalysisResult{}, nil
}

func (f *fakeAPI) GetAnalysisResult(_ context.Context, id int64) (*models.AnalysisResult, error) {
	f.record("GetAnalysisResult")
	if f.result != nil {
		return f.result(id)
	}
	return nil, nil
}

func (f *fakeAPI) GetAnalysisByPhoto(_ context.Context, photoID int64) (*models.AnalysisResult, error) {
	f.record("GetAnalysisByPhoto")
	if f.byPhoto != nil {
		return f.byPhoto(photoID)
	}
	return nil, nil
}

func (f *fakeAPI) CreateDietRecommendation(_ context.Context, req models.DietRecommendationCreate) (*models.DietRecommendation, error) {
	f.record("CreateDietRecommendation")
	if f.createRec != nil {
		return f.createRec(req)
	}
	return nil, nil
}

func (f *fakeAPI) GenerateDietResults(_ context.Context, recID int64) error {
	f.record("GenerateDietResults")
	if f.generate != nil {
		return f.generate(recID)
	}
	return nil
}

func (f *fakeAPI) ListDietResults(_ context.Context, recID int64) ([]models.DietResult, error) {
	f.record("ListDietResults")
	if f.diet != nil {
		return f.diet(recID)
	}
	return []models.DietResult{}, nil
}

func (f *fakeAPI) GetDietRecommendationByAnalysis(_ context.Context, analysisID int64) (*models.DietRecommendation, error) {
	f.record("GetDietRecommendationByAnalysis")
	if f.recByAn != nil {
		return f.recByAn(analysisID)
	}
	return nil, nil
}

func (f *fakeAPI) DownloadPhoto(_ context.Context, url, dir string) (string, error) {
	f.record("DownloadPhoto")
	if f.download != nil {
		return f.download(url, dir)
	}
	return filepath.Join(dir, filepath.Base(url)), nil
}

// newTokenStore returns a TokenStore over a migrated database file.
func newTokenStore(t *testing.T) *TokenStore {
	t.Helper()
	repos, err := repositories.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "nutricare.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewTokenStore(repos.Metadata)
}
