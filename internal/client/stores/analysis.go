package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/common"
	"github.com/nutricare/nutricare-client/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ErrNoRecommendationID is returned when the create step of the diet
// sequence answers without a recId.
var ErrNoRecommendationID = errors.New("diet recommendation id missing")

const (
	msgUploadPhoto  = "failed to upload the photo"
	msgLoadPhotos   = "failed to load photos"
	msgLoadPhoto    = "failed to load the photo"
	msgLoadAnalysis = "failed to load analysis results"
	msgLoadDiet     = "failed to load diet recommendations"
	msgCreateDiet   = "failed to create a diet recommendation"
)

type AnalysisState struct {
	Photos             []models.PhotoWithAnalysis
	Photo              models.Photo
	AnalysisResults    []models.AnalysisResult
	AnalysisResult     models.AnalysisResult
	DietRecommendation models.DietRecommendation
	DietResults        []models.DietResult
	Loading            bool
	Error              string
}

// AnalysisStore owns photos, their diagnoses and diet recommendations.
type AnalysisStore struct {
	api         client.Client
	log         logging.Logger
	concurrency int

	mu    sync.Mutex
	state AnalysisState
}

// NewAnalysisStore builds the store. concurrency bounds the per-photo
// analysis fan-out; values below 1 mean 1.
func NewAnalysisStore(api client.Client, log logging.Logger, concurrency int) *AnalysisStore {
	if log == nil {
		log = logging.Nop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &AnalysisStore{
		api:         api,
		log:         log.With("store", "analysis"),
		concurrency: concurrency,
		state: AnalysisState{
			Photos:          []models.PhotoWithAnalysis{},
			AnalysisResults: []models.AnalysisResult{},
			DietResults:     []models.DietResult{},
		},
	}
}

func (s *AnalysisStore) State() AnalysisState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Photos = slices.Clone(st.Photos)
	st.AnalysisResults = slices.Clone(st.AnalysisResults)
	st.DietResults = slices.Clone(st.DietResults)
	return st
}

func (s *AnalysisStore) update(fn func(st *AnalysisState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func (s *AnalysisStore) begin() {
	s.update(func(st *AnalysisState) {
		st.Loading = true
		st.Error = ""
	})
}

func (s *AnalysisStore) fail(ctx context.Context, msg string, err error, args ...any) {
	s.log.Error(ctx, msg, append(args, "error", err)...)
	s.update(func(st *AnalysisState) {
		st.Loading = false
		st.Error = msg
	})
}

func (s *AnalysisStore) done(fn func(st *AnalysisState)) {
	s.update(func(st *AnalysisState) {
		st.Loading = false
		if fn != nil {
			fn(st)
		}
	})
}

// UploadPhoto sends a photo for diagnosis and appends the result to Photos.
func (s *AnalysisStore) UploadPhoto(ctx context.Context, filename string, r io.Reader) (models.PhotoWithAnalysis, error) {
	if r == nil {
		return models.PhotoWithAnalysis{}, common.ErrEmptyFile
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.PhotoWithAnalysis{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(data) == 0 {
		return models.PhotoWithAnalysis{}, common.ErrEmptyFile
	}

	s.begin()

	resp, err := s.api.UploadPhoto(ctx, client.FilePart{Name: filename, Reader: bytes.NewReader(data)})
	if err != nil {
		s.fail(ctx, msgUploadPhoto, err, "file", filename)
		return models.PhotoWithAnalysis{}, fmt.Errorf("upload photo: %w", err)
	}

	photo := resp.Normalize()
	s.done(func(st *AnalysisState) {
		st.Photo = photo.Photo
		st.AnalysisResult = photo.AnalysisResult
		st.Photos = append(st.Photos, photo)
	})
	s.log.Info(ctx, "photo uploaded", "photoId", photo.PhotoID, "diagnosis", photo.AnalysisResult.DiagnosisName)
	return photo, nil
}

// FetchUserPhotos loads the user's photos and merges each with its analysis.
// Analyses are fetched concurrently; a failed or empty one leaves that
// photo with a zero AnalysisResult instead of failing the batch. The result
// keeps the order of the photo list.
func (s *AnalysisStore) FetchUserPhotos(ctx context.Context) ([]models.PhotoWithAnalysis, error) {
	s.begin()

	photos, err := s.api.ListMyPhotos(ctx)
	if err != nil {
		s.fail(ctx, msgLoadPhotos, err)
		return nil, fmt.Errorf("list photos: %w", err)
	}

	merged := make([]models.PhotoWithAnalysis, len(photos))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, p := range photos {
		g.Go(func() error {
			merged[i] = models.PhotoWithAnalysis{Photo: p}

			res, err := s.api.GetAnalysisByPhoto(ctx, p.PhotoID)
			if err != nil {
				s.log.Warn(ctx, "analysis unavailable for photo", "photoId", p.PhotoID, "error", err)
				return nil
			}
			if res != nil {
				merged[i].AnalysisResult = *res
			}
			return nil
		})
	}
	_ = g.Wait()

	s.done(func(st *AnalysisState) { st.Photos = merged })
	return slices.Clone(merged), nil
}

func (s *AnalysisStore) FetchPhoto(ctx context.Context, photoID int64) (models.Photo, error) {
	s.begin()

	p, err := s.api.GetPhoto(ctx, photoID)
	if err != nil {
		s.fail(ctx, msgLoadPhoto, err, "photoId", photoID)
		return models.Photo{}, fmt.Errorf("get photo: %w", err)
	}

	photo := deref(p)
	s.done(func(st *AnalysisState) { st.Photo = photo })
	return photo, nil
}

func (s *AnalysisStore) FetchAnalysisResults(ctx context.Context) ([]models.AnalysisResult, error) {
	s.begin()

	results, err := s.api.ListAnalysisResults(ctx)
	if err != nil {
		s.fail(ctx, msgLoadAnalysis, err)
		return nil, fmt.Errorf("list analysis results: %w", err)
	}

	s.done(func(st *AnalysisState) { st.AnalysisResults = orEmpty(results) })
	return orEmpty(slices.Clone(results)), nil
}

func (s *AnalysisStore) FetchAnalysisResult(ctx context.Context, analysisID int64) (models.AnalysisResult, error) {
	if analysisID == 0 {
		return models.AnalysisResult{}, fmt.Errorf("%w: analysis id is required", common.ErrorValidation)
	}
	s.begin()

	res, err := s.api.GetAnalysisResult(ctx, analysisID)
	if err != nil {
		s.fail(ctx, msgLoadAnalysis, err, "analysisId", analysisID)
		return models.AnalysisResult{}, fmt.Errorf("get analysis result: %w", err)
	}

	result := deref(res)
	s.done(func(st *AnalysisState) { st.AnalysisResult = result })
	return result, nil
}

func (s *AnalysisStore) FetchAnalysisByPhoto(ctx context.Context, photoID int64) (models.AnalysisResult, error) {
	s.begin()

	res, err := s.api.GetAnalysisByPhoto(ctx, photoID)
	if err != nil {
		s.fail(ctx, msgLoadAnalysis, err, "photoId", photoID)
		return models.AnalysisResult{}, fmt.Errorf("get analysis by photo: %w", err)
	}

	result := deref(res)
	s.done(func(st *AnalysisState) { st.AnalysisResult = result })
	return result, nil
}

// FetchDietRecommendations loads the menus generated for recID.
func (s *AnalysisStore) FetchDietRecommendations(ctx context.Context, recID int64) ([]models.DietResult, error) {
	s.begin()

	results, err := s.api.ListDietResults(ctx, recID)
	if err != nil {
		s.fail(ctx, msgLoadDiet, err, "recId", recID)
		return nil, fmt.Errorf("list diet results: %w", err)
	}

	s.done(func(st *AnalysisState) { st.DietResults = orEmpty(results) })
	return orEmpty(slices.Clone(results)), nil
}

// FetchDietRecommendationByAnalysis loads the recommendation header made
// for an analysis, if any.
func (s *AnalysisStore) FetchDietRecommendationByAnalysis(ctx context.Context, analysisID int64) (models.DietRecommendation, error) {
	s.begin()

	rec, err := s.api.GetDietRecommendationByAnalysis(ctx, analysisID)
	if err != nil {
		s.fail(ctx, msgLoadDiet, err, "analysisId", analysisID)
		return models.DietRecommendation{}, fmt.Errorf("get diet recommendation: %w", err)
	}

	header := deref(rec)
	s.done(func(st *AnalysisState) { st.DietRecommendation = header })
	return header, nil
}

// CreateAndFetchDietRecommendation creates a recommendation for analysisID,
// runs AI generation for it and loads the generated menus. The steps run in
// order and the first failure aborts the sequence.
func (s *AnalysisStore) CreateAndFetchDietRecommendation(ctx context.Context, analysisID int64, memo string) ([]models.DietResult, error) {
	s.begin()

	rec, err := s.api.CreateDietRecommendation(ctx, models.DietRecommendationCreate{AnalysisID: analysisID, Memo: memo})
	if err != nil {
		s.fail(ctx, msgCreateDiet, err, "step", "create", "analysisId", analysisID)
		return nil, fmt.Errorf("create diet recommendation: %w", err)
	}
	if rec == nil || rec.RecID == 0 {
		s.fail(ctx, msgCreateDiet, ErrNoRecommendationID, "step", "create", "analysisId", analysisID)
		return nil, ErrNoRecommendationID
	}

	if err := s.api.GenerateDietResults(ctx, rec.RecID); err != nil {
		s.fail(ctx, msgCreateDiet, err, "step", "generate", "recId", rec.RecID)
		return nil, fmt.Errorf("generate diet results: %w", err)
	}

	results, err := s.api.ListDietResults(ctx, rec.RecID)
	if err != nil {
		s.fail(ctx, msgCreateDiet, err, "step", "fetch", "recId", rec.RecID)
		return nil, fmt.Errorf("fetch diet results: %w", err)
	}

	header := *rec
	s.done(func(st *AnalysisState) {
		st.DietRecommendation = header
		st.DietResults = orEmpty(results)
	})
	s.log.Info(ctx, "diet recommendation ready", "recId", header.RecID, "menus", len(results))
	return orEmpty(slices.Clone(results)), nil
}

// DownloadPhoto saves the photo image into dir.
func (s *AnalysisStore) DownloadPhoto(ctx context.Context, photo models.Photo, dir string) (string, error) {
	path, err := s.api.DownloadPhoto(ctx, photo.PhotoURL, dir)
	if err != nil {
		s.log.Error(ctx, "failed to download photo", "photoId", photo.PhotoID, "error", err)
		return "", fmt.Errorf("download photo: %w", err)
	}
	return path, nil
}

// deref turns an absent record into its zero value.
func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// orEmpty turns an absent list into an empty one.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
