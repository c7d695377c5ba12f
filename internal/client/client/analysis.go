package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nutricare/nutricare-client/internal/client/models"
)

func (c *HTTPClient) UploadPhoto(ctx context.Context, file FilePart) (*models.PhotoUpload, error) {
	cl, err := multipartCall(http.MethodPost, "/user-photos", nil, "file", []FilePart{file})
	if err != nil {
		return nil, err
	}

	var out *models.PhotoUpload
	if _, err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("upload photo: %w", ErrNoContent)
	}
	return out, nil
}

func (c *HTTPClient) ListMyPhotos(ctx context.Context) ([]models.Photo, error) {
	var out []models.Photo
	if err := c.get(ctx, "/user-photos/me", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *HTTPClient) GetPhoto(ctx context.Context, id int64) (*models.Photo, error) {
	var out *models.Photo
	if err := c.get(ctx, fmt.Sprintf("/user-photos/%d", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListAnalysisResults(ctx context.Context) ([]models.AnalysisResult, error) {
	var out []models.AnalysisResult
	if err := c.get(ctx, "/analysis-results", &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *HTTPClient) GetAnalysisResult(ctx context.Context, id int64) (*models.AnalysisResult, error) {
	var out *models.AnalysisResult
	if err := c.get(ctx, fmt.Sprintf("/analysis-results/%d", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetAnalysisByPhoto(ctx context.Context, photoID int64) (*models.AnalysisResult, error) {
	var out *models.AnalysisResult
	if err := c.get(ctx, fmt.Sprintf("/analysis-results/photos/%d", photoID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDietRecommendation runs under the create timeout.
func (c *HTTPClient) CreateDietRecommendation(ctx context.Context, req models.DietRecommendationCreate) (*models.DietRecommendation, error) {
	cl, err := jsonCall(http.MethodPost, "/diet-recommendations/create", req)
	if err != nil {
		return nil, err
	}
	cl.timeout = c.createTimeout

	var out *models.DietRecommendation
	if _, err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateDietResults asks the server to run AI generation for recID. It runs
// under the generation timeout. The raw model output in the response is not
// used; results are read back with ListDietResults.
func (c *HTTPClient) GenerateDietResults(ctx context.Context, recID int64) error {
	cl := call{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/diet-recommendations/%d", recID),
		timeout: c.generationTimeout,
	}
	_, err := c.do(ctx, cl, nil)
	return err
}

func (c *HTTPClient) ListDietResults(ctx context.Context, recID int64) ([]models.DietResult, error) {
	var out []models.DietResult
	if err := c.get(ctx, fmt.Sprintf("/diet-recommendations/%d", recID), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *HTTPClient) GetDietRecommendationByAnalysis(ctx context.Context, analysisID int64) (*models.DietRecommendation, error) {
	var out *models.DietRecommendation
	if err := c.get(ctx, fmt.Sprintf("/diet-recommendations/analysis/%d", analysisID), &out); err != nil {
		return nil, err
	}
	return out, nil
}
