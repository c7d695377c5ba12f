// Package recipes finds a recipe video for a recommended menu on YouTube.
package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nutricare/nutricare-client/internal/logging"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"
	embedURLPrefix = "https://www.youtube.com/embed/"
	querySuffix    = " 레시피"
)

// RecipeVideo is the best match for a menu.
type RecipeVideo struct {
	VideoID      string
	Title        string
	ThumbnailURL string
	EmbedURL     string
	ViewCount    string
	LikeCount    string
}

type Options struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Logger  logging.Logger
}

type Searcher struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewSearcher(opts Options) *Searcher {
	s := &Searcher{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.Client,
		log:     opts.Logger,
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.http == nil {
		s.http = http.DefaultClient
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	return s
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// SearchRecipeVideo returns the top recipe video for menuName, or nil when
// nothing was found. Lookup failures are logged and reported as no result.
func (s *Searcher) SearchRecipeVideo(ctx context.Context, menuName string) (*RecipeVideo, error) {
	if s.apiKey == "" {
		s.log.Warn(ctx, "youtube api key is not configured")
		return nil, nil
	}

	video, err := s.search(ctx, menuName)
	if err != nil {
		s.log.Error(ctx, "recipe video search failed", "menu", menuName, "error", err)
		return nil, nil
	}
	return video, nil
}

func (s *Searcher) search(ctx context.Context, menuName string) (*RecipeVideo, error) {
	var found searchResponse
	err := s.get(ctx, "search", url.Values{
		"part":       {"snippet"},
		"q":          {menuName + querySuffix},
		"maxResults": {"1"},
		"type":       {"video"},
	}, &found)
	if err != nil {
		return nil, err
	}
	if len(found.Items) == 0 || found.Items[0].ID.VideoID == "" {
		return nil, nil
	}
	id := found.Items[0].ID.VideoID

	var details videosResponse
	err = s.get(ctx, "videos", url.Values{
		"part": {"snippet,statistics"},
		"id":   {id},
	}, &details)
	if err != nil {
		return nil, err
	}
	if len(details.Items) == 0 {
		return nil, fmt.Errorf("video %s has no details", id)
	}
	item := details.Items[0]

	return &RecipeVideo{
		VideoID:      id,
		Title:        item.Snippet.Title,
		ThumbnailURL: item.Snippet.Thumbnails["high"].URL,
		EmbedURL:     embedURLPrefix + id,
		ViewCount:    item.Statistics.ViewCount,
		LikeCount:    item.Statistics.LikeCount,
	}, nil
}

func (s *Searcher) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: %s; body: %s", endpoint, resp.Status, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
