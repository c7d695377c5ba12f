package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nutricare/nutricare-client/internal/client/models"
)

const dateLayout = "2006-01-02"

func (a *App) viewAnalysisUpload(ctx context.Context, _ Navigation, args []string) error {
	path := ""
	if len(args) > 0 {
		path = strings.Join(args, " ")
	} else {
		p, err := getSimpleText(a.reader, "Photo file", a.out)
		if err != nil {
			return err
		}
		path = p
	}
	if path == "" {
		return errors.New("usage: upload <file>")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	a.println("Analyzing photo...")
	photo, err := a.analysis.UploadPhoto(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}

	if photo.PhotoID == 0 {
		a.printf("Diagnosis: %s\n", orString(photo.AnalysisResult.DiagnosisName, "-"))
		return nil
	}
	return a.Open(ctx, RouteAnalysisResult, []string{fmt.Sprint(photo.PhotoID)})
}

func (a *App) viewAnalysisResult(ctx context.Context, nav Navigation, _ []string) error {
	photoID, err := parseID("photo id", nav.Params["photoId"])
	if err != nil {
		return err
	}

	res, err := a.analysis.FetchAnalysisByPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if res.IsEmpty() {
		a.println("No analysis for this photo yet.")
		return nil
	}
	a.printf("Photo %d: %s (analysis %d, %s)\n", photoID, res.DiagnosisName, res.AnalysisID, res.CreatedAt)

	rec, err := a.analysis.FetchDietRecommendationByAnalysis(ctx, res.AnalysisID)
	if err != nil {
		return err
	}
	if rec.RecID == 0 {
		a.printf("No diet yet. Type 'diet %d [memo]' to generate one.\n", res.AnalysisID)
		return nil
	}

	results, err := a.analysis.FetchDietRecommendations(ctx, rec.RecID)
	if err != nil {
		return err
	}
	a.printDiet(rec, results)
	return nil
}

func (a *App) viewAnalysisList(ctx context.Context, _ Navigation, _ []string) error {
	photos, err := a.analysis.FetchUserPhotos(ctx)
	if err != nil {
		return err
	}
	a.printPhotos(photos)
	return nil
}

func (a *App) viewAnalysisDetail(ctx context.Context, nav Navigation, _ []string) error {
	photoID, err := parseID("photo id", nav.Params["photoId"])
	if err != nil {
		return err
	}

	photo, err := a.analysis.FetchPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.PhotoID == 0 {
		a.println("Photo not found.")
		return nil
	}
	res, err := a.analysis.FetchAnalysisByPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	a.printf("Photo %d taken %s\n", photo.PhotoID, photo.CreatedAt)
	a.printf("  url:       %s\n", photo.PhotoURL)
	a.printf("  diagnosis: %s\n", orString(res.DiagnosisName, "-"))
	a.printf("Type 'result %d' for diet recommendations or 'download %d' to save the image.\n", photoID, photoID)
	return nil
}

func (a *App) viewAnalysisDate(ctx context.Context, nav Navigation, _ []string) error {
	day, err := time.ParseInLocation(dateLayout, nav.Params["date"], time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q, want yyyy-mm-dd", nav.Params["date"])
	}

	photos, err := a.analysis.FetchUserPhotos(ctx)
	if err != nil {
		return err
	}

	var daily []models.PhotoWithAnalysis
	for _, p := range photos {
		if p.CreatedAt.Format(dateLayout) == day.Format(dateLayout) {
			daily = append(daily, p)
		}
	}
	a.printf("Analyses on %s\n", day.Format(dateLayout))
	a.printPhotos(daily)
	return nil
}

func (a *App) printPhotos(photos []models.PhotoWithAnalysis) {
	if len(photos) == 0 {
		a.println("No photos.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PHOTO\tTAKEN\tDIAGNOSIS\tANALYSIS")
	for _, p := range photos {
		analysis := "-"
		if !p.AnalysisResult.IsEmpty() {
			analysis = fmt.Sprint(p.AnalysisResult.AnalysisID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.PhotoID, p.CreatedAt, orString(p.AnalysisResult.DiagnosisName, "-"), analysis)
	}
	tw.Flush()
}

func (a *App) printDiet(rec models.DietRecommendation, results []models.DietResult) {
	a.printf("Diet recommendation %d", rec.RecID)
	if rec.Memo != "" {
		a.printf(" (memo: %s)", rec.Memo)
	}
	a.println()
	if len(results) == 0 {
		a.println("  no menus yet")
		return
	}
	for i, r := range results {
		a.printf("%d. %s, %d kcal\n", i+1, r.MenuName, r.Calories)
		if r.Description != "" {
			a.printf("   %s\n", r.Description)
		}
		if r.Notes != "" {
			a.printf("   note: %s\n", r.Notes)
		}
		if r.RecipeURL != "" {
			a.printf("   recipe: %s\n", r.RecipeURL)
		}
		if r.SkincareURL != "" {
			a.printf("   skincare: %s\n", r.SkincareURL)
		}
	}
	a.println("Type 'recipe <menu>' to find a recipe video.")
}

// Diet runs the create, generate and fetch sequence for an analysis.
func (a *App) Diet(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 1 {
		return errors.New("usage: diet <analysisId> [memo]")
	}
	analysisID, err := parseID("analysis id", args[0])
	if err != nil {
		return err
	}

	a.println("Generating diet recommendations, this can take a few minutes...")
	results, err := a.analysis.CreateAndFetchDietRecommendation(ctx, analysisID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.printDiet(a.analysis.State().DietRecommendation, results)
	return nil
}

func (a *App) Recipe(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: recipe <menu>")
	}
	menu := strings.Join(args, " ")

	video, err := a.recipes.SearchRecipeVideo(ctx, menu)
	if err != nil {
		return err
	}
	if video == nil {
		a.println("No recipe video found.")
		return nil
	}
	a.printf("%s\n  %s\n  views %s, likes %s\n", video.Title, video.EmbedURL, orString(video.ViewCount, "-"), orString(video.LikeCount, "-"))
	return nil
}

// Download saves a photo's image under the configured download directory.
// A photo already saved and still on disk is not fetched again.
func (a *App) Download(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 1 {
		return errors.New("usage: download <photoId>")
	}
	photoID, err := parseID("photo id", args[0])
	if err != nil {
		return err
	}

	prev, err := a.repos.Downloads.GetByPhotoID(ctx, photoID)
	if err != nil {
		a.log.Warn(ctx, "failed to read download record", "photoId", photoID, "error", err)
	}
	if prev != nil {
		if _, err := os.Stat(prev.LocalPath); err == nil {
			a.println("Already saved to", prev.LocalPath)
			return nil
		}
	}

	photo, err := a.analysis.FetchPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.PhotoURL == "" {
		return fmt.Errorf("photo %d has no image", photoID)
	}

	path, err := a.analysis.DownloadPhoto(ctx, photo, a.cfg.DownloadDir)
	if err != nil {
		return err
	}

	err = a.repos.Downloads.Save(ctx, &models.Download{
		PhotoID:      photoID,
		PhotoURL:     photo.PhotoURL,
		LocalPath:    path,
		DownloadedAt: time.Now(),
	})
	if err != nil {
		a.log.Warn(ctx, "failed to record download", "photoId", photoID, "error", err)
	}

	a.println("Saved to", path)
	return nil
}

// Downloads lists the photos saved on this machine.
func (a *App) Downloads(ctx context.Context) error {
	list, err := a.repos.Downloads.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No downloads.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PHOTO\tSAVED\tPATH")
	for _, d := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", d.PhotoID, d.DownloadedAt.Local().Format("2006-01-02 15:04"), d.LocalPath)
	}
	tw.Flush()
	return nil
}
