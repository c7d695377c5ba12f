package models

// Photo is an uploaded face photo.
type Photo struct {
	PhotoID   int64  `json:"photoId"`
	UserID    int64  `json:"userId"`
	PhotoURL  string `json:"photoUrl"`
	CreatedAt Time   `json:"createdAt"`
}

// AnalysisResult is the diagnosis produced for one photo.
type AnalysisResult struct {
	AnalysisID    int64  `json:"analysisId"`
	PhotoID       int64  `json:"photoId"`
	DiagnosisName string `json:"diagnosisName"`
	CreatedAt     Time   `json:"createdAt"`
}

// IsEmpty reports whether r is the placeholder used when no analysis exists.
func (r AnalysisResult) IsEmpty() bool {
	return r == AnalysisResult{}
}

// PhotoWithAnalysis is a photo merged with its analysis. AnalysisResult is
// the zero value when the analysis is missing or could not be fetched.
type PhotoWithAnalysis struct {
	Photo
	AnalysisResult AnalysisResult `json:"analysisResult"`
}

// PhotoUpload is the /user-photos response. Depending on the backend
// version the diagnosis comes flat or nested under analysisResult.
type PhotoUpload struct {
	PhotoID        int64           `json:"photoId"`
	UserID         int64           `json:"userId"`
	FileURL        string          `json:"fileUrl"`
	PhotoURL       string          `json:"photoUrl"`
	Diagnosis      *string         `json:"diagnosis"`
	AnalysisResult *AnalysisResult `json:"analysisResult"`
	CreatedAt      Time            `json:"createdAt"`
}

// Normalize folds both response shapes into a PhotoWithAnalysis.
func (u PhotoUpload) Normalize() PhotoWithAnalysis {
	out := PhotoWithAnalysis{
		Photo: Photo{
			PhotoID:   u.PhotoID,
			UserID:    u.UserID,
			PhotoURL:  u.PhotoURL,
			CreatedAt: u.CreatedAt,
		},
	}
	if out.PhotoURL == "" {
		out.PhotoURL = u.FileURL
	}

	switch {
	case u.AnalysisResult != nil:
		out.AnalysisResult = *u.AnalysisResult
	case u.Diagnosis != nil && *u.Diagnosis != "":
		out.AnalysisResult = AnalysisResult{PhotoID: u.PhotoID, DiagnosisName: *u.Diagnosis}
	}
	return out
}

// DietRecommendation is the header of a generated diet.
type DietRecommendation struct {
	RecID      int64  `json:"recId"`
	HealthID   int64  `json:"healthId"`
	AnalysisID int64  `json:"analysisId"`
	Memo       string `json:"memo"`
	CreatedAt  Time   `json:"createdAt"`
}

// DietRecommendationCreate is the /diet-recommendations/create body. The
// backend prefers PhotoID when both ids are set.
type DietRecommendationCreate struct {
	PhotoID    int64  `json:"photoId,omitempty"`
	AnalysisID int64  `json:"analysisId,omitempty"`
	Memo       string `json:"memo"`
}

// DietResult is one recommended menu.
type DietResult struct {
	ResultID    int64  `json:"resultId"`
	RecID       int64  `json:"recId"`
	MenuName    string `json:"menuName"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Notes       string `json:"notes"`
	RecipeURL   string `json:"recipeUrl"`
	SkincareURL string `json:"skincareUrl"`
}
