package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoUpload_Normalize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want PhotoWithAnalysis
	}{
		{
			name: "flat diagnosis",
			body: `{"photoId":5,"fileUrl":"https://storage/p5.jpg","diagnosis":"acne"}`,
			want: PhotoWithAnalysis{
				Photo:          Photo{PhotoID: 5, PhotoURL: "https://storage/p5.jpg"},
				AnalysisResult: AnalysisResult{PhotoID: 5, DiagnosisName: "acne"},
			},
		},
		{
			name: "nested analysis",
			body: `{"photoId":6,"photoUrl":"https://storage/p6.jpg","analysisResult":{"analysisId":9,"photoId":6,"diagnosisName":"normal"}}`,
			want: PhotoWithAnalysis{
				Photo:          Photo{PhotoID: 6, PhotoURL: "https://storage/p6.jpg"},
				AnalysisResult: AnalysisResult{AnalysisID: 9, PhotoID: 6, DiagnosisName: "normal"},
			},
		},
		{
			name: "analysis failed server side",
			body: `{"photoId":7,"fileUrl":"https://storage/p7.jpg","diagnosis":null}`,
			want: PhotoWithAnalysis{Photo: Photo{PhotoID: 7, PhotoURL: "https://storage/p7.jpg"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u PhotoUpload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.want, u.Normalize())
		})
	}
}

func TestAnalysisResult_IsEmpty(t *testing.T) {
	assert.True(t, AnalysisResult{}.IsEmpty())
	assert.False(t, AnalysisResult{AnalysisID: 1}.IsEmpty())
}

func TestBoard_Author(t *testing.T) {
	assert.Equal(t, "kim", Board{UserName: "kim"}.Author())
	assert.Equal(t, "lee", Board{UserName: "kim", AuthorName: "lee"}.Author())
}
