package dto

import "pathway/internal/domain/conviction"

type BreakdownResponse struct {
	Total      int `json:"total"`
	Riasec     int `json:"riasec"`
	Skills     int `json:"skills"`
	Education  int `json:"education"`
	Engagement int `json:"engagement"`
}

type ConvictionResponse struct {
	Breakdown BreakdownResponse `json:"breakdown"`
}

func NewBreakdownResponse(b conviction.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Total:      b.Total,
		Riasec:     b.Riasec,
		Skills:     b.Skills,
		Education:  b.Education,
		Engagement: b.Engagement,
	}
}
