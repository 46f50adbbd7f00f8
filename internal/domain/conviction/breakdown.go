package conviction

import "math"

const (
	WeightRiasec     = 0.30
	WeightSkills     = 0.30
	WeightEducation  = 0.20
	WeightEngagement = 0.20

	NeutralRiasecScore    = 50
	MissingEducationScore = 50
)

type Breakdown struct {
	Total      int `json:"total"`
	Riasec     int `json:"riasec"`
	Skills     int `json:"skills"`
	Education  int `json:"education"`
	Engagement int `json:"engagement"`
}

// Combine clamps every sub-score into 0..100 and derives the weighted total.
func Combine(riasec, skills, education, engagement int) Breakdown {
	b := Breakdown{
		Riasec:     clampScore(riasec),
		Skills:     clampScore(skills),
		Education:  clampScore(education),
		Engagement: clampScore(engagement),
	}

	weighted := float64(b.Riasec)*WeightRiasec +
		float64(b.Skills)*WeightSkills +
		float64(b.Education)*WeightEducation +
		float64(b.Engagement)*WeightEngagement

	b.Total = int(math.Round(clampFloat(weighted, 0, 100)))
	return b
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if math.IsNaN(v) {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
