package conviction

import "math"

// InterestVector is a RIASEC profile. Components are non-negative; user vectors hold raw
// cumulative answer sums, occupation vectors hold the ingested O*NET interest profile.
type InterestVector struct {
	Realistic     float64 `json:"realistic"`
	Investigative float64 `json:"investigative"`
	Artistic      float64 `json:"artistic"`
	Social        float64 `json:"social"`
	Enterprising  float64 `json:"enterprising"`
	Conventional  float64 `json:"conventional"`
}

func (v InterestVector) components() [6]float64 {
	return [6]float64{v.Realistic, v.Investigative, v.Artistic, v.Social, v.Enterprising, v.Conventional}
}

// NonNegative returns a copy with every negative component replaced by 0.
func (v InterestVector) NonNegative() InterestVector {
	return InterestVector{
		Realistic:     math.Max(v.Realistic, 0),
		Investigative: math.Max(v.Investigative, 0),
		Artistic:      math.Max(v.Artistic, 0),
		Social:        math.Max(v.Social, 0),
		Enterprising:  math.Max(v.Enterprising, 0),
		Conventional:  math.Max(v.Conventional, 0),
	}
}

func (v InterestVector) IsZero() bool {
	for _, c := range v.components() {
		if c != 0 {
			return false
		}
	}
	return true
}

// Similarity normalizes both vectors onto the simplex and returns their dot product scaled to
// 0..100. A zero vector normalizes to itself, so similarity against it is 0.
func Similarity(user, occupation InterestVector) int {
	u := normalize(user.NonNegative())
	o := normalize(occupation.NonNegative())

	dot := 0.0
	for i := range u {
		dot += u[i] * o[i]
	}
	return clampScore(int(math.Round(dot * 100)))
}

func normalize(v InterestVector) [6]float64 {
	c := v.components()
	sum := 0.0
	for _, x := range c {
		sum += x
	}
	if sum == 0 {
		sum = 1
	}
	for i := range c {
		c[i] = c[i] / sum
	}
	return c
}
