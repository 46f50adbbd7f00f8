package conviction

import (
	"math"
	"strings"
)

const DefaultJobZone = 3

var educationTiers = map[string]int{
	"high_school":  2,
	"some_college": 3,
	"associates":   3,
	"bachelors":    4,
	"masters":      5,
	"doctorate":    5,
}

// EducationTier maps an account education category to its ordinal tier. Unknown or empty
// categories fall back to the high school tier.
func EducationTier(category string) int {
	key := strings.ToLower(strings.TrimSpace(category))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if t, ok := educationTiers[key]; ok {
		return t
	}
	return educationTiers["high_school"]
}

// EducationBand scores how far the user's tier sits below the occupation's job zone.
func EducationBand(userTier, jobZone int) int {
	switch {
	case userTier >= jobZone:
		return 100
	case userTier == jobZone-1:
		return 70
	case userTier == jobZone-2:
		return 40
	default:
		return 20
	}
}

// EducationScore blends the banded tier score with the share of required knowledge areas the
// user lists among their skills. Without knowledge requirements the band is returned as-is.
func EducationScore(userTier, jobZone int, userSkillNames []string, requiredKnowledge []string) int {
	banded := EducationBand(userTier, jobZone)

	required := make([]string, 0, len(requiredKnowledge))
	for _, k := range requiredKnowledge {
		if key := skillKey(k); key != "" {
			required = append(required, key)
		}
	}
	if len(required) == 0 {
		return banded
	}

	have := make(map[string]struct{}, len(userSkillNames))
	for _, n := range userSkillNames {
		if key := skillKey(n); key != "" {
			have[key] = struct{}{}
		}
	}

	matched := 0
	for _, k := range required {
		if _, ok := have[k]; ok {
			matched++
		}
	}

	knowledgeMatch := 100 * float64(matched) / float64(len(required))
	return clampScore(int(math.Round((float64(banded) + knowledgeMatch) / 2)))
}
