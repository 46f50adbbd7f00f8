package conviction

import (
	"math"
	"strings"
)

const (
	DefaultImportance  = 50.0
	DefaultProficiency = 50.0

	// DefaultMissingSkillCredit is the share of a requirement's importance granted when the user
	// does not hold the skill.
	DefaultMissingSkillCredit = 0.0
)

type UserSkill struct {
	Name        string
	Proficiency float64
}

type SkillRequirement struct {
	Name       string
	Importance float64
}

type SkillMatchOptions struct {
	MissingSkillCredit float64
}

func DefaultSkillMatchOptions() SkillMatchOptions {
	return SkillMatchOptions{MissingSkillCredit: DefaultMissingSkillCredit}
}

// SkillMatch returns the importance-weighted share of required skills covered by the user,
// scaled by the user's proficiency in each.
func SkillMatch(userSkills []UserSkill, required []SkillRequirement, opts SkillMatchOptions) int {
	if len(userSkills) == 0 || len(required) == 0 {
		return 0
	}

	proficiencyByName := make(map[string]float64, len(userSkills))
	for _, us := range userSkills {
		key := skillKey(us.Name)
		if key == "" {
			continue
		}
		p := clampFloat(us.Proficiency, 0, 100)
		if prev, ok := proficiencyByName[key]; ok && prev >= p {
			continue
		}
		proficiencyByName[key] = p
	}

	credit := clampFloat(opts.MissingSkillCredit, 0, 1)

	var totalImportance float64
	var matchedImportance float64
	for _, r := range required {
		importance := clampFloat(r.Importance, 0, 100)
		totalImportance += importance

		p, ok := proficiencyByName[skillKey(r.Name)]
		if !ok {
			matchedImportance += importance * credit
			continue
		}
		matchedImportance += importance * (p / 100)
	}

	if totalImportance == 0 {
		return 0
	}
	return clampScore(int(math.Round(100 * matchedImportance / totalImportance)))
}

func skillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
