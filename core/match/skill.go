package match

import "strings"

const (
	skillBaseExact      = 50.0
	skillBaseRelated    = 30.0
	skillBaseGeneralist = 10.0
	symptomBonus        = 8.0
	symptomBonusCap     = 40.0
)

// SkillScorer rates how well a doctor's specialty fits the required
// specialty and the reported symptoms. Matching is case-insensitive.
type SkillScorer struct {
	Related  map[string][]string
	Symptoms map[string][]string
}

// NewSkillScorer returns a scorer backed by the default relatedness and
// symptom association tables.
func NewSkillScorer() SkillScorer {
	return SkillScorer{Related: defaultRelatedSpecialties, Symptoms: defaultSymptomSpecialties}
}

// Score returns a 0-100 skill fit. An exact specialty match starts at 50,
// a related specialty at 30, anything else at the generalist base. Each
// symptom associated with the doctor's specialty adds a bounded bonus.
func (s SkillScorer) Score(doctorSpecialty, requiredSpecialty string, symptoms []string) float64 {
	doc := strings.ToLower(strings.TrimSpace(doctorSpecialty))
	req := strings.ToLower(strings.TrimSpace(requiredSpecialty))

	score := skillBaseGeneralist
	switch {
	case req == "" && doc != "":
		// No required specialty: only symptoms differentiate candidates.
		score = skillBaseRelated
	case doc == req:
		score = skillBaseExact
	case s.isRelated(req, doc):
		score = skillBaseRelated
	}

	bonus := 0.0
	for _, sym := range symptoms {
		key := strings.ToLower(strings.TrimSpace(sym))
		for _, sp := range s.Symptoms[key] {
			if strings.ToLower(sp) == doc {
				bonus += symptomBonus
				break
			}
		}
	}
	if bonus > symptomBonusCap {
		bonus = symptomBonusCap
	}
	return clampScore(score + bonus)
}

func (s SkillScorer) isRelated(required, doctor string) bool {
	for _, sp := range s.Related[required] {
		if strings.ToLower(sp) == doctor {
			return true
		}
	}
	return false
}
