package advisor

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/meltforce/fitrec/internal/catalog"
)

// BMI categories.
const (
	Underweight = "Kurus"
	Normal      = "Normal"
	Overweight  = "Overweight"
	Obese       = "Obesitas"
)

// Age categories.
const (
	Young  = "Muda"
	Adult  = "Dewasa"
	Senior = "Tua"
)

const (
	strengthType  = "strength"
	enduranceType = "endurance"

	maxPerCategory = 3
)

// BMI returns weight (kg) over height (m) squared.
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return weightKg / (h * h)
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

func AgeCategory(age float64) string {
	switch {
	case age < 25:
		return Young
	case age < 45:
		return Adult
	default:
		return Senior
	}
}

// DifficultyLevel is the descriptive intensity shown to the user.
func DifficultyLevel(bmiCategory string, age float64) string {
	switch {
	case bmiCategory == Obese || age >= 60:
		return "Easy"
	case bmiCategory == Overweight || age >= 45:
		return "Medium"
	case bmiCategory == Normal:
		return "Medium to Hard"
	default:
		return "Easy to Medium"
	}
}

// plan holds the name fragments and difficulties a BMI category targets.
type plan struct {
	strengthDifficulty  []catalog.Difficulty
	enduranceDifficulty []catalog.Difficulty
	strengthTargets     []string
	enduranceTargets    []string
	advice              string
}

var plans = map[string]plan{
	Underweight: {
		strengthDifficulty:  []catalog.Difficulty{catalog.Easy, catalog.Medium},
		enduranceDifficulty: []catalog.Difficulty{catalog.Easy},
		strengthTargets:     []string{"Push-up", "Squat", "Dips", "Pull-ups"},
		enduranceTargets:    []string{"Jogging", "Berenang"},
		advice: "Anda disarankan untuk fokus pada latihan yang dapat membantu membangun massa otot dan meningkatkan kekuatan tubuh. " +
			"Kombinasikan dengan asupan kalori yang cukup.",
	},
	Normal: {
		strengthDifficulty:  []catalog.Difficulty{catalog.Medium, catalog.Hard},
		enduranceDifficulty: []catalog.Difficulty{catalog.Medium, catalog.Hard},
		strengthTargets:     []string{"Push-up", "Squat", "Dips", "Pull-ups"},
		enduranceTargets:    []string{"Jogging", "Bersepeda", "Berenang"},
		advice: "Anda disarankan untuk menjaga keseimbangan antara latihan kekuatan dan kardio " +
			"untuk mempertahankan kondisi tubuh yang sehat.",
	},
	Overweight: {
		strengthDifficulty:  []catalog.Difficulty{catalog.Medium},
		enduranceDifficulty: []catalog.Difficulty{catalog.Medium, catalog.Hard},
		strengthTargets:     []string{"Push-up", "Squat"},
		enduranceTargets:    []string{"Jogging", "Berenang", "Bersepeda"},
		advice: "Anda disarankan untuk fokus pada latihan kardio dengan intensitas sedang hingga tinggi " +
			"dikombinasikan dengan latihan kekuatan untuk membantu menurunkan berat badan.",
	},
	Obese: {
		strengthDifficulty:  []catalog.Difficulty{catalog.Easy},
		enduranceDifficulty: []catalog.Difficulty{catalog.Easy, catalog.Medium},
		strengthTargets:     []string{"Assisted", "Wall"},
		enduranceTargets:    []string{"Jogging", "Berenang", "Brisk Walking"},
		advice: "Anda disarankan untuk memulai dengan latihan intensitas rendah yang aman bagi sendi, " +
			"secara bertahap meningkatkan intensitas seiring peningkatan kebugaran Anda.",
	},
}

// forAge tightens a plan for users over 45: easy strength work only, no
// hard endurance work, and low-impact cardio added to the targets.
func (p plan) forAge(age float64) plan {
	if age <= 45 {
		return p
	}
	p.strengthDifficulty = []catalog.Difficulty{catalog.Easy}
	p.enduranceDifficulty = slices.DeleteFunc(slices.Clone(p.enduranceDifficulty), func(d catalog.Difficulty) bool {
		return d == catalog.Hard
	})
	p.enduranceTargets = append(slices.Clone(p.enduranceTargets), "Brisk Walking", "Berenang")
	return p
}

// RuleAdvisor applies the BMI and age rules in-process against the catalog.
type RuleAdvisor struct {
	catalog *catalog.Catalog
}

func NewRuleAdvisor(cat *catalog.Catalog) *RuleAdvisor {
	return &RuleAdvisor{catalog: cat}
}

func (a *RuleAdvisor) Advise(_ context.Context, m Metrics) (*Result, error) {
	if !(m.Age > 0 && m.Height > 0 && m.Weight > 0) {
		return nil, fmt.Errorf("%w: age, height and weight must be positive", ErrInvalidMetrics)
	}

	bmi := BMI(m.Weight, m.Height)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return nil, fmt.Errorf("%w: BMI is out of range", ErrInvalidMetrics)
	}
	bmiCat := BMICategory(bmi)
	ageCat := AgeCategory(m.Age)
	level := DifficultyLevel(bmiCat, m.Age)
	p := plans[bmiCat].forAge(m.Age)

	strength := a.pick(strengthType, p.strengthTargets, p.strengthDifficulty)
	endurance := a.pick(enduranceType, p.enduranceTargets, p.enduranceDifficulty)

	return &Result{
		BMI:               bmi,
		BMICategory:       bmiCat,
		AgeCategory:       ageCat,
		DifficultyLevel:   level,
		Summary:           summary(bmiCat, ageCat, level, p.advice),
		EnduranceWorkouts: endurance,
		StrengthWorkouts:  strength,
	}, nil
}

// pick keeps the bucket's records whose name contains a target fragment and
// whose difficulty is allowed, tops up with any allowed record when fewer
// than three match, and caps the list at three.
func (a *RuleAdvisor) pick(bucketType string, targets []string, allowed []catalog.Difficulty) []catalog.WorkoutRecord {
	out := []catalog.WorkoutRecord{}
	bucket, ok := a.catalog.Bucket(bucketType)
	if !ok {
		return out
	}
	records := bucket.Records()

	for _, w := range records {
		if slices.Contains(allowed, w.Kesulitan) && containsAny(w.Name, targets) {
			out = append(out, w)
		}
	}
	if len(out) < maxPerCategory {
		for _, w := range records {
			if !slices.Contains(allowed, w.Kesulitan) || hasName(out, w.Name) {
				continue
			}
			out = append(out, w)
			if len(out) >= maxPerCategory {
				break
			}
		}
	}
	if len(out) > maxPerCategory {
		out = out[:maxPerCategory]
	}
	return out
}

func containsAny(name string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

func hasName(records []catalog.WorkoutRecord, name string) bool {
	return slices.ContainsFunc(records, func(w catalog.WorkoutRecord) bool { return w.Name == name })
}

func summary(bmiCat, ageCat, level, advice string) string {
	return fmt.Sprintf(
		"<p>Berdasarkan BMI Anda yang termasuk kategori <strong>%s</strong> dan kategori usia <strong>%s</strong>, %s</p>"+
			"<p>Tingkat kesulitan yang direkomendasikan: <strong>%s</strong>.</p>",
		bmiCat, ageCat, advice, level)
}
