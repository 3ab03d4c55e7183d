package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/fitrec/internal/catalog"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func names(records []catalog.WorkoutRecord) []string {
	out := make([]string, len(records))
	for i, w := range records {
		out[i] = w.Name
	}
	return out
}

func TestBMICategory(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{16, Underweight},
		{18.49, Underweight},
		{18.5, Normal},
		{24.99, Normal},
		{25, Overweight},
		{29.9, Overweight},
		{30, Obese},
		{42, Obese},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BMICategory(tc.bmi), "bmi %v", tc.bmi)
	}
}

func TestAgeCategory(t *testing.T) {
	assert.Equal(t, Young, AgeCategory(18))
	assert.Equal(t, Adult, AgeCategory(25))
	assert.Equal(t, Adult, AgeCategory(44))
	assert.Equal(t, Senior, AgeCategory(45))
}

func TestDifficultyLevel(t *testing.T) {
	assert.Equal(t, "Easy", DifficultyLevel(Obese, 30))
	assert.Equal(t, "Easy", DifficultyLevel(Normal, 60))
	assert.Equal(t, "Medium", DifficultyLevel(Overweight, 30))
	assert.Equal(t, "Medium", DifficultyLevel(Normal, 45))
	assert.Equal(t, "Medium to Hard", DifficultyLevel(Normal, 30))
	assert.Equal(t, "Easy to Medium", DifficultyLevel(Underweight, 30))
}

func TestRuleAdvisorNormalAdult(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	res, err := a.Advise(context.Background(), Metrics{Age: 25, Height: 170, Weight: 70})
	require.NoError(t, err)

	assert.InDelta(t, 24.22, res.BMI, 0.01)
	assert.Equal(t, Normal, res.BMICategory)
	assert.Equal(t, Adult, res.AgeCategory)
	assert.Equal(t, "Medium to Hard", res.DifficultyLevel)
	assert.Equal(t, []string{"Push-up", "Pull-ups", "Dips"}, names(res.StrengthWorkouts))
	assert.Equal(t, []string{"Jogging", "Berenang", "Bersepeda"}, names(res.EnduranceWorkouts))
	assert.False(t, res.DataDriven)
	assert.Contains(t, res.Summary, "<strong>Normal</strong>")
	assert.Contains(t, res.Summary, "<strong>Dewasa</strong>")
	assert.Contains(t, res.Summary, "menjaga keseimbangan")
	assert.Contains(t, res.Summary, "<strong>Medium to Hard</strong>.</p>")
}

func TestRuleAdvisorObese(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	res, err := a.Advise(context.Background(), Metrics{Age: 40, Height: 170, Weight: 100})
	require.NoError(t, err)

	assert.Equal(t, Obese, res.BMICategory)
	assert.Equal(t, "Easy", res.DifficultyLevel)
	assert.Equal(t, []string{"Assisted push up", "Wall Push-up", "Assisted Squats"}, names(res.StrengthWorkouts))
	assert.Equal(t, []string{"Jogging", "Berenang", "Brisk Walking"}, names(res.EnduranceWorkouts))
}

// TestRuleAdvisorTopsUp covers a category whose targets match too few
// records: the list is filled with other records at an allowed difficulty.
func TestRuleAdvisorTopsUp(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	res, err := a.Advise(context.Background(), Metrics{Age: 20, Height: 180, Weight: 55})
	require.NoError(t, err)

	assert.Equal(t, Underweight, res.BMICategory)
	assert.Equal(t, Young, res.AgeCategory)
	assert.Equal(t, "Easy to Medium", res.DifficultyLevel)
	assert.Equal(t, []string{"Push-up", "Wall Push-up", "Squat"}, names(res.StrengthWorkouts))
	assert.Equal(t, []string{"Brisk Walking", "Elliptical", "Senam Aerobik"}, names(res.EnduranceWorkouts))
}

func TestRuleAdvisorOlderAdult(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	res, err := a.Advise(context.Background(), Metrics{Age: 50, Height: 170, Weight: 70})
	require.NoError(t, err)

	assert.Equal(t, Senior, res.AgeCategory)
	assert.Equal(t, "Medium", res.DifficultyLevel)
	for _, w := range res.StrengthWorkouts {
		assert.Equal(t, catalog.Easy, w.Kesulitan, w.Name)
	}
	assert.Equal(t, []string{"Wall Push-up", "Assisted Squats", "Assisted push up"}, names(res.StrengthWorkouts))
	for _, w := range res.EnduranceWorkouts {
		assert.NotEqual(t, catalog.Hard, w.Kesulitan, w.Name)
	}
}

func TestRuleAdvisorCapsAtThree(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	for _, m := range []Metrics{
		{Age: 20, Height: 150, Weight: 40},
		{Age: 30, Height: 175, Weight: 72},
		{Age: 35, Height: 165, Weight: 75},
		{Age: 65, Height: 160, Weight: 95},
	} {
		res, err := a.Advise(context.Background(), m)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.StrengthWorkouts), 3)
		assert.LessOrEqual(t, len(res.EnduranceWorkouts), 3)
	}
}

func TestRuleAdvisorRejectsNonPositive(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	_, err := a.Advise(context.Background(), Metrics{Age: 30, Height: 0, Weight: 70})
	assert.ErrorIs(t, err, ErrInvalidMetrics)
	_, err = a.Advise(context.Background(), Metrics{Age: -1, Height: 170, Weight: 70})
	assert.ErrorIs(t, err, ErrInvalidMetrics)
}

func TestRuleAdvisorRejectsNonFiniteBMI(t *testing.T) {
	a := NewRuleAdvisor(defaultCatalog(t))

	for _, m := range []Metrics{
		{Age: 25, Height: 1e-200, Weight: 70},
		{Age: 25, Height: 1, Weight: 1e308},
	} {
		res, err := a.Advise(context.Background(), m)
		assert.ErrorIs(t, err, ErrInvalidMetrics)
		assert.Nil(t, res)
	}
}

func TestRuleAdvisorMissingBucket(t *testing.T) {
	cat, err := catalog.New([]catalog.Bucket{{
		Type: "strength",
		Subcategories: []catalog.Subcategory{{Name: "core", Workouts: []catalog.WorkoutRecord{
			{Name: "Plank", Jenis: "strength", Kesulitan: catalog.Medium},
		}}},
	}})
	require.NoError(t, err)

	res, err := NewRuleAdvisor(cat).Advise(context.Background(), Metrics{Age: 30, Height: 170, Weight: 70})
	require.NoError(t, err)
	assert.Equal(t, []string{"Plank"}, names(res.StrengthWorkouts))
	assert.NotNil(t, res.EnduranceWorkouts)
	assert.Empty(t, res.EnduranceWorkouts)
}
