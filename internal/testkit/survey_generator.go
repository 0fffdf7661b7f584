package testkit

import (
	"fmt"
	"math/rand"
	"strings"

	"gosurvey/domain/survey"
)

// SurveyGeneratorConfig configures the synthetic survey generator
type SurveyGeneratorConfig struct {
	RespondentCount int     `json:"respondent_count"`
	MissingRate     float64 `json:"missing_rate"` // chance a respondent skips a question
	NARate          float64 `json:"na_rate"`      // chance a skipped answer is a literal "NA"
	Seed            int64   `json:"seed"`
}

// DefaultSurveyConfig returns sensible defaults for survey data generation
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		RespondentCount: 500,
		MissingRate:     0.1,
		NARate:          0.3,
		Seed:            42,
	}
}

// SurveyDataGenerator generates a realistic developer-survey dataset with a
// fixed question schema: demographics, a multi-select language question, and
// free-text feedback. Deterministic for a given seed so fixtures stay stable.
type SurveyDataGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyDataGenerator creates a new survey data generator
func NewSurveyDataGenerator(config SurveyGeneratorConfig) *SurveyDataGenerator {
	return &SurveyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Question schema of the synthetic survey, in column order.
var generatedQuestions = []survey.Question{
	{Key: "Age", Label: "How many years old are you?", Kind: survey.KindNumeric},
	{Key: "DevRole", Label: "What is your primary role?", Kind: survey.KindSingleChoice},
	{Key: "LanguageHaveWorkedWith", Label: "Which languages have you worked with? (select all that apply)", Kind: survey.KindMultipleChoice},
	{Key: "AISelect", Label: "Do you use AI tools in your workflow?", Kind: survey.KindSingleChoice},
	{Key: "Feedback", Label: "Please describe anything else", Kind: survey.KindText},
}

var (
	generatedRoles     = []string{"Backend Developer", "Frontend Developer", "Full-stack Developer", "Data Scientist", "DevOps Engineer"}
	generatedLanguages = []string{"Python", "JavaScript", "Go", "Rust", "Java", "TypeScript"}
	generatedAIAnswers = []string{"Yes", "No, but I plan to", "No, and I don't plan to"}
	generatedFeedback  = []string{"Great survey", "Too long", "More language options please", "Loved it"}
)

// Generate produces a complete synthetic dataset
func (g *SurveyDataGenerator) Generate() *survey.Dataset {
	records := make([]survey.Record, 0, g.config.RespondentCount)
	for i := 0; i < g.config.RespondentCount; i++ {
		records = append(records, g.generateRespondent())
	}

	return &survey.Dataset{
		SnapshotID: fmt.Sprintf("testkit-%d", g.config.Seed),
		Source:     "testkit",
		Registry:   survey.NewRegistry(generatedQuestions),
		Responses:  survey.NewResponseTable(records),
	}
}

func (g *SurveyDataGenerator) generateRespondent() survey.Record {
	rec := make(survey.Record)

	for id, q := range generatedQuestions {
		if g.rng.Float64() < g.config.MissingRate {
			// Some skipped answers are physically present as "NA" rather
			// than absent, mirroring real survey exports.
			if g.rng.Float64() < g.config.NARate {
				rec[id] = survey.MissingSentinel
			}
			continue
		}

		switch q.Key {
		case "Age":
			rec[id] = fmt.Sprintf("%d", 18+g.rng.Intn(50))
		case "DevRole":
			rec[id] = generatedRoles[g.rng.Intn(len(generatedRoles))]
		case "LanguageHaveWorkedWith":
			rec[id] = g.pickLanguages()
		case "AISelect":
			rec[id] = generatedAIAnswers[g.rng.Intn(len(generatedAIAnswers))]
		case "Feedback":
			rec[id] = generatedFeedback[g.rng.Intn(len(generatedFeedback))]
		}
	}

	return rec
}

// pickLanguages selects 1-4 distinct languages, semicolon-joined
func (g *SurveyDataGenerator) pickLanguages() string {
	count := 1 + g.rng.Intn(4)
	perm := g.rng.Perm(len(generatedLanguages))

	picked := make([]string, 0, count)
	for _, idx := range perm[:count] {
		picked = append(picked, generatedLanguages[idx])
	}
	return strings.Join(picked, ";")
}
