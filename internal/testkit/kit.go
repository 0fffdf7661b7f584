package testkit

import (
	"gosurvey/app"
	"gosurvey/domain/survey"
)

// TestKit provides testing utilities and fixtures built on the synthetic
// survey generator. Tests and the dev CLI use it to get a loaded analyzer
// without touching the filesystem.
type TestKit struct {
	dataset *survey.Dataset
	service *app.AnalyzerService
}

// NewTestKit creates a test kit with the default synthetic dataset
func NewTestKit() *TestKit {
	return NewTestKitWithConfig(DefaultSurveyConfig())
}

// NewTestKitWithConfig creates a test kit with a custom generator config
func NewTestKitWithConfig(config SurveyGeneratorConfig) *TestKit {
	ds := NewSurveyDataGenerator(config).Generate()
	return &TestKit{
		dataset: ds,
		service: app.NewAnalyzerService(ds),
	}
}

// Dataset returns the generated dataset snapshot
func (k *TestKit) Dataset() *survey.Dataset {
	return k.dataset
}

// Service returns an analyzer service over the generated dataset
func (k *TestKit) Service() *app.AnalyzerService {
	return k.service
}

// FixedDataset builds the small hand-written dataset used across package
// tests: one numeric age question and one multi-select language question
// with three respondents.
func FixedDataset() *survey.Dataset {
	questions := []survey.Question{
		{Key: "Q1", Label: "What is your age?", Kind: survey.KindSingleChoice},
		{Key: "Q2", Label: "What languages do you use?", Kind: survey.KindMultipleChoice},
	}

	records := []survey.Record{
		{0: "25-34", 1: "Python;JavaScript;Rust"},
		{0: "35-44", 1: "Java;Python"},
		{0: "25-34", 1: "Python;Go"},
	}

	return &survey.Dataset{
		SnapshotID: "fixed",
		Source:     "testkit",
		Registry:   survey.NewRegistry(questions),
		Responses:  survey.NewResponseTable(records),
	}
}
