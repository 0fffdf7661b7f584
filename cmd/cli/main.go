package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gosurvey/adapters/excel"
	"gosurvey/app"
	"gosurvey/domain/analysis"
	"gosurvey/internal/report"
	"gosurvey/internal/testkit"
)

var (
	surveyFile string
	useDemo    bool
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gosurvey",
		Short: "Survey dataset analyzer: distributions, subsets and keyword search",
	}

	rootCmd.PersistentFlags().StringVarP(&surveyFile, "file", "f", os.Getenv("SURVEY_FILE"), "Path to the survey Excel/CSV file")
	rootCmd.PersistentFlags().BoolVar(&useDemo, "demo", false, "Use a synthetic demo dataset instead of a file")

	rootCmd.AddCommand(
		newStructureCmd(),
		newSearchCmd(),
		newOptionsCmd(),
		newDistributionCmd(),
		newSubsetCmd(),
		newCompareCmd(),
		newReportCmd(),
		newReplCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadService builds the analyzer from the configured source
func loadService(ctx context.Context) (*app.AnalyzerService, error) {
	if useDemo {
		return testkit.NewTestKit().Service(), nil
	}
	if surveyFile == "" {
		return nil, fmt.Errorf("no survey file: pass --file or set SURVEY_FILE (or use --demo)")
	}
	return app.LoadAnalyzer(ctx, excel.NewLoader(), surveyFile)
}

func newStructureCmd() *cobra.Command {
	var limit int
	var filter string

	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Display the survey structure (list of questions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}

			questions := service.ListQuestions()
			if filter != "" {
				questions = service.SearchQuestions(filter)
			}
			if limit > 0 && limit < len(questions) {
				questions = questions[:limit]
			}

			fmt.Printf("Survey Structure (%d questions, %d respondents):\n",
				len(questions), service.Dataset().Responses.Len())
			fmt.Println(strings.Repeat("-", 80))
			for _, q := range questions {
				fmt.Printf("Question %d [%s]: %s\n  Type: %s\n", q.ID, q.Key, q.Label, q.Kind)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show only the first N questions")
	cmd.Flags().StringVar(&filter, "filter", "", "Show only questions containing this term")

	return cmd
}

func newSearchCmd() *cobra.Command {
	var searchOptions bool

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search for questions or observed options by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			term := strings.Join(args, " ")

			if searchOptions {
				hits := service.SearchOptions(term)
				fmt.Printf("Found %d option(s) containing %q:\n", len(hits), term)
				for _, hit := range hits {
					fmt.Printf("  Question %d: %s\n", hit.QuestionID, hit.Option)
				}
				return nil
			}

			results := service.SearchQuestions(term)
			fmt.Printf("Found %d question(s) containing %q:\n", len(results), term)
			for _, q := range results {
				fmt.Printf("  Question %d: %s\n", q.ID, q.Label)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&searchOptions, "options", "o", false, "Search observed option values instead of questions")

	return cmd
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options [question-id]",
		Short: "List the observed answer options for a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}

			options, err := service.QuestionOptions(id)
			if err != nil {
				return err
			}
			q, _ := service.Dataset().Registry.Lookup(id)
			fmt.Printf("Available options for %q (Type: %s):\n", q.Label, q.Kind)
			for _, opt := range options {
				fmt.Printf("  %s\n", opt)
			}
			return nil
		},
	}
}

func newDistributionCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "distribution [question-id]",
		Short: "Display the answer distribution for a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}

			dist, err := service.GetDistribution(id)
			if err != nil {
				return err
			}
			printDistribution(dist)

			if threshold > 0 {
				above := dist.AboveThreshold(threshold)
				if len(above) > 0 {
					fmt.Printf("\nAnswers at or above %.1f%%:\n", threshold)
					for _, e := range above {
						fmt.Printf("  %s: %d (%.1f%%)\n", e.Option, e.Count, e.Percentage)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.0, "Minimum percentage threshold to highlight")

	return cmd
}

func newSubsetCmd() *cobra.Command {
	var detailed bool
	var tokenMatch bool

	cmd := &cobra.Command{
		Use:   "subset [question-id] [option]",
		Short: "Create a subset of respondents matching a question/option pair",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}
			option := strings.Join(args[1:], " ")

			mode := analysis.MatchContains
			if tokenMatch {
				mode = analysis.MatchToken
			}
			subset, err := service.CreateSubsetMode(id, option, mode)
			if err != nil {
				return err
			}
			printSubset(subset)

			if detailed && subset.Size() > 0 {
				fmt.Println("\nDetailed responses:")
				printSubsetDetail(service, subset, 10)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Show matching responses instead of just counts")
	cmd.Flags().BoolVar(&tokenMatch, "token", false, "Use delimiter-aware exact matching for multiple-choice answers")

	return cmd
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [group-question-id] [group-option] [target-question-id]",
		Short: "Compare a target question's distribution inside a respondent group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			groupQ, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}
			targetQ, err := parseQuestionID(args[2])
			if err != nil {
				return err
			}

			group, err := service.CreateSubset(groupQ, args[1])
			if err != nil {
				return err
			}
			dist, err := service.DistributionWithin(targetQ, group)
			if err != nil {
				return err
			}

			fmt.Printf("Group: question %d = %q (%d respondents, %.1f%% of total)\n\n",
				groupQ, args[1], group.Size(), group.Percentage())
			printDistribution(dist)
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var output string
	var threshold float64
	var topics []string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a markdown analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}

			md, err := report.Generate(service.Dataset(), report.Options{
				Threshold: threshold,
				TopicKeys: topics,
			})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Print(md)
				return nil
			}
			if err := os.WriteFile(output, []byte(md), 0644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file ('-' for stdout)")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 30.0, "Adoption percentage worth a recommendation")
	cmd.Flags().StringSliceVar(&topics, "topics", nil, "Question keys to feature (default: all multiple-choice questions)")

	return cmd
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(cmd.Context())
			if err != nil {
				return err
			}
			return runREPL(service, os.Stdin, os.Stdout)
		},
	}
}

func parseQuestionID(arg string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid question id %q: expected an integer", arg)
	}
	return id, nil
}
