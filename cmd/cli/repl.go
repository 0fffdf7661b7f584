package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gosurvey/app"
	"gosurvey/domain/analysis"
)

// replHandler executes one REPL command against the analyzer
type replHandler struct {
	usage string
	help  string
	run   func(service *app.AnalyzerService, out io.Writer, args []string) error
}

// replCommands is the command-to-handler lookup table. Dispatch is a plain
// map lookup; the commands hold no state of their own.
var replCommands = map[string]replHandler{
	"list": {
		usage: "list [limit]",
		help:  "List questions (optionally limit to N questions)",
		run: func(service *app.AnalyzerService, out io.Writer, args []string) error {
			questions := service.ListQuestions()
			count := len(questions)
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid limit %q", args[0])
				}
				if n < count {
					count = n
				}
			}
			for _, q := range questions[:count] {
				fmt.Fprintf(out, "%d: %s\n", q.ID, q.Label)
			}
			fmt.Fprintf(out, "(%d of %d questions shown)\n", count, len(questions))
			return nil
		},
	},
	"search": {
		usage: "search <term>",
		help:  "Search questions by keyword",
		run: func(service *app.AnalyzerService, out io.Writer, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: search <term>")
			}
			for _, q := range service.SearchQuestions(strings.Join(args, " ")) {
				fmt.Fprintf(out, "%d: %s\n", q.ID, q.Label)
			}
			return nil
		},
	},
	"searchopt": {
		usage: "searchopt <term>",
		help:  "Search observed answer options by keyword",
		run: func(service *app.AnalyzerService, out io.Writer, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: searchopt <term>")
			}
			for _, hit := range service.SearchOptions(strings.Join(args, " ")) {
				fmt.Fprintf(out, "Q%d: %s\n", hit.QuestionID, hit.Option)
			}
			return nil
		},
	},
	"dist": {
		usage: "dist <question_id>",
		help:  "Show the answer distribution for a question",
		run: func(service *app.AnalyzerService, out io.Writer, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: dist <question_id>")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			dist, err := service.GetDistribution(id)
			if err != nil {
				return err
			}
			fprintDistribution(out, dist)
			return nil
		},
	},
	"subset": {
		usage: "subset <question_id> <option>",
		help:  "Create a subset of respondents",
		run: func(service *app.AnalyzerService, out io.Writer, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: subset <question_id> <option>")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			subset, err := service.CreateSubset(id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fprintSubset(out, subset)
			return nil
		},
	},
}

// runREPL reads commands line by line until quit or EOF
func runREPL(service *app.AnalyzerService, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Welcome to the survey analyzer REPL!")
	printREPLHelp(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "survey> ")
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		name, args := parts[0], parts[1:]
		if name == "quit" || name == "exit" {
			break
		}
		if name == "help" {
			printREPLHelp(out)
			continue
		}

		handler, ok := replCommands[name]
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s. Type 'help' for available commands.\n", name)
			continue
		}
		if err := handler.run(service, out, args); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Goodbye!")
	return scanner.Err()
}

func printREPLHelp(out io.Writer) {
	fmt.Fprintln(out, "Available commands:")
	for _, name := range []string{"list", "search", "searchopt", "dist", "subset"} {
		h := replCommands[name]
		fmt.Fprintf(out, "  %s - %s\n", h.usage, h.help)
	}
	fmt.Fprintln(out, "  help - Show this help")
	fmt.Fprintln(out, "  quit - Exit")
	fmt.Fprintln(out)
}

// Shared print helpers for CLI and REPL output.

func printDistribution(dist *analysis.DistributionResult) {
	fprintDistribution(os.Stdout, dist)
}

func printSubset(subset *analysis.Subset) {
	fprintSubset(os.Stdout, subset)
}

func fprintDistribution(out io.Writer, dist *analysis.DistributionResult) {
	fmt.Fprintf(out, "Question %d: %s\n", dist.QuestionID, dist.QuestionLabel)
	fmt.Fprintf(out, "Type: %s\n", dist.Kind)
	fmt.Fprintf(out, "Total Responses: %d\n", dist.TotalResponses)
	fmt.Fprintln(out, "Distribution:")
	for _, e := range dist.SortedEntries() {
		fmt.Fprintf(out, "  %s: %d (%.1f%%)\n", e.Option, e.Count, e.Percentage)
	}
	if dist.Kind.IsMultiValue() {
		fmt.Fprintln(out, "Note: percentages are based on total responses, not total options selected")
	}
}

func fprintSubset(out io.Writer, subset *analysis.Subset) {
	fmt.Fprintf(out, "Subset for Question %d - Option %q\n", subset.QuestionID, subset.Option)
	fmt.Fprintf(out, "Size: %d respondents (%.1f%% of total)\n", subset.Size(), subset.Percentage())

	preview := subset.RespondentIDs
	if len(preview) > 10 {
		preview = preview[:10]
	}
	fmt.Fprintf(out, "Respondent IDs: %v\n", preview)
}

func printSubsetDetail(service *app.AnalyzerService, subset *analysis.Subset, limit int) {
	ds := service.Dataset()
	shown := 0
	for _, id := range subset.RespondentIDs {
		if shown >= limit {
			break
		}
		rec, ok := ds.Responses.Record(id)
		if !ok {
			continue
		}
		fmt.Printf("\n--- Respondent %d ---\n", id)
		for _, q := range ds.Registry.All() {
			if value, has := rec[q.ID]; has && value != "" && value != "NA" {
				fmt.Printf("%s: %s\n", q.Key, value)
			}
		}
		shown++
	}
	if subset.Size() > limit {
		fmt.Printf("\n... and %d more respondents\n", subset.Size()-limit)
	}
}
