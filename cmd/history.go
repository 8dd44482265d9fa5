package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterKind   string
	historyLimit int
)

// historyCmd shows every test of one evaluatee, newest first, followed by
// the VO2max trend across their Cooper tests.
var historyCmd = &cobra.Command{
	Use:   "history [name-or-id]",
	Short: "Display the test history of an evaluatee, optionally filtered by kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch filterKind {
		case "", models.KindCooper, models.KindPerformance, models.KindIntervals:
		default:
			return fmt.Errorf("unknown kind %q, use cooper, performance or intervals", filterKind)
		}

		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(args[0])
		if err != nil {
			return err
		}

		assessments, err := st.ListAssessments(ev.ID)
		if err != nil {
			return fmt.Errorf("failed to retrieve history: %w", err)
		}

		if filterKind != "" {
			var filtered []models.Assessment
			for _, a := range assessments {
				if a.Kind == filterKind {
					filtered = append(filtered, a)
				}
			}
			assessments = filtered
		}
		if historyLimit > 0 && len(assessments) > historyLimit {
			assessments = assessments[:historyLimit]
		}

		printBoxedHeader("HISTORY: " + ev.Name)
		if len(assessments) == 0 {
			fmt.Println("No tests recorded.")
			return nil
		}

		kindColor := map[string]func(a ...interface{}) string{
			models.KindCooper:      color.New(color.FgCyan).SprintFunc(),
			models.KindPerformance: color.New(color.FgMagenta).SprintFunc(),
			models.KindIntervals:   color.New(color.FgBlue).SprintFunc(),
		}
		for _, a := range assessments {
			fmt.Printf("  %s  %-22s VO2max %-8s %s\n",
				utils.FormatDate(a.TestDate),
				kindColor[a.Kind](a.Kind),
				utils.FormatNumber(a.VO2Max, 2),
				a.Detail,
			)
		}
		fmt.Println()

		tests, err := st.ListCooperTests(ev.ID, 0)
		if err != nil {
			return fmt.Errorf("failed to retrieve cooper tests: %w", err)
		}
		printTrend(tests)
		return nil
	},
}

// printTrend compares the oldest and newest Cooper tests. tests are newest
// first.
func printTrend(tests []models.CooperTest) {
	if len(tests) < 2 {
		return
	}
	first, last := tests[len(tests)-1], tests[0]
	delta := last.VO2Max - first.VO2Max

	trend := color.New(color.FgYellow).Sprint("→ stable")
	switch {
	case delta > 0:
		trend = color.New(color.FgGreen).Sprint("↑ improving")
	case delta < 0:
		trend = color.New(color.FgRed).Sprint("↓ declining")
	}

	header := color.New(color.FgGreen, color.Bold).Sprintf("VO2max trend (%d Cooper tests):", len(tests))
	fmt.Println(header)
	printMetric("From", fmt.Sprintf("%s on %s (%s)",
		utils.FormatUnit(first.VO2Max, 2, "ml/kg/min"), utils.FormatDate(first.TestDate), first.Classification))
	printMetric("To", fmt.Sprintf("%s on %s (%s)",
		utils.FormatUnit(last.VO2Max, 2, "ml/kg/min"), utils.FormatDate(last.TestDate), last.Classification))
	printMetric("Change", fmt.Sprintf("%s %s", signed(delta), trend))

	if calc.ClassRank(last.Classification) > calc.ClassRank(first.Classification) {
		fmt.Printf("  🎉 Moved up from %s to %s\n", first.Classification, classificationColor(last.Classification))
	}
	fmt.Println()
}

func signed(v float64) string {
	if v > 0 {
		return "+" + utils.FormatNumber(v, 2)
	}
	return utils.FormatNumber(v, 2)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterKind, "kind", "k", "", "Only show one kind of test (cooper, performance, intervals)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "Show at most this many tests")
}
