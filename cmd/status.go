package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals: evaluatees, tests per kind, prescribed calories, week streak and the class of every evaluatee",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()
		defer st.Close()

		evaluatees, err := st.ListEvaluatees()
		if err != nil {
			return fmt.Errorf("failed to retrieve evaluatees: %w", err)
		}

		assessments, err := st.ListAssessmentsBetween(time.Time{}, time.Now().AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("failed to retrieve assessments: %w", err)
		}
		perKind := make(map[string]int)
		for _, a := range assessments {
			perKind[a.Kind]++
		}

		var totalKcal, totalFat, vo2Sum float64
		var tested int
		classCount := make(map[string]int)
		for _, ev := range evaluatees {
			evals, err := st.ListPerformanceEvaluations(ev.ID, 0)
			if err != nil {
				return err
			}
			for _, pe := range evals {
				totalKcal += pe.CaloricExpenditure
				totalFat += pe.WeightLoss
			}

			sessions, err := st.ListIntervalSessions(ev.ID, 0)
			if err != nil {
				return err
			}
			for _, is := range sessions {
				totalKcal += is.TotalKcal
				totalFat += is.TotalWeightLossGrams
			}

			latest, err := st.LatestCooperTest(ev.ID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			tested++
			vo2Sum += latest.VO2Max
			classCount[latest.Classification]++
		}

		printBoxedHeader("STATUS")
		printMetric("Evaluatees", len(evaluatees))
		printMetric("Cooper tests", perKind[models.KindCooper])
		printMetric("Performance evaluations", perKind[models.KindPerformance])
		printMetric("Interval sessions", perKind[models.KindIntervals])
		printMetric("Prescribed calories", utils.FormatUnit(totalKcal, 0, "kcal"))
		printMetric("Prescribed fat loss", utils.FormatUnit(totalFat/1000, 2, "kg"))
		printMetric("Week streak", fmt.Sprintf("%d weeks", computeWeekStreak(assessments)))
		if tested > 0 {
			printMetric("Average VO2max", utils.FormatUnit(vo2Sum/float64(tested), 2, "ml/kg/min"))
		}
		fmt.Println()

		if tested == 0 {
			return nil
		}
		header := color.New(color.FgGreen, color.Bold).Sprintf("Evaluatees per class (latest Cooper test):")
		fmt.Println(header)
		for _, class := range []string{calc.ClassExcellent, calc.ClassGood, calc.ClassFair, calc.ClassPoor, calc.ClassVeryPoor} {
			if n := classCount[class]; n > 0 {
				fmt.Printf("  • %s: %d\n", classificationColor(class), n)
			}
		}
		fmt.Println()

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText2(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText2(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-n-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak counts the consecutive ISO weeks, ending with the
// current one, that have at least one assessment.
func computeWeekStreak(assessments []models.Assessment) int {
	weekSet := make(map[string]bool)
	for _, a := range assessments {
		year, week := utils.ToSaoPaulo(a.TestDate).ISOWeek()
		weekSet[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	now := utils.ToSaoPaulo(time.Now())
	for {
		year, week := now.ISOWeek()
		if !weekSet[fmt.Sprintf("%d-%02d", year, week)] {
			break
		}
		streak++
		now = now.AddDate(0, 0, -7)
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
