package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

// details is a flag to enable verbose assessment details.
var details bool

var kindColors = map[string]*color.Color{
	models.KindCooper:      color.New(color.FgCyan),
	models.KindPerformance: color.New(color.FgMagenta),
	models.KindIntervals:   color.New(color.FgBlue),
}

// calendarCmd prints the month grid. Days with assessments are colored by
// the kind of the first test of the day; days with more than one kind are
// yellow.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of assessment days with a legend mapping colors to test kinds",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Determine month and year (default to current month/year).
		now := utils.ToSaoPaulo(time.Now())
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, utils.SPLoc)
		nextMonth := firstOfMonth.AddDate(0, 1, 0)
		lastOfMonth := nextMonth.AddDate(0, 0, -1)

		st := storage.NewStorage()
		defer st.Close()

		assessments, err := st.ListAssessmentsBetween(firstOfMonth, nextMonth)
		if err != nil {
			return fmt.Errorf("failed to get assessments: %w", err)
		}

		names := make(map[string]string)
		if details {
			evaluatees, err := st.ListEvaluatees()
			if err != nil {
				return fmt.Errorf("failed to list evaluatees: %w", err)
			}
			for _, ev := range evaluatees {
				names[ev.ID] = ev.Name
			}
		}

		byDay := make(map[int][]models.Assessment)
		for _, a := range assessments {
			day := utils.ToSaoPaulo(a.TestDate).Day()
			byDay[day] = append(byDay[day], a)
		}
		mixed := color.New(color.FgYellow)

		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Println(centerText(header, 20))
		fmt.Println("Su Mo Tu We Th Fr Sa")

		// Determine weekday of first day (0 = Sunday).
		weekday := int(firstOfMonth.Weekday())
		for i := 0; i < weekday; i++ {
			fmt.Print("   ")
		}

		for day := 1; day <= lastOfMonth.Day(); day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if list, ok := byDay[day]; ok {
				c := kindColors[list[0].Kind]
				for _, a := range list[1:] {
					if a.Kind != list[0].Kind {
						c = mixed
						break
					}
				}
				dayStr = c.Sprint(dayStr + "*")
			}
			fmt.Printf("%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		fmt.Println("Legend:")
		for _, kind := range []string{models.KindCooper, models.KindPerformance, models.KindIntervals} {
			fmt.Printf("  %s: %s\n", kindColors[kind].Sprint("██"), kind)
		}
		fmt.Printf("  %s: %s\n", mixed.Sprint("██"), "several kinds")

		if details {
			fmt.Println("\nAssessment Details:")
			var days []int
			for d := range byDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, utils.SPLoc)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				list := byDay[day]
				sort.Slice(list, func(i, j int) bool {
					return list[i].TestDate.Before(list[j].TestDate)
				})
				for _, a := range list {
					fmt.Printf("  %s %s (%s): %s\n",
						utils.ToSaoPaulo(a.TestDate).Format("15:04"),
						names[a.EvaluateeID],
						kindColors[a.Kind].Sprint(a.Kind),
						a.Detail,
					)
				}
			}
		}

		return nil
	},
}

// centerText centers the given string in a field of the specified width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "v", false, "Print the tests of each day")
}
