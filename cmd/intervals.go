package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	intervalsEvaluatee string
	intervalsSave      bool
)

var intervalsCmd = &cobra.Command{
	Use:   "intervals [plan-file]",
	Short: "Evaluate an interval training plan described in a TOML file",
	Long: `Evaluate an interval training plan described in a TOML file:

    evaluatee = "Maria Souza"   # optional
    cooper_test_distance = 2400
    body_weight = 70

    [[interval]]
    mode = "distance_intensity"
    distance_meters = 400
    intensity_percentage = 80
    repetitions = 4
    rest_seconds = 60

    [[interval]]
    mode = "distance_time"
    distance_meters = 1000
    time_minutes = 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var plan models.IntervalPlanTOML
		if _, err := toml.DecodeFile(args[0], &plan); err != nil {
			return fmt.Errorf("Failed to parse TOML: %w", err)
		}
		if intervalsEvaluatee != "" {
			plan.Evaluatee = intervalsEvaluatee
		}
		if intervalsSave && plan.Evaluatee == "" {
			return fmt.Errorf("--save needs an evaluatee, in the plan or with --evaluatee")
		}

		res, err := calc.EvaluateIntervals(plan.IntervalSessionInput)
		if err != nil {
			return describeIntervalError(err)
		}
		printIntervalSession(res)

		if !intervalsSave {
			return nil
		}

		testDate, err := parseTestDate(testDateFlag)
		if err != nil {
			return err
		}

		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(plan.Evaluatee)
		if err != nil {
			return err
		}
		if err := saveIntervalSession(st, ev, "", testDate, plan.IntervalSessionInput, res); err != nil {
			return err
		}

		fmt.Printf("✅ Interval session saved for %s\n", ev.Name)
		return nil
	},
}

func saveIntervalSession(st *storage.Storage, ev *models.Evaluatee, id string, testDate time.Time, in calc.IntervalSessionInput, res calc.IntervalSessionResult) error {
	is := &models.IntervalSession{
		ID:                      id,
		EvaluateeID:             ev.ID,
		TestDate:                testDate,
		CooperTestDistance:      in.CooperDistance,
		BodyWeight:              in.BodyWeight,
		VO2Max:                  res.VO2Max,
		IntervalTrainingSummary: res.Summary,
		Intervals:               res.Intervals,
	}
	if err := st.SaveIntervalSession(is); err != nil {
		return fmt.Errorf("Failed to save interval session: %w", err)
	}

	log.WithFields(log.Fields{"evaluatee": ev.ID, "session": is.ID, "intervals": len(is.Intervals)}).Info("interval session recorded")
	return nil
}

// describeIntervalError points at the failing interval by its 1-based
// position.
func describeIntervalError(err error) error {
	var ie *calc.IntervalError
	if errors.As(err, &ie) {
		return fmt.Errorf("Interval #%d is invalid: %w", ie.Index+1, ie.Err)
	}
	return err
}

func describeInterval(in calc.IntervalInput) string {
	var parts []string
	if in.Repetitions > 1 {
		parts = append(parts, fmt.Sprintf("%dx", in.Repetitions))
	}
	parts = append(parts, utils.FormatUnit(in.DistanceMeters, 0, "m"))
	switch in.Mode {
	case calc.ModeDistanceIntensity:
		if in.IntensityPercentage != nil {
			parts = append(parts, "@ "+utils.FormatUnit(*in.IntensityPercentage, 0, "%"))
		}
	case calc.ModeDistanceTime:
		if in.TimeMinutes != nil {
			parts = append(parts, "in "+utils.FormatUnit(*in.TimeMinutes, 2, "min"))
		}
	}
	if in.RestSeconds > 0 {
		parts = append(parts, fmt.Sprintf("(rest %s)", utils.FormatUnit(in.RestSeconds, 0, "s")))
	}
	return strings.Join(parts, " ")
}

func printIntervalSession(res calc.IntervalSessionResult) {
	printBoxedHeader("INTERVAL TRAINING")
	printMetric("VO2max", utils.FormatUnit(res.VO2Max, 2, "ml/kg/min"))
	printMetric("Max MET", utils.FormatNumber(res.MaxMET, 2))
	fmt.Println()

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	for i, r := range res.Intervals {
		fmt.Printf("%s %s\n", cyan(fmt.Sprintf("#%d", i+1)), describeInterval(r.Input))
		fmt.Printf("   Intensity %s | %s MET | %s (%s)\n",
			utils.FormatUnit(r.IntensityPercentage, 2, "%"),
			utils.FormatNumber(r.TrainingMET, 2),
			utils.FormatUnit(r.VelocityMPerMin, 2, "m/min"),
			utils.FormatUnit(r.VelocityKmPerHour, 2, "km/h"))
		fmt.Printf("   %s | %s | O2 %s/min, %s | %s | %s\n",
			utils.FormatUnit(r.TotalDistanceMeters, 0, "m"),
			utils.FormatUnit(r.TimeMinutes, 2, "min"),
			utils.FormatUnit(r.O2PerMinuteLiters, 2, "L"),
			utils.FormatUnit(r.TotalO2Liters, 2, "L"),
			utils.FormatUnit(r.Kcal, 2, "kcal"),
			utils.FormatUnit(r.WeightLossGrams, 2, "g"))
	}
	fmt.Println()

	header := color.New(color.FgGreen, color.Bold).Sprintf("Session totals:")
	fmt.Println(header)
	printMetric("Distance", utils.FormatUnit(res.Summary.TotalDistanceMeters, 0, "m"))
	printMetric("Time", utils.FormatUnit(res.Summary.TotalTimeMinutes, 2, "min"))
	printMetric("O2", utils.FormatUnit(res.Summary.TotalO2Liters, 2, "L"))
	printMetric("Calories", utils.FormatUnit(res.Summary.TotalKcal, 2, "kcal"))
	printMetric("Weight loss", utils.FormatUnit(res.Summary.TotalWeightLossGrams, 2, "g"))
	fmt.Println()
}

func init() {
	intervalsCmd.Flags().StringVarP(&intervalsEvaluatee, "evaluatee", "e", "", "Evaluatee name or ID, overrides the plan")
	intervalsCmd.Flags().BoolVarP(&intervalsSave, "save", "s", false, "Save the session to the evaluatee history")
	intervalsCmd.Flags().StringVarP(&testDateFlag, "date", "d", "", "Session date (YYYY-MM-DD or DD/MM/YYYY), defaults to today")
	rootCmd.AddCommand(intervalsCmd)
}
