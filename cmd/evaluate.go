package cmd

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	evalInput     calc.PerformanceEvaluationInput
	evalEvaluatee string
	evalSave      bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Prescribe a continuous run: distance, speed, O2 cost, calories and fat loss",
	Long: `Prescribe a continuous run at a percentage of the VO2max reserve.

With --evaluatee and no --cooper-distance, the distance of the evaluatee's
latest Cooper test is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if evalSave && evalEvaluatee == "" {
			return fmt.Errorf("--save needs --evaluatee")
		}

		var st *storage.Storage
		var ev *models.Evaluatee
		if evalEvaluatee != "" {
			st = storage.NewStorage()
			defer st.Close()

			var err error
			ev, err = st.GetEvaluatee(evalEvaluatee)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cooper-distance") {
				distance, err := latestCooperDistance(st, ev)
				if err != nil {
					return err
				}
				evalInput.CooperDistance = distance
			}
		}

		testDate, err := parseTestDate(testDateFlag)
		if err != nil {
			return err
		}

		res, err := calc.EvaluatePerformance(evalInput)
		if err != nil {
			return err
		}
		printPerformanceResult(evalInput, res)

		if !evalSave {
			return nil
		}

		pe := &models.PerformanceEvaluation{
			EvaluateeID:                 ev.ID,
			TestDate:                    testDate,
			PerformanceEvaluationInput:  evalInput,
			PerformanceEvaluationResult: res,
		}
		if err := st.SavePerformanceEvaluation(pe); err != nil {
			return fmt.Errorf("Failed to save evaluation: %w", err)
		}

		log.WithFields(log.Fields{"evaluatee": ev.ID, "evaluation": pe.ID}).Info("performance evaluation recorded")
		fmt.Printf("✅ Evaluation saved for %s\n", ev.Name)
		return nil
	},
}

func latestCooperDistance(st *storage.Storage, ev *models.Evaluatee) (float64, error) {
	latest, err := st.LatestCooperTest(ev.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s has no Cooper test, pass --cooper-distance", calc.ErrValidation, ev.Name)
	}
	if err != nil {
		return 0, err
	}
	log.WithField("distance", latest.CooperTestDistance).Debug("using latest cooper test")
	return latest.CooperTestDistance, nil
}

func printPerformanceResult(in calc.PerformanceEvaluationInput, res calc.PerformanceEvaluationResult) {
	printBoxedHeader("PERFORMANCE EVALUATION")
	printMetric("Cooper distance", utils.FormatUnit(in.CooperDistance, 0, "m"))
	printMetric("Intensity", utils.FormatUnit(in.IntensityPercentage, 0, "%"))
	printMetric("Training time", utils.FormatUnit(in.TrainingTime, 0, "min"))
	printMetric("Body weight", utils.FormatUnit(in.BodyWeight, 1, "kg"))
	fmt.Println()
	printMetric("VO2max", utils.FormatUnit(res.VO2Max, 2, "ml/kg/min"))
	printMetric("Training intensity", utils.FormatUnit(res.TrainingIntensity, 2, "ml/kg/min"))
	printMetric("Training velocity", utils.FormatUnit(res.TrainingVelocity, 1, "m/min"))
	printMetric("Training distance", utils.FormatUnit(res.TrainingDistance, 0, "m"))
	printMetric("Total O2", utils.FormatUnit(res.TotalO2Consumption, 1, "L"))
	printMetric("Caloric expenditure", utils.FormatUnit(res.CaloricExpenditure, 0, "kcal"))
	printMetric("Weight loss", utils.FormatUnit(res.WeightLoss, 2, "g"))
	fmt.Println()
}

func init() {
	evaluateCmd.Flags().Float64VarP(&evalInput.CooperDistance, "cooper-distance", "c", 0, "Cooper test distance in meters")
	evaluateCmd.Flags().Float64VarP(&evalInput.IntensityPercentage, "intensity", "i", 0, "Intensity as a percentage of VO2max (0-100)")
	evaluateCmd.Flags().Float64VarP(&evalInput.TrainingTime, "time", "t", 0, "Training time in minutes")
	evaluateCmd.Flags().Float64VarP(&evalInput.BodyWeight, "weight", "w", 0, "Body weight in kg")
	evaluateCmd.Flags().StringVarP(&evalEvaluatee, "evaluatee", "e", "", "Evaluatee name or ID")
	evaluateCmd.Flags().BoolVarP(&evalSave, "save", "s", false, "Save the evaluation to the evaluatee history")
	evaluateCmd.Flags().StringVarP(&testDateFlag, "date", "d", "", "Evaluation date (YYYY-MM-DD or DD/MM/YYYY), defaults to today")
	evaluateCmd.MarkFlagRequired("intensity")
	evaluateCmd.MarkFlagRequired("time")
	evaluateCmd.MarkFlagRequired("weight")
	rootCmd.AddCommand(evaluateCmd)
}
