package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cooperAge        int
	cooperGender     string
	cooperEvaluatee  string
	cooperKilometers bool
	cooperSave       bool
	testDateFlag     string
)

var cooperCmd = &cobra.Command{
	Use:   "cooper [distance]",
	Short: "Estimate VO2max and the fitness class from a 12-minute run distance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("Invalid distance %q: must be a number", args[0])
		}
		if cooperKilometers {
			distance *= 1000
		}

		testDate, err := parseTestDate(testDateFlag)
		if err != nil {
			return err
		}

		if cooperSave && cooperEvaluatee == "" {
			return fmt.Errorf("--save needs --evaluatee")
		}

		var st *storage.Storage
		var ev *models.Evaluatee
		age, gender := cooperAge, calc.Gender("")
		if cooperEvaluatee != "" {
			st = storage.NewStorage()
			defer st.Close()

			ev, err = st.GetEvaluatee(cooperEvaluatee)
			if err != nil {
				return err
			}
			age, gender, err = profileAgeAndGender(ev, testDate)
			if err != nil {
				return err
			}
		} else {
			if !cmd.Flags().Changed("age") || cooperGender == "" {
				return fmt.Errorf("either --evaluatee or both --age and --gender are required")
			}
			gender, err = calc.ParseGender(cooperGender)
			if err != nil {
				return err
			}
		}

		res := calc.EvaluateCooper(distance, age, gender)
		printCooperResult(res, age, gender)
		if !res.IsValid {
			return fmt.Errorf("%w: %s", calc.ErrValidation, res.ValidationMessage)
		}

		if cooperKilometers {
			printMetric("VO2max (km formula)", utils.FormatUnit(calc.VO2MaxFromKilometers(res.DistanceKilometers), 2, "ml/kg/min"))
		}
		fmt.Println()

		if !cooperSave {
			return nil
		}

		ct := &models.CooperTest{
			EvaluateeID:        ev.ID,
			TestDate:           testDate,
			CooperTestDistance: res.DistanceMeters,
			AgeYears:           age,
			Gender:             string(gender),
			VO2Max:             res.VO2Max,
			Classification:     res.Classification,
		}
		if err := st.SaveCooperTest(ct); err != nil {
			return fmt.Errorf("Failed to save cooper test: %w", err)
		}

		log.WithFields(log.Fields{"evaluatee": ev.ID, "test": ct.ID}).Info("cooper test recorded")
		fmt.Printf("✅ Cooper test saved for %s\n", ev.Name)
		return nil
	},
}

// profileAgeAndGender reads the classification inputs from the evaluatee
// profile, as of the test date.
func profileAgeAndGender(ev *models.Evaluatee, testDate time.Time) (int, calc.Gender, error) {
	if ev.BirthDate == nil {
		return 0, "", fmt.Errorf("%w: evaluatee %s has no birth date, set it with update-evaluatee", calc.ErrValidation, ev.Name)
	}
	if ev.Gender == "" {
		return 0, "", fmt.Errorf("%w: evaluatee %s has no gender, set it with update-evaluatee", calc.ErrValidation, ev.Name)
	}

	age, err := calc.AgeAt(*ev.BirthDate, testDate)
	if err != nil {
		return 0, "", err
	}
	gender, err := calc.ParseGender(ev.Gender)
	if err != nil {
		return 0, "", err
	}
	return age, gender, nil
}

// parseTestDate defaults to now.
func parseTestDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	// Noon keeps the stored UTC timestamp on the same calendar day.
	return t.Add(12 * time.Hour).UTC(), nil
}

func printCooperResult(res calc.CooperTestResult, age int, gender calc.Gender) {
	printBoxedHeader("COOPER TEST")
	printMetric("Distance", fmt.Sprintf("%s (%s)",
		utils.FormatUnit(res.DistanceMeters, 0, "m"),
		utils.FormatUnit(res.DistanceKilometers, 2, "km")))
	printMetric("Profile", fmt.Sprintf("%s, %d years (band %s)", gender, age, calc.BandLabel(age)))
	if !res.IsValid {
		printMetric("Classification", classificationColor(res.Classification))
		printMetric("Reason", res.ValidationMessage)
		return
	}
	printMetric("VO2max", utils.FormatUnit(res.VO2Max, 2, "ml/kg/min"))
	printMetric("Classification", classificationColor(res.Classification))
}

// classificationColor paints a class label from green (best) to red.
func classificationColor(class string) string {
	var c *color.Color
	switch class {
	case calc.ClassExcellent:
		c = color.New(color.FgGreen, color.Bold)
	case calc.ClassGood:
		c = color.New(color.FgGreen)
	case calc.ClassFair:
		c = color.New(color.FgYellow)
	case calc.ClassPoor:
		c = color.New(color.FgRed)
	default:
		c = color.New(color.FgRed, color.Bold)
	}
	return c.Sprint(class)
}

func init() {
	cooperCmd.Flags().IntVarP(&cooperAge, "age", "a", 0, "Age in years")
	cooperCmd.Flags().StringVarP(&cooperGender, "gender", "g", "", "Gender (male/female)")
	cooperCmd.Flags().StringVarP(&cooperEvaluatee, "evaluatee", "e", "", "Evaluatee name or ID; age and gender come from the profile")
	cooperCmd.Flags().BoolVarP(&cooperKilometers, "km", "k", false, "Distance is given in kilometers")
	cooperCmd.Flags().BoolVarP(&cooperSave, "save", "s", false, "Save the test to the evaluatee history")
	cooperCmd.Flags().StringVarP(&testDateFlag, "date", "d", "", "Test date (YYYY-MM-DD or DD/MM/YYYY), defaults to today")
	rootCmd.AddCommand(cooperCmd)
}
