package cmd

import (
	"fmt"

	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	newIntervalDistance  float64
	newIntervalIntensity float64
	newIntervalTime      float64
	newIntervalReps      int
	newIntervalRest      float64
)

var addIntervalCmd = &cobra.Command{
	Use:   "add-interval",
	Short: "Add an interval to the current session, by intensity or by time",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.SessionExists() {
			return fmt.Errorf("No active session")
		}

		flags := cmd.Flags()
		byIntensity, byTime := flags.Changed("intensity"), flags.Changed("time")
		if byIntensity == byTime {
			return fmt.Errorf("Give exactly one of --intensity or --time")
		}

		in := calc.IntervalInput{
			DistanceMeters: newIntervalDistance,
			Repetitions:    newIntervalReps,
			RestSeconds:    newIntervalRest,
		}
		if byIntensity {
			in.Mode = calc.ModeDistanceIntensity
			in.IntensityPercentage = calc.Float(newIntervalIntensity)
		} else {
			in.Mode = calc.ModeDistanceTime
			in.TimeMinutes = calc.Float(newIntervalTime)
		}
		if err := in.Validate(); err != nil {
			return err
		}

		state, err := utils.LoadSessionState()
		if err != nil {
			return fmt.Errorf("Failed to load session state: %w", err)
		}

		// Evaluate with the session parameters so a bad interval is caught now
		// rather than at end-session.
		preview := state.SessionInput()
		preview.Intervals = append(preview.Intervals, in)
		res, err := calc.EvaluateIntervals(preview)
		if err != nil {
			return describeIntervalError(err)
		}

		state.Intervals = append(state.Intervals, in)
		if err := utils.SaveSessionState(state); err != nil {
			return fmt.Errorf("Failed to save session state: %w", err)
		}

		added := res.Intervals[len(res.Intervals)-1]
		fmt.Printf("✅ Added interval #%d: %s, %s\n",
			len(state.Intervals),
			describeInterval(in),
			utils.FormatUnit(added.Kcal, 2, "kcal"))
		return nil
	},
}

func init() {
	addIntervalCmd.Flags().Float64VarP(&newIntervalDistance, "distance", "m", 0, "Distance of one repetition in meters")
	addIntervalCmd.Flags().Float64VarP(&newIntervalIntensity, "intensity", "i", 0, "Intensity as a percentage of VO2max")
	addIntervalCmd.Flags().Float64VarP(&newIntervalTime, "time", "t", 0, "Time of one repetition in minutes")
	addIntervalCmd.Flags().IntVarP(&newIntervalReps, "reps", "r", 1, "Number of repetitions")
	addIntervalCmd.Flags().Float64Var(&newIntervalRest, "rest", 0, "Rest after each repetition in seconds")
	addIntervalCmd.MarkFlagRequired("distance")
	rootCmd.AddCommand(addIntervalCmd)
}
