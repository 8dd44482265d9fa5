package cmd

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

var endSessionCmd = &cobra.Command{
	Use:   "end-session",
	Short: "Compute the current interval session and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.SessionExists() {
			return fmt.Errorf("No active session")
		}

		state, err := utils.LoadSessionState()
		if err != nil {
			return fmt.Errorf("Failed to load session: %w", err)
		}

		in := state.SessionInput()
		res, err := calc.EvaluateIntervals(in)
		if err != nil {
			return describeIntervalError(err)
		}
		printIntervalSession(res)

		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(state.EvaluateeID)
		if err != nil {
			return err
		}

		// Save to database.
		if err := saveIntervalSession(st, ev, state.SessionID, state.StartTime, in, res); err != nil {
			return err
		}

		// Clear temp file.
		if err := utils.ClearSessionState(); err != nil {
			return fmt.Errorf("Failed to clear session: %w", err)
		}

		fmt.Printf("✅ Session saved successfully (%s)\n", time.Since(state.StartTime).Round(time.Second))
		return nil
	},
}

var showSessionCmd = &cobra.Command{
	Use:   "show-session",
	Short: "Show the current interval session with its running totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.SessionExists() {
			return fmt.Errorf("No active session")
		}

		state, err := utils.LoadSessionState()
		if err != nil {
			return fmt.Errorf("Failed to load session: %w", err)
		}

		printMetric("Evaluatee", state.EvaluateeName)
		printMetric("Started", utils.FormatSaoPaulo(state.StartTime))
		printMetric("Cooper distance", utils.FormatUnit(state.CooperDistance, 0, "m"))
		printMetric("Body weight", utils.FormatUnit(state.BodyWeight, 1, "kg"))
		fmt.Println()

		if len(state.Intervals) == 0 {
			fmt.Println("No intervals yet. Use add-interval to add one.")
			return nil
		}

		res, err := calc.EvaluateIntervals(state.SessionInput())
		if err != nil {
			return describeIntervalError(err)
		}
		printIntervalSession(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endSessionCmd)
	rootCmd.AddCommand(showSessionCmd)
}
