package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sessionEvaluatee string
	sessionDistance  float64
	sessionWeight    float64
)

var startCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Start building an interval training session for an evaluatee",
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.SessionExists() {
			return fmt.Errorf("A session is already active, finish it with end-session or cancel-session")
		}

		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(sessionEvaluatee)
		if err != nil {
			return err
		}

		distance := sessionDistance
		if !cmd.Flags().Changed("cooper-distance") {
			distance, err = latestCooperDistance(st, ev)
			if err != nil {
				return err
			}
		}
		if ok, msg := calc.ValidateDistance(distance); !ok {
			return fmt.Errorf("%w: cooper distance: %s", calc.ErrValidation, msg)
		}
		if sessionWeight <= 0 {
			return fmt.Errorf("%w: body weight must be positive", calc.ErrValidation)
		}

		state := &models.IntervalDraft{
			SessionID:      uuid.New().String(),
			EvaluateeID:    ev.ID,
			EvaluateeName:  ev.Name,
			CooperDistance: distance,
			BodyWeight:     sessionWeight,
			StartTime:      time.Now().UTC(),
		}
		if err := utils.SaveSessionState(state); err != nil {
			return fmt.Errorf("Failed to start session: %w", err)
		}

		fmt.Printf("✅ Started session %s for %s\n", state.SessionID, ev.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&sessionEvaluatee, "evaluatee", "e", "", "Evaluatee name or ID")
	startCmd.Flags().Float64VarP(&sessionDistance, "cooper-distance", "c", 0, "Cooper test distance in meters, defaults to the latest test")
	startCmd.Flags().Float64VarP(&sessionWeight, "weight", "w", 0, "Body weight in kg")
	startCmd.MarkFlagRequired("evaluatee")
	startCmd.MarkFlagRequired("weight")
}
