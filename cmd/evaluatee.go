package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/misterclayt0n/cooperpro/internal/storage"
	"github.com/misterclayt0n/cooperpro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	evaluateeName      string
	evaluateeEmail     string
	evaluateeGender    string
	evaluateeBirthDate string
	evaluateeNotes     string
)

// evaluateeFromFlags builds an evaluatee from the raw flag values, checking
// gender and birth date.
func evaluateeFromFlags(name, email, gender, birthDate, notes string) (*models.Evaluatee, error) {
	ev := &models.Evaluatee{
		Name:  strings.TrimSpace(name),
		Email: email,
		Notes: notes,
	}
	if ev.Name == "" {
		return nil, fmt.Errorf("evaluatee name is required")
	}

	if gender != "" {
		g, err := calc.ParseGender(gender)
		if err != nil {
			return nil, err
		}
		ev.Gender = string(g)
	}

	if birthDate != "" {
		t, err := utils.ParseDate(birthDate)
		if err != nil {
			return nil, err
		}
		if t.After(time.Now()) {
			return nil, fmt.Errorf("birth date %s is in the future", birthDate)
		}
		ev.BirthDate = &t
	}
	return ev, nil
}

var addEvaluateeCmd = &cobra.Command{
	Use:   "add-evaluatee",
	Short: "Register a new evaluatee",
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := evaluateeFromFlags(evaluateeName, evaluateeEmail, evaluateeGender, evaluateeBirthDate, evaluateeNotes)
		if err != nil {
			return err
		}

		st := storage.NewStorage()
		defer st.Close()

		exists, err := st.EvaluateeExists(ev.Name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("Evaluatee '%s' already exists", ev.Name)
		}

		if err := st.CreateEvaluatee(ev); err != nil {
			return fmt.Errorf("Failed to create evaluatee: %w", err)
		}

		fmt.Printf("✅ Registered evaluatee: %s\n", ev.Name)
		return nil
	},
}

var importEvaluateesCmd = &cobra.Command{
	Use:   "import-evaluatees [file]",
	Short: "Import evaluatees from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var importData models.EvaluateeImport
		if err := toml.Unmarshal(data, &importData); err != nil {
			return fmt.Errorf("invalid TOML format: %w", err)
		}

		st := storage.NewStorage()
		defer st.Close()

		imported := 0
		for _, evTOML := range importData.Evaluatees {
			ev, err := evaluateeFromFlags(evTOML.Name, evTOML.Email, evTOML.Gender, evTOML.BirthDate, evTOML.Notes)
			if err != nil {
				return fmt.Errorf("invalid evaluatee %q: %w", evTOML.Name, err)
			}

			exists, err := st.EvaluateeExists(ev.Name)
			if err != nil {
				return err
			}
			if exists {
				fmt.Printf("Skipping '%s': already registered\n", ev.Name)
				continue
			}

			if err := st.CreateEvaluatee(ev); err != nil {
				return fmt.Errorf("failed to create evaluatee %s: %w", ev.Name, err)
			}
			imported++
		}

		fmt.Printf("✅ Imported %d evaluatees\n", imported)
		return nil
	},
}

var listEvaluateesCmd = &cobra.Command{
	Use:   "list-evaluatees",
	Short: "List all registered evaluatees",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()
		defer st.Close()

		evaluatees, err := st.ListEvaluatees()
		if err != nil {
			return fmt.Errorf("failed to list evaluatees: %w", err)
		}
		if len(evaluatees) == 0 {
			fmt.Println("No evaluatees registered yet. Use add-evaluatee to create one.")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%-30s %-8s %-5s %s\n", bold("Name"), bold("Gender"), bold("Age"), bold("ID"))
		for _, ev := range evaluatees {
			age := "-"
			if ev.BirthDate != nil {
				if years, err := calc.Age(*ev.BirthDate); err == nil {
					age = fmt.Sprint(years)
				}
			}
			gender := ev.Gender
			if gender == "" {
				gender = "-"
			}
			fmt.Printf("%-30s %-8s %-5s %s\n", ev.Name, gender, age, ev.ID)
		}
		return nil
	},
}

var showEvaluateeCmd = &cobra.Command{
	Use:   "show-evaluatee [name-or-id]",
	Short: "Show an evaluatee profile and their latest Cooper test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(args[0])
		if err != nil {
			return err
		}

		printBoxedHeader(strings.ToUpper(ev.Name))
		printMetric("ID", ev.ID)
		if ev.Email != "" {
			printMetric("Email", ev.Email)
		}
		if ev.Gender != "" {
			printMetric("Gender", ev.Gender)
		}
		if ev.BirthDate != nil {
			age, _ := calc.Age(*ev.BirthDate)
			printMetric("Birth date", fmt.Sprintf("%s (%d years)", ev.BirthDate.Format("02/01/2006"), age))
		}
		if ev.Notes != "" {
			printMetric("Notes", ev.Notes)
		}
		printMetric("Registered", utils.FormatSaoPaulo(ev.CreatedAt))

		latest, err := st.LatestCooperTest(ev.ID)
		if err == nil {
			fmt.Println()
			printMetric("Latest Cooper test", utils.FormatDate(latest.TestDate))
			printMetric("Distance", utils.FormatUnit(latest.CooperTestDistance, 0, "m"))
			printMetric("VO2max", utils.FormatUnit(latest.VO2Max, 2, "ml/kg/min"))
			printMetric("Classification", classificationColor(latest.Classification))
		}
		return nil
	},
}

var updateEvaluateeCmd = &cobra.Command{
	Use:   "update-evaluatee [name-or-id]",
	Short: "Update the fields given as flags on an existing evaluatee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		name, email, gender, notes := ev.Name, ev.Email, ev.Gender, ev.Notes
		birthDate := ""
		if ev.BirthDate != nil {
			birthDate = ev.BirthDate.Format("2006-01-02")
		}
		if flags.Changed("name") {
			name = evaluateeName
		}
		if flags.Changed("email") {
			email = evaluateeEmail
		}
		if flags.Changed("gender") {
			gender = evaluateeGender
		}
		if flags.Changed("birth-date") {
			birthDate = evaluateeBirthDate
		}
		if flags.Changed("notes") {
			notes = evaluateeNotes
		}

		updated, err := evaluateeFromFlags(name, email, gender, birthDate, notes)
		if err != nil {
			return err
		}
		updated.ID = ev.ID

		if err := st.UpdateEvaluatee(updated); err != nil {
			return fmt.Errorf("Failed to update evaluatee: %w", err)
		}

		fmt.Printf("✅ Evaluatee '%s' updated successfully\n", updated.Name)
		return nil
	},
}

var deleteEvaluateeCmd = &cobra.Command{
	Use:   "delete-evaluatee [name-or-id]",
	Short: "Delete an evaluatee and every test recorded for them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := storage.NewStorage()
		defer st.Close()

		ev, err := st.GetEvaluatee(args[0])
		if err != nil {
			return err
		}

		if err := st.DeleteEvaluatee(ev.ID); err != nil {
			return fmt.Errorf("Failed to delete evaluatee: %w", err)
		}

		fmt.Printf("✅ Evaluatee '%s' deleted successfully\n", ev.Name)
		return nil
	},
}

func addEvaluateeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&evaluateeName, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&evaluateeEmail, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&evaluateeGender, "gender", "g", "", "Gender (male/female)")
	cmd.Flags().StringVarP(&evaluateeBirthDate, "birth-date", "b", "", "Birth date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&evaluateeNotes, "notes", "", "Free text notes")
}

func init() {
	addEvaluateeFlags(addEvaluateeCmd)
	addEvaluateeCmd.MarkFlagRequired("name")
	addEvaluateeFlags(updateEvaluateeCmd)

	rootCmd.AddCommand(addEvaluateeCmd)
	rootCmd.AddCommand(importEvaluateesCmd)
	rootCmd.AddCommand(listEvaluateesCmd)
	rootCmd.AddCommand(showEvaluateeCmd)
	rootCmd.AddCommand(updateEvaluateeCmd)
	rootCmd.AddCommand(deleteEvaluateeCmd)
}
