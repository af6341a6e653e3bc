package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all persisted data and reinitialize defaults",
	Long:  `Reset irreversibly deletes the warrior profile, enemies, achievements and preferences, then reseeds the first-run dataset.`,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the irreversible reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return fmt.Errorf("reset is irreversible; re-run with --yes to confirm")
	}

	repo, err := newRepository()
	if err != nil {
		return err
	}

	resetOut, err := repo.Reset(cmd.Context(), gamestate.ResetInput{})
	if err != nil {
		return err
	}

	fmt.Printf("Reset complete: %d seed enemies, level %d warrior\n",
		len(resetOut.Snapshot.Enemies),
		resetOut.Snapshot.Warrior.Level,
	)
	return nil
}
