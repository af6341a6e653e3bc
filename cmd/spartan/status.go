package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spartan-system/spartan-api/internal/achievements"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the warrior profile and enemy collection",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return err
	}

	loadOut, err := repo.Load(cmd.Context(), gamestate.LoadInput{})
	if err != nil {
		return err
	}
	snapshot := loadOut.Snapshot

	w := snapshot.Warrior
	fmt.Printf("%s\n", w.Name)
	fmt.Printf("  Level %d (%d/%d XP)\n", w.Level, w.CurrentXP, w.XPToNextLevel)
	fmt.Printf("  Energy: %d/100  Streak: %d days\n", w.Energy, w.StreakDays)
	fmt.Printf("  Accuracy: %.1f%%  Questions: %d  Exams: %d  Study: %d min\n",
		snapshot.OverallAccuracy(),
		w.Stats.QuestionsResolved,
		w.Stats.ExamsCompleted,
		w.Stats.TotalStudyMinutes,
	)
	if snapshot.ExamDate != "" {
		fmt.Printf("  Exam date: %s\n", snapshot.ExamDate)
	}

	fmt.Printf("\nEnemies (%d):\n", len(snapshot.Enemies))
	for _, e := range snapshot.Enemies {
		fmt.Printf("  [%s] %s: %s", e.Room, e.Subject, e.Topic)
		if e.Stats.Attempts > 0 {
			fmt.Printf("  (%.0f%% over %d attempts)", e.Stats.Accuracy, e.Stats.Attempts)
		}
		fmt.Println()
	}

	unlocked := achievements.UnlockedList(snapshot)
	fmt.Printf("\nAchievements: %d/%d unlocked\n", len(unlocked), len(achievements.Table))
	if next, ok := achievements.NextPending(snapshot); ok {
		fmt.Printf("  Next: %s (%s)\n", next.Name, next.Description)
	}

	return nil
}
