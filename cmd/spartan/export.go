package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

var exportOutputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full game state as JSON",
	Long:  `Export writes a versioned document with the snapshot and preferences, suitable for backup or transfer.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	repo, err := newRepository()
	if err != nil {
		return err
	}

	exportOut, err := repo.Export(cmd.Context(), gamestate.ExportInput{})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(exportOut.Document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')

	if exportOutputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(exportOutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", exportOutputPath)
	return nil
}
