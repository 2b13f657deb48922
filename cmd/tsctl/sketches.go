package main

import (
	"fmt"

	"timesketch/internal/models"

	"github.com/spf13/cobra"
)

func listSketchesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-sketches",
		Short: "List all sketches",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			sketches, err := services.Sketches.List(ctx)
			if err != nil {
				return err
			}
			for _, s := range sketches {
				suffix := ""
				if s.Status == models.StatusArchived {
					suffix = " (archived)"
				}
				fmt.Printf("%d %s%s\n", s.ID, s.Name, suffix)
			}
			return nil
		},
	}
}
