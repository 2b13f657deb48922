package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func searchTemplateCommand() *cobra.Command {
	var importPath, exportPath string
	cmd := &cobra.Command{
		Use:   "search-template",
		Short: "Import or export search templates as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (importPath == "") == (exportPath == "") {
				return fmt.Errorf("exactly one of --import or --export is required")
			}

			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if importPath != "" {
				f, err := os.Open(importPath)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()

				if err := services.Templates.Import(ctx, f); err != nil {
					return err
				}
				fmt.Printf("Templates imported from %s\n", importPath)
				return nil
			}

			f, err := os.Create(exportPath)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			if err := services.Templates.Export(ctx, f); err != nil {
				return err
			}
			fmt.Printf("Templates exported to %s\n", exportPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&importPath, "import", "", "YAML file to import templates from")
	cmd.Flags().StringVar(&exportPath, "export", "", "YAML file to export templates to")
	return cmd
}
