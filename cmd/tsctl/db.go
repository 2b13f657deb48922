package main

import (
	"fmt"

	"timesketch/internal/repository/db"

	"github.com/spf13/cobra"
)

func dropDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-db",
		Short: "Drop all database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !promptBool("Drop all tables? All data will be lost") {
				fmt.Println("Aborted")
				return nil
			}

			sqlDB, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			if err := db.DropAll(sqlDB); err != nil {
				return err
			}
			fmt.Println("All tables dropped")
			return nil
		},
	}
}

func importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Deprecated, use the importer client or the web upload instead",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("The import command is deprecated.")
			fmt.Println("Please use the importer client or the web interface to upload timelines.")
			return nil
		},
	}
}
