package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func addIndexCommand() *cobra.Command {
	var name, indexName, username string
	cmd := &cobra.Command{
		Use:   "add-index",
		Short: "Register an existing datastore index as a search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if err := services.Indices.Add(ctx, name, indexName, username); err != nil {
				return err
			}
			fmt.Printf("Search index %s (%s) added\n", name, indexName)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name of the search index")
	cmd.Flags().StringVar(&indexName, "index", "", "datastore index name")
	cmd.Flags().StringVarP(&username, "username", "u", "", "owner of the search index")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func purgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <index_name>",
		Short: "Delete a search index from the datastore and all its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indexName := args[0]

			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			sketches, err := services.Indices.Usages(ctx, indexName)
			if err != nil {
				return err
			}
			if len(sketches) > 0 {
				fmt.Printf("Index %s is used by sketches: %s\n", indexName, strings.Join(sketches, ", "))
			}
			if !promptBool(fmt.Sprintf("Delete index %s and all its metadata?", indexName)) {
				fmt.Println("Aborted")
				return nil
			}

			if err := services.Indices.Purge(ctx, indexName); err != nil {
				return err
			}
			fmt.Printf("Index %s purged\n", indexName)
			return nil
		},
	}
}
