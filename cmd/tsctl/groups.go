package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addGroupCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add-group",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if err := services.Groups.Create(ctx, name); err != nil {
				return err
			}
			fmt.Printf("Group %s created\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "name of the group")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func listGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-groups",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			groups, err := services.Groups.List(ctx)
			if err != nil {
				return err
			}
			for _, g := range groups {
				fmt.Println(g.Name)
			}
			return nil
		},
	}
}

func manageGroupCommand() *cobra.Command {
	var addUser, removeUser string
	var expand bool
	cmd := &cobra.Command{
		Use:   "manage-group <group>",
		Short: "Add or remove group members, or list them with --expand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := args[0]

			services, sqlDB, err := newServices()
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			ctx, cancel := cmdContext()
			defer cancel()

			if addUser != "" {
				if err := services.Groups.AddMember(ctx, group, addUser); err != nil {
					return err
				}
				fmt.Printf("Added %s to group %s\n", addUser, group)
			}
			if removeUser != "" {
				if err := services.Groups.RemoveMember(ctx, group, removeUser); err != nil {
					return err
				}
				fmt.Printf("Removed %s from group %s\n", removeUser, group)
			}

			if expand || (addUser == "" && removeUser == "") {
				members, err := services.Groups.Members(ctx, group)
				if err != nil {
					return err
				}
				fmt.Printf("Members of %s:\n", group)
				for _, m := range members {
					fmt.Printf("  %s\n", m.Username)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addUser, "add", "", "username to add to the group")
	cmd.Flags().StringVar(&removeUser, "remove", "", "username to remove from the group")
	cmd.Flags().BoolVar(&expand, "expand", false, "list group members")
	return cmd
}
