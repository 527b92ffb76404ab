package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sarf/internal/lexicon"
	"sarf/internal/morph"
	"sarf/internal/scheme"
)

func (c *cli) schemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List, add or delete schemes",
	}
	var category string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a scheme at the end of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := morph.Normalize(strings.TrimSpace(args[0]))
			cat := scheme.DefaultCategory
			if cmd.Flags().Changed("category") {
				cat = strings.TrimSpace(category)
			}
			if err := c.store.AddScheme(name, cat); err != nil {
				return err
			}
			if err := c.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "added %s (%s)\n", name, cat)
			return nil
		},
	}
	add.Flags().StringVarP(&category, "category", "c", "", "scheme category")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the schemes in registration order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, s := range c.store.ListSchemes() {
					fmt.Fprintf(c.out, "%s\t%s\n", s.Name, s.Category)
				}
				return nil
			},
		},
		add,
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Remove a scheme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := morph.Normalize(strings.TrimSpace(args[0]))
				if !c.store.RemoveScheme(name) {
					return fmt.Errorf("remove scheme %q: %w", name, lexicon.ErrUnknownScheme)
				}
				if err := c.save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "deleted %s\n", name)
				return nil
			},
		},
	)
	return cmd
}
