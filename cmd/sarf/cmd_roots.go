package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"sarf/internal/morph"
)

func (c *cli) rootsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List, add or delete roots",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every root in order with its known derived words",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				for _, v := range c.store.ListRoots() {
					words := slices.Sorted(maps.Keys(v.Derivatives))
					if len(words) == 0 {
						fmt.Fprintln(c.out, v.Root)
						continue
					}
					parts := make([]string, len(words))
					for i, w := range words {
						parts[i] = fmt.Sprintf("%s(%d)", w, v.Derivatives[w])
					}
					fmt.Fprintf(c.out, "%s\t%s\n", v.Root, strings.Join(parts, " "))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <root>",
			Short: "Add a three-letter root",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.store.AddRoot(args[0]); err != nil {
					return err
				}
				if err := c.save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "added %s\n", morph.Normalize(strings.TrimSpace(args[0])))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <root>",
			Short: "Delete a root and its derived words",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.store.DeleteRoot(args[0]); err != nil {
					return err
				}
				if err := c.save(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "deleted %s\n", morph.Normalize(strings.TrimSpace(args[0])))
				return nil
			},
		},
	)
	return cmd
}
