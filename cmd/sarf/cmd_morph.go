package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <root>",
		Short: "Apply every scheme to a root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.store.GenerateAll(args[0])
			if err != nil {
				return err
			}
			for _, d := range out {
				fmt.Fprintf(c.out, "%s\t%s\n", d.Scheme, d.Word)
			}
			return nil
		},
	}
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <word> <root>",
		Short: "Check whether a scheme turns root into word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, name := c.store.Verify(args[0], args[1])
			if !ok {
				fmt.Fprintln(c.out, "no scheme matches")
				return nil
			}
			fmt.Fprintf(c.out, "valid: %s\n", name)
			return nil
		},
	}
}

func (c *cli) identifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <word>",
		Short: "Find the known roots and schemes behind a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := c.store.Identify(args[0])
			if len(matches) == 0 {
				fmt.Fprintln(c.out, "no root found")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(c.out, "%s\t%s\n", m.Root, m.Scheme)
			}
			return nil
		},
	}
}
