package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSwitchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Manage waffle switches",
	}

	var note string
	set := &cobra.Command{
		Use:     "set <name> <on|off>",
		Short:   "Turn a waffle switch on or off",
		Example: "  certctl switch set certificates.auto_certificate_generation on",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := parseOnOff(args[1])
			if err != nil {
				return err
			}
			if err := c.openDB(); err != nil {
				return err
			}

			if err := c.repo.WaffleSwitch.Set(cmd.Context(), nil, args[0], active, note); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], onOff(active))
			return nil
		},
	}
	set.Flags().StringVar(&note, "note", "", "why the switch was changed")

	list := &cobra.Command{
		Use:   "list",
		Short: "List waffle switches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.openDB(); err != nil {
				return err
			}

			switches, err := c.repo.WaffleSwitch.List(cmd.Context(), nil)
			if err != nil {
				return err
			}

			for _, s := range switches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Name, onOff(s.Active), s.Note)
			}
			return nil
		},
	}

	cmd.AddCommand(set, list)
	return cmd
}

func onOff(active bool) string {
	if active {
		return "on"
	}
	return "off"
}
