package main

import (
	"fmt"

	"github.com/SeakMengs/CourseCert/internal/constant"
	"github.com/spf13/cobra"
)

func newSelfGenerationCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "self-generation <courseKey> <on|off>",
		Short: "Allow or forbid learners to request their own certificate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := parseOnOff(args[1])
			if err != nil {
				return err
			}
			if err := c.openDB(); err != nil {
				return err
			}

			course, err := c.course(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := c.repo.GenerationSetting.SetSelfGenerationEnabled(cmd.Context(), nil, course.ID, enabled); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Self generation for %s is now %s\n", course.ID, onOff(enabled))
			return nil
		},
	}
}

func newRegenerateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <courseKey> <userId>...",
		Short: "Queue certificate generation for one or more learners",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.openDB(); err != nil {
				return err
			}
			if err := c.openQueue(); err != nil {
				return err
			}

			course, err := c.course(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			certificates := c.certificates()
			for _, userID := range args[1:] {
				enqueued, err := certificates.GenerateCertificateTask(cmd.Context(), userID, course.ID, constant.CertificateSourceManual)
				if err != nil {
					return fmt.Errorf("failed to queue %s: %w", userID, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenqueued=%v\n", course.ID, userID, enqueued)
			}
			return nil
		},
	}
}
