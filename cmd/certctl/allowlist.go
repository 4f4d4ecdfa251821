package main

import (
	"fmt"

	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/signal"
	"github.com/spf13/cobra"
)

func newAllowlistCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowlist",
		Short: "Manage the certificate allowlist",
	}

	var notes string
	add := &cobra.Command{
		Use:   "add <userId> <courseKey>",
		Short: "Allowlist a learner and queue their certificate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.openDB(); err != nil {
				return err
			}
			if err := c.openQueue(); err != nil {
				return err
			}

			userID := args[0]
			course, err := c.course(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			if _, err := c.repo.User.GetById(cmd.Context(), nil, userID); err != nil {
				return fmt.Errorf("user %s: %w", userID, err)
			}

			if _, err := c.repo.Allowlist.Upsert(cmd.Context(), nil, userID, course.ID, true, notes); err != nil {
				return err
			}

			if err := queue.PublishSignal(c.publisher, signal.AllowlistRowSavedEvent{UserID: userID, CourseID: course.ID}); err != nil {
				return fmt.Errorf("allowlist entry saved but the signal could not be published: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Allowlisted %s for %s\n", userID, course.ID)
			return nil
		},
	}
	add.Flags().StringVar(&notes, "notes", "", "reason for the exception")

	remove := &cobra.Command{
		Use:   "remove <userId> <courseKey>",
		Short: "Remove a learner from the allowlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.openDB(); err != nil {
				return err
			}

			course, err := c.course(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			deleted, err := c.repo.Allowlist.Delete(cmd.Context(), nil, args[0], course.ID)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("%s is not on the allowlist for %s", args[0], course.ID)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the allowlist for %s\n", args[0], course.ID)
			return nil
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}
