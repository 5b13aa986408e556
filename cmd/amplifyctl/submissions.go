package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"amplify/internal/intake"
	"amplify/internal/models"
)

var submissionType string

var submissionsCmd = &cobra.Command{
	Use:     "submissions",
	Aliases: []string{"subs"},
	Short:   "Review creator and agency signups",
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending and reviewed submissions",
	RunE:  runSubmissionsList,
}

var submissionsApproveCmd = &cobra.Command{
	Use:   "approve <creator|agency> <id>",
	Short: "Approve a submission; creators join the roster",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubmissionsApprove,
}

var submissionsRejectCmd = &cobra.Command{
	Use:   "reject <creator|agency> <id>",
	Short: "Reject a submission",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubmissionsReject,
}

func init() {
	submissionsListCmd.Flags().StringVar(&submissionType, "type", "", "Only creator or agency submissions")

	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsApproveCmd)
	submissionsCmd.AddCommand(submissionsRejectCmd)
}

func runSubmissionsList(cmd *cobra.Command, args []string) error {
	var kind models.SubmissionType
	if submissionType != "" {
		k, ok := models.ParseSubmissionType(submissionType)
		if !ok {
			return fmt.Errorf("unknown submission type %q", submissionType)
		}
		kind = k
	}

	return withSession(cmd, func(_ context.Context, s *session) error {
		pending, reviewed := intake.Split(s.intake.Inbox(kind))
		out := cmd.OutOrStdout()
		fmt.Fprint(out, submissionTable(fmt.Sprintf("Pending (%d)", len(pending)), pending))
		fmt.Fprint(out, submissionTable(fmt.Sprintf("Reviewed (%d)", len(reviewed)), reviewed))
		return nil
	})
}

func submissionTable(title string, subs []models.Submission) *table {
	t := newTable(title, "Type", "ID", "Name", "Email", "Submitted")
	for _, sub := range subs {
		t.add(
			string(sub.Kind()),
			sub.RecordID().String(),
			sub.DisplayName(),
			sub.Email(),
			sub.SubmittedAt().Format("2006-01-02 15:04"),
		)
	}
	return t
}

func parseSubmissionRef(args []string) (models.SubmissionType, uuid.UUID, error) {
	kind, ok := models.ParseSubmissionType(args[0])
	if !ok {
		return "", uuid.Nil, fmt.Errorf("unknown submission type %q", args[0])
	}
	id, err := uuid.Parse(args[1])
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("invalid submission id %q", args[1])
	}
	return kind, id, nil
}

func runSubmissionsApprove(cmd *cobra.Command, args []string) error {
	kind, id, err := parseSubmissionRef(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		inf, err := s.intake.Approve(ctx, kind, id)
		if err != nil {
			return err
		}
		if inf != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Approved: %s added to influencer database (%s)\n", inf.Name, inf.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Approved %s submission %s\n", kind, id)
		}
		return nil
	})
}

func runSubmissionsReject(cmd *cobra.Command, args []string) error {
	kind, id, err := parseSubmissionRef(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		if err := s.intake.Reject(ctx, kind, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s submission %s\n", kind, id)
		return nil
	})
}
