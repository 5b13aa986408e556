package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"amplify/internal/export"
)

var (
	campaignInfluencers []string
	campaignOutput      string
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Create, summarize and export campaigns",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns",
	RunE:  runCampaignsList,
}

var campaignsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a campaign from the campaign-ready view or given influencers",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignsCreate,
}

var campaignsSummaryCmd = &cobra.Command{
	Use:   "summary <campaign-id>",
	Short: "Print campaign totals",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignsSummary,
}

var campaignsExportCmd = &cobra.Command{
	Use:   "export <campaign-id>",
	Short: "Write a campaign as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaignsExport,
}

func init() {
	campaignsCreateCmd.Flags().StringSliceVarP(&campaignInfluencers, "influencer", "i", nil, "Influencer id to include (repeatable)")
	campaignsExportCmd.Flags().StringVarP(&campaignOutput, "output", "o", "", "Output file (default: stdout)")

	campaignsCmd.AddCommand(campaignsListCmd)
	campaignsCmd.AddCommand(campaignsCreateCmd)
	campaignsCmd.AddCommand(campaignsSummaryCmd)
	campaignsCmd.AddCommand(campaignsExportCmd)
}

func runCampaignsList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(_ context.Context, s *session) error {
		campaigns := s.repos.Campaigns.List()
		t := newTable(fmt.Sprintf("Campaigns (%d)", len(campaigns)), "ID", "Name", "Influencers", "Created")
		for _, c := range campaigns {
			t.add(c.ID.String(), c.Name, fmt.Sprint(len(c.Influencers)), c.CreatedAt.Format("2006-01-02"))
		}
		fmt.Fprint(cmd.OutOrStdout(), t)
		return nil
	})
}

func runCampaignsCreate(cmd *cobra.Command, args []string) error {
	ids := make([]uuid.UUID, 0, len(campaignInfluencers))
	for _, raw := range campaignInfluencers {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid influencer id %q", raw)
		}
		ids = append(ids, id)
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		c, err := s.campaigns.Create(ctx, args[0], ids)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created campaign %s (%s) with %d influencers\n", c.Name, c.ID, len(c.Influencers))
		return nil
	})
}

func runCampaignsSummary(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid campaign id %q", args[0])
	}

	return withSession(cmd, func(_ context.Context, s *session) error {
		sum, err := s.campaigns.Summary(id)
		if err != nil {
			return err
		}

		t := newTable("Campaign summary", "Metric", "Value")
		t.add("Influencers", fmt.Sprint(sum.Count))
		t.add("Total reach", export.FormatNumber(float64(sum.TotalFollowers)))
		t.add("Expected impressions", export.FormatNumber(sum.TotalImpressions))
		t.add("Expected engagement", export.FormatNumber(sum.TotalEngagement))
		t.add("Total cost", "₹"+export.FormatNumber(sum.TotalCost))
		fmt.Fprint(cmd.OutOrStdout(), t)
		return nil
	})
}

func runCampaignsExport(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid campaign id %q", args[0])
	}

	return withSession(cmd, func(_ context.Context, s *session) error {
		c, err := s.repos.Campaigns.Get(id)
		if err != nil {
			return err
		}

		out := export.Campaign(&c, s.campaigns.Lookup())
		if campaignOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		return os.WriteFile(campaignOutput, []byte(out), 0o644)
	})
}
