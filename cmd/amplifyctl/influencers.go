package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"amplify/internal/export"
	"amplify/internal/filter"
	"amplify/internal/metrics"
	"amplify/internal/models"
)

var (
	listView     string
	listSearch   string
	listStatus   string
	listPlatform string
	exportOutput string
)

var influencersCmd = &cobra.Command{
	Use:     "influencers",
	Aliases: []string{"inf"},
	Short:   "List, export and import the roster",
}

var influencersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the roster as a table",
	RunE:  runInfluencersList,
}

var influencersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a roster view as CSV",
	RunE:  runInfluencersExport,
}

var influencersImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Add every row of a CSV file to the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfluencersImport,
}

func init() {
	for _, c := range []*cobra.Command{influencersListCmd, influencersExportCmd} {
		c.Flags().StringVar(&listView, "view", "all", "Roster view: all, shortlist or campaign-ready")
	}
	influencersListCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Match name, niche or email")
	influencersListCmd.Flags().StringVar(&listStatus, "status", "", "Only this status")
	influencersListCmd.Flags().StringVar(&listPlatform, "platform", "", "Only this platform")
	influencersExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	influencersCmd.AddCommand(influencersListCmd)
	influencersCmd.AddCommand(influencersExportCmd)
	influencersCmd.AddCommand(influencersImportCmd)
}

func rosterView(all []models.Influencer, view string) ([]models.Influencer, error) {
	switch view {
	case "", "all":
		return all, nil
	case "shortlist":
		return filter.Shortlisted(all), nil
	case "campaign-ready":
		return filter.CampaignReady(all), nil
	}
	return nil, fmt.Errorf("unknown view %q: want all, shortlist or campaign-ready", view)
}

func runInfluencersList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(_ context.Context, s *session) error {
		records, err := rosterView(s.repos.Influencers.List(), listView)
		if err != nil {
			return err
		}

		f := models.DefaultFilters()
		f.Search = listSearch
		f.Status = listStatus
		if listPlatform != "" {
			p, usedDefault := models.ParsePlatform(listPlatform)
			if usedDefault {
				return fmt.Errorf("unknown platform %q", listPlatform)
			}
			f.Platforms = []models.Platform{p}
		}
		records = filter.Apply(records, f)

		t := newTable(fmt.Sprintf("Influencers (%d)", len(records)),
			"ID", "Name", "Platform", "Niche", "Followers", "Engagement", "Status")
		for _, inf := range records {
			t.add(
				inf.ID.String()[:8],
				inf.Name,
				string(inf.Platform),
				string(inf.Niche),
				export.FormatNumber(float64(inf.Followers)),
				strconv.FormatFloat(inf.EngagementRate, 'f', -1, 64)+"%",
				string(inf.Status),
			)
		}
		fmt.Fprint(cmd.OutOrStdout(), t)
		return nil
	})
}

func runInfluencersExport(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(_ context.Context, s *session) error {
		records, err := rosterView(s.repos.Influencers.List(), listView)
		if err != nil {
			return err
		}

		out := export.Influencers(records)
		if exportOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d influencers to %s\n", len(records), exportOutput)
		return nil
	})
}

func runInfluencersImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := export.ParseInfluencers(f)
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		added, err := s.repos.Influencers.AddMany(ctx, records)
		if err != nil {
			return err
		}
		metrics.RecordImport("influencers", len(added))
		s.notifier.Imported(len(added))
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d influencers\n", len(added))
		return nil
	})
}
