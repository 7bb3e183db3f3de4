package cli

import (
	"github.com/spf13/cobra"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/session"
)

func newSermonsCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sermons",
		Short: "Browse published sermons",
	}
	cmd.AddCommand(newSermonsListCmd(state))
	return cmd
}

func newSermonsListCmd(state *rootState) *cobra.Command {
	var (
		page     int
		limit    int
		search   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sermons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := session.New(state.client(), newProfileStorage(state.profile), session.ScopeMember)
			store.Initialize(cmd.Context())

			result, err := store.Client().Sermons(cmd.Context(), backend.SermonParams{
				Page:     page,
				Limit:    limit,
				Search:   search,
				Category: category,
			})
			if err != nil {
				return cliError(err)
			}

			if state.output == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}
			rows := make([][]string, 0, len(result.Sermons))
			for _, s := range result.Sermons {
				rows = append(rows, []string{s.Title, s.Speaker, s.Category, s.PreachedAt.Format("2006-01-02")})
			}
			return printTable(cmd.OutOrStdout(), []string{"TITLE", "SPEAKER", "CATEGORY", "DATE"}, rows)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Results per page (max 100)")
	cmd.Flags().StringVar(&search, "search", "", "Search by title or speaker")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category ID")

	return cmd
}
