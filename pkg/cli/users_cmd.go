package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/listctl"
)

func newUsersCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage registered member accounts (admin)",
	}

	cmd.AddCommand(newUsersListCmd(state))
	cmd.AddCommand(newUsersPendingCmd(state))
	cmd.AddCommand(newUsersGetCmd(state))
	cmd.AddCommand(newUserActionCmd(state, listctl.ActionApprove, "approve", "Approve a pending account"))
	cmd.AddCommand(newUserActionCmd(state, listctl.ActionReject, "reject", "Reject a pending account"))
	cmd.AddCommand(newUserActionCmd(state, listctl.ActionRevoke, "revoke", "Revoke access from an approved account"))
	cmd.AddCommand(newBulkCmd(state, listctl.ActionBulkApprove, "bulk-approve", "Approve several accounts in one request"))
	cmd.AddCommand(newBulkCmd(state, listctl.ActionBulkReject, "bulk-reject", "Reject several accounts in one request"))

	return cmd
}

// adminClient initializes the admin session and returns its token-bound
// gateway client.
func adminClient(ctx context.Context, state *rootState) (*backend.Client, error) {
	state.admin = true
	store := state.sessionStore()
	store.Initialize(ctx)
	if _, ok := store.Current(); !ok {
		return nil, errors.New("not signed in as an admin; run `wfcctl login --admin` first")
	}
	return store.Client(), nil
}

func newUsersListCmd(state *rootState) *cobra.Command {
	var (
		page      int
		limit     int
		search    string
		status    string
		branch    string
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := adminClient(cmd.Context(), state)
			if err != nil {
				return err
			}

			query := listctl.DefaultQuery().
				WithSearch(search).
				WithStatus(status).
				WithBranch(branch).
				WithSort(sortBy, sortOrder).
				WithPage(page)
			query.PageSize = limit

			result, err := listctl.NewController().Users(cmd.Context(), client, query)
			if err != nil {
				return cliError(err)
			}

			if state.output == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}
			rows := make([][]string, 0, len(result.Users))
			for _, u := range result.Users {
				rows = append(rows, []string{u.ID, u.DisplayName(), u.Email, string(u.Status), u.Branch})
			}
			if err := printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "STATUS", "BRANCH"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d total)\n",
				result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Results per page (max 100)")
	cmd.Flags().StringVar(&search, "search", "", "Search by name or email")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, approved, revoked)")
	cmd.Flags().StringVar(&branch, "branch", "", "Filter by branch ID")
	cmd.Flags().StringVar(&sortBy, "sort-by", "created_at", "Sort field (created_at, full_name, email, status)")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "desc", "Sort order (asc, desc)")

	return cmd
}

func newUsersPendingCmd(state *rootState) *cobra.Command {
	var (
		page  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List accounts awaiting approval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := adminClient(cmd.Context(), state)
			if err != nil {
				return err
			}

			result, err := listctl.NewController().Pending(cmd.Context(), client, page, limit)
			if err != nil {
				return cliError(err)
			}

			if state.output == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}
			rows := make([][]string, 0, len(result.Users))
			for _, u := range result.Users {
				rows = append(rows, []string{u.ID, u.DisplayName(), u.Email, u.Branch})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "BRANCH"}, rows)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Results per page (max 100)")

	return cmd
}

func newUsersGetCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient(cmd.Context(), state)
			if err != nil {
				return err
			}

			user, err := listctl.NewController().User(cmd.Context(), client, args[0])
			if err != nil {
				return cliError(err)
			}

			if state.output == "json" {
				return printJSON(cmd.OutOrStdout(), user)
			}
			return printTable(cmd.OutOrStdout(),
				[]string{"ID", "NAME", "EMAIL", "STATUS", "ROLE", "BRANCH"},
				[][]string{{user.ID, user.DisplayName(), user.Email, string(user.Status), string(user.Role), user.Branch}},
			)
		},
	}
}

func newUserActionCmd(state *rootState, action listctl.ActionType, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient(cmd.Context(), state)
			if err != nil {
				return err
			}

			ctl := listctl.NewController()
			_, notice, err := ctl.Execute(cmd.Context(), client, listctl.PendingAction{
				Type:      action,
				TargetIDs: []string{args[0]},
			}, nil)
			if err != nil {
				return cliError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), notice)
			return nil
		},
	}
}

func newBulkCmd(state *rootState, action listctl.ActionType, use, short string) *cobra.Command {
	var ids []string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: fmt.Sprintf(`  wfcctl users %s --ids u1,u2,u3`, use),
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := adminClient(cmd.Context(), state)
			if err != nil {
				return err
			}

			sel := listctl.NewSelection(ids...)
			_, notice, err := listctl.NewController().Execute(cmd.Context(), client, listctl.PendingAction{
				Type:      action,
				TargetIDs: sel.IDs(),
			}, sel)
			if err != nil {
				return cliError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), notice)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Comma-separated user IDs")
	_ = cmd.MarkFlagRequired("ids")

	return cmd
}

// cliError rewrites gateway failures into the normalized user-facing
// message.
func cliError(err error) error {
	if err == nil {
		return nil
	}
	msg := backend.Message(err)
	if msg == backend.GenericErrorMessage {
		return err
	}
	return errors.New(strings.TrimSpace(msg))
}
