package listctl

import (
	"context"
	"fmt"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/domain"
)

// Controller coordinates the admin user list: fetching pages for a query
// descriptor and dispatching the state-changing operations with in-flight
// deduplication. One Controller serves the whole process; the session-bound
// gateway client is passed per call because sessions are per-request.
type Controller struct {
	inflight *inflightRegistry
}

func NewController() *Controller {
	return &Controller{inflight: newInflightRegistry()}
}

// Users fetches the page described by the query.
func (c *Controller) Users(ctx context.Context, client *backend.Client, q ListQuery) (backend.UserPage, error) {
	return client.ListUsers(ctx, q.Params())
}

// Pending fetches a page of accounts awaiting approval.
func (c *Controller) Pending(ctx context.Context, client *backend.Client, page, limit int) (backend.UserPage, error) {
	return client.PendingUsers(ctx, page, limit)
}

// User fetches a single account.
func (c *Controller) User(ctx context.Context, client *backend.Client, id string) (*domain.User, error) {
	return client.GetUser(ctx, id)
}

// Approve grants access to one account. A second approve for the same
// account while the first is still resolving returns ErrActionInFlight.
func (c *Controller) Approve(ctx context.Context, client *backend.Client, id string) error {
	return c.single(ActionApprove, id, func() error {
		return client.ApproveUser(ctx, id)
	})
}

// Reject rejects one pending account.
func (c *Controller) Reject(ctx context.Context, client *backend.Client, id string) error {
	return c.single(ActionReject, id, func() error {
		return client.RejectUser(ctx, id)
	})
}

// Revoke withdraws access from one approved account.
func (c *Controller) Revoke(ctx context.Context, client *backend.Client, id string) error {
	return c.single(ActionRevoke, id, func() error {
		return client.RevokeUser(ctx, id)
	})
}

// BulkApprove approves every selected account in one backend request. The
// selection is cleared only when the request succeeds, so a failed bulk
// leaves the operator's selection intact for retry. Returns the count the
// backend reports.
func (c *Controller) BulkApprove(ctx context.Context, client *backend.Client, sel *Selection) (int, error) {
	ids := sel.IDs()
	if len(ids) == 0 {
		return 0, domain.ErrValidation("no users selected")
	}
	release, err := c.inflight.begin(ActionBulkApprove, ids)
	if err != nil {
		return 0, err
	}
	defer release()

	count, err := client.BulkApprove(ctx, ids)
	if err != nil {
		return 0, err
	}
	sel.Clear()
	return count, nil
}

// BulkReject rejects every selected account in one backend request,
// clearing the selection on success.
func (c *Controller) BulkReject(ctx context.Context, client *backend.Client, sel *Selection) (int, error) {
	ids := sel.IDs()
	if len(ids) == 0 {
		return 0, domain.ErrValidation("no users selected")
	}
	release, err := c.inflight.begin(ActionBulkReject, ids)
	if err != nil {
		return 0, err
	}
	defer release()

	count, err := client.BulkReject(ctx, ids)
	if err != nil {
		return 0, err
	}
	sel.Clear()
	return count, nil
}

// Execute dispatches a confirmed pending action. It returns the number of
// accounts touched and a past-tense summary for flash messages.
func (c *Controller) Execute(ctx context.Context, client *backend.Client, action PendingAction, sel *Selection) (int, string, error) {
	switch action.Type {
	case ActionApprove:
		if err := c.Approve(ctx, client, action.targetID()); err != nil {
			return 0, "", err
		}
		return 1, "User approved", nil
	case ActionReject:
		if err := c.Reject(ctx, client, action.targetID()); err != nil {
			return 0, "", err
		}
		return 1, "User rejected", nil
	case ActionRevoke:
		if err := c.Revoke(ctx, client, action.targetID()); err != nil {
			return 0, "", err
		}
		return 1, "User access revoked", nil
	case ActionBulkApprove:
		count, err := c.BulkApprove(ctx, client, sel)
		if err != nil {
			return 0, "", err
		}
		return count, fmt.Sprintf("%d users approved", count), nil
	case ActionBulkReject:
		count, err := c.BulkReject(ctx, client, sel)
		if err != nil {
			return 0, "", err
		}
		return count, fmt.Sprintf("%d users rejected", count), nil
	default:
		return 0, "", domain.ErrValidation("unknown action %q", action.Type)
	}
}

func (a PendingAction) targetID() string {
	if len(a.TargetIDs) == 0 {
		return ""
	}
	return a.TargetIDs[0]
}

func (c *Controller) single(action ActionType, id string, call func() error) error {
	if id == "" {
		return domain.ErrValidation("missing user id")
	}
	release, err := c.inflight.begin(action, []string{id})
	if err != nil {
		return err
	}
	defer release()
	return call()
}
