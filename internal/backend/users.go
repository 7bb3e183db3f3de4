package backend

import (
	"context"
	"net/url"
	"strconv"

	"wfc-portal/internal/domain"
)

// ListUsersParams are the query parameters accepted by GET /users.
type ListUsersParams struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Branch    string
	SortBy    string
	SortOrder string
}

// UserPage is one page of the server-backed user list.
type UserPage struct {
	Users      []domain.User     `json:"users"`
	Pagination domain.Pagination `json:"pagination"`
}

// BulkResult reports how many accounts a bulk mutation touched.
type BulkResult struct {
	ApprovedCount int `json:"approved_count,omitempty"`
	RejectedCount int `json:"rejected_count,omitempty"`
}

type bulkRequest struct {
	UserIDs []string `json:"user_ids"`
}

// ListUsers fetches a filtered, sorted page of registered users.
func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) (UserPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(domain.ClampPage(params.Page)))
	q.Set("limit", strconv.Itoa(domain.ClampPageSize(params.Limit)))
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Branch != "" {
		q.Set("branch", params.Branch)
	}
	if params.SortBy != "" {
		q.Set("sort_by", params.SortBy)
	}
	if params.SortOrder != "" {
		q.Set("sort_order", params.SortOrder)
	}

	var page UserPage
	if err := c.get(ctx, "/users", q, &page); err != nil {
		return UserPage{}, err
	}
	return page, nil
}

// PendingUsers fetches a page of accounts awaiting approval.
func (c *Client) PendingUsers(ctx context.Context, pageNum, limit int) (UserPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(domain.ClampPage(pageNum)))
	q.Set("limit", strconv.Itoa(domain.ClampPageSize(limit)))

	var page UserPage
	if err := c.get(ctx, "/users/pending", q, &page); err != nil {
		return UserPage{}, err
	}
	return page, nil
}

// GetUser fetches a single user profile by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ApproveUser grants portal access to a pending account.
func (c *Client) ApproveUser(ctx context.Context, id string) error {
	return c.post(ctx, "/users/"+url.PathEscape(id)+"/approve", nil, nil)
}

// RejectUser rejects a pending account.
func (c *Client) RejectUser(ctx context.Context, id string) error {
	return c.post(ctx, "/users/"+url.PathEscape(id)+"/reject", nil, nil)
}

// RevokeUser withdraws portal access from an approved account.
func (c *Client) RevokeUser(ctx context.Context, id string) error {
	return c.post(ctx, "/users/"+url.PathEscape(id)+"/revoke", nil, nil)
}

// BulkApprove approves all listed accounts in one request and returns the
// count the backend reports.
func (c *Client) BulkApprove(ctx context.Context, ids []string) (int, error) {
	var result BulkResult
	if err := c.post(ctx, "/users/bulk-approve", bulkRequest{UserIDs: ids}, &result); err != nil {
		return 0, err
	}
	return result.ApprovedCount, nil
}

// BulkReject rejects all listed accounts in one request.
func (c *Client) BulkReject(ctx context.Context, ids []string) (int, error) {
	var result BulkResult
	if err := c.post(ctx, "/users/bulk-reject", bulkRequest{UserIDs: ids}, &result); err != nil {
		return 0, err
	}
	return result.RejectedCount, nil
}
