package backend

import (
	"context"
	"net/url"
	"strconv"

	"wfc-portal/internal/domain"
)

// SermonParams are the query parameters accepted by GET /sermons.
type SermonParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// SermonPage is one page of the sermon listing.
type SermonPage struct {
	Sermons    []domain.Sermon   `json:"sermons"`
	Pagination domain.Pagination `json:"pagination"`
}

// Sermons fetches a page of published sermons.
func (c *Client) Sermons(ctx context.Context, params SermonParams) (SermonPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(domain.ClampPage(params.Page)))
	q.Set("limit", strconv.Itoa(domain.ClampPageSize(params.Limit)))
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	var page SermonPage
	if err := c.get(ctx, "/sermons", q, &page); err != nil {
		return SermonPage{}, err
	}
	return page, nil
}

// SermonCategories lists the sermon categories for the browse filter.
func (c *Client) SermonCategories(ctx context.Context) ([]domain.SermonCategory, error) {
	var categories []domain.SermonCategory
	if err := c.get(ctx, "/sermon-categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DashboardStats fetches the account summary for the admin dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.get(ctx, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentActivity fetches the latest admin activity feed entries.
func (c *Client) RecentActivity(ctx context.Context) ([]domain.ActivityEntry, error) {
	var entries []domain.ActivityEntry
	if err := c.get(ctx, "/dashboard/recent-activity", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
