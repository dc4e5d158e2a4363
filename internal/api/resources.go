package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListQuery carries pagination, search, sort, and filter parameters for the
// list endpoints. Zero values are omitted from the query string.
type ListQuery struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// Values encodes the query into URL parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("limit", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
		if q.SortOrder != "" {
			v.Set("sortOrder", q.SortOrder)
		}
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// ListCustomers fetches one page of customers.
func (c *Client) ListCustomers(ctx context.Context, q ListQuery) (Page[Customer], error) {
	var resp struct {
		Customers  []Customer  `json:"customers"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := c.get(ctx, "/customers", q.Values(), &resp); err != nil {
		return Page[Customer]{}, err
	}
	return Page[Customer]{Items: resp.Customers, Pagination: resp.Pagination}, nil
}

// ListInvoices fetches one page of invoices.
func (c *Client) ListInvoices(ctx context.Context, q ListQuery) (Page[Invoice], error) {
	var resp struct {
		Invoices   []Invoice   `json:"invoices"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := c.get(ctx, "/invoices", q.Values(), &resp); err != nil {
		return Page[Invoice]{}, err
	}
	return Page[Invoice]{Items: resp.Invoices, Pagination: resp.Pagination}, nil
}

// ListPayments fetches one page of payments.
func (c *Client) ListPayments(ctx context.Context, q ListQuery) (Page[Payment], error) {
	var resp struct {
		Payments   []Payment   `json:"payments"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := c.get(ctx, "/payments", q.Values(), &resp); err != nil {
		return Page[Payment]{}, err
	}
	return Page[Payment]{Items: resp.Payments, Pagination: resp.Pagination}, nil
}

// ListAgents fetches one page of field agents.
func (c *Client) ListAgents(ctx context.Context, q ListQuery) (Page[Agent], error) {
	var resp struct {
		Agents     []Agent     `json:"agents"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := c.get(ctx, "/agents", q.Values(), &resp); err != nil {
		return Page[Agent]{}, err
	}
	return Page[Agent]{Items: resp.Agents, Pagination: resp.Pagination}, nil
}

// ListPickups fetches one page of pickups.
func (c *Client) ListPickups(ctx context.Context, q ListQuery) (Page[Pickup], error) {
	var resp struct {
		Pickups    []Pickup    `json:"pickups"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := c.get(ctx, "/pickups", q.Values(), &resp); err != nil {
		return Page[Pickup]{}, err
	}
	return Page[Pickup]{Items: resp.Pickups, Pagination: resp.Pagination}, nil
}

// ListWards fetches all wards. Settings resources are small and unpaginated.
func (c *Client) ListWards(ctx context.Context) ([]Ward, error) {
	var resp struct {
		Wards []Ward `json:"wards"`
	}
	if err := c.get(ctx, "/settings/wards", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Wards, nil
}

// ListStreets fetches all streets, optionally scoped to a ward.
func (c *Client) ListStreets(ctx context.Context, wardID string) ([]Street, error) {
	var resp struct {
		Streets []Street `json:"streets"`
	}
	v := url.Values{}
	if wardID != "" {
		v.Set("wardId", wardID)
	}
	if err := c.get(ctx, "/settings/streets", v, &resp); err != nil {
		return nil, err
	}
	return resp.Streets, nil
}

// ListPropertyTypes fetches the property type catalogue.
func (c *Client) ListPropertyTypes(ctx context.Context) ([]PropertyType, error) {
	var resp struct {
		PropertyTypes []PropertyType `json:"propertyTypes"`
	}
	if err := c.get(ctx, "/settings/property-types", nil, &resp); err != nil {
		return nil, err
	}
	return resp.PropertyTypes, nil
}

// ListExpenseCategories fetches the expense category catalogue.
func (c *Client) ListExpenseCategories(ctx context.Context) ([]ExpenseCategory, error) {
	var resp struct {
		ExpenseCategories []ExpenseCategory `json:"expenseCategories"`
	}
	if err := c.get(ctx, "/settings/expense-categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.ExpenseCategories, nil
}
