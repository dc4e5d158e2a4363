package api

import (
	"encoding/json"
	"time"
)

// User is the staff identity record returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"isActive"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// FullName returns the display name, falling back to the email address.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Organization is the PSP business profile tied to the logged-in account.
type Organization struct {
	ID           string `json:"id"`
	CompanyName  string `json:"companyName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	State        string `json:"state,omitempty"`
	Lga          string `json:"lga,omitempty"`
	RegNumber    string `json:"registrationNumber,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
}

// Customer is a waste-collection account holder.
type Customer struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Ward          string    `json:"ward"`
	Street        string    `json:"street"`
	PropertyType  string    `json:"propertyType"`
	Status        string    `json:"status"`
	Balance       float64   `json:"outstandingBalance"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Invoice is a billing record issued to a customer.
type Invoice struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	Amount        float64   `json:"amount"`
	AmountPaid    float64   `json:"amountPaid"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"dueDate"`
	IssuedAt      time.Time `json:"issuedAt"`
}

// Payment is a settled or attempted payment against an invoice.
type Payment struct {
	ID            string    `json:"id"`
	Reference     string    `json:"reference"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	InvoiceNumber string    `json:"invoiceNumber,omitempty"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt"`
}

// Agent is a field agent collecting payments and confirming pickups.
type Agent struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Ward          string `json:"ward"`
	Status        string `json:"status"`
	CustomerCount int    `json:"customerCount"`
}

// Pickup is a scheduled or completed waste collection visit.
type Pickup struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"`
	AgentName    string     `json:"agentName,omitempty"`
	Ward         string     `json:"ward"`
	Street       string     `json:"street"`
	Status       string     `json:"status"`
	ScheduledFor time.Time  `json:"scheduledFor"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Ward is an administrative area served by the PSP.
type Ward struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Street belongs to a ward.
type Street struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	WardID   string `json:"wardId"`
	WardName string `json:"wardName,omitempty"`
}

// PropertyType carries the billing rate for a category of property.
type PropertyType struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// ExpenseCategory classifies operational expenses.
type ExpenseCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Pagination is the normalized pagination block. Endpoints disagree on field
// names (page vs currentPage, total vs totalItems, limit vs itemsPerPage), so
// decoding accepts both sets.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// UnmarshalJSON accepts both pagination field-name dialects.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	var raw struct {
		Page         int `json:"page"`
		CurrentPage  int `json:"currentPage"`
		TotalPages   int `json:"totalPages"`
		Total        int `json:"total"`
		TotalItems   int `json:"totalItems"`
		Limit        int `json:"limit"`
		ItemsPerPage int `json:"itemsPerPage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.CurrentPage = raw.CurrentPage
	if p.CurrentPage == 0 {
		p.CurrentPage = raw.Page
	}
	p.TotalPages = raw.TotalPages
	p.TotalItems = raw.TotalItems
	if p.TotalItems == 0 {
		p.TotalItems = raw.Total
	}
	p.ItemsPerPage = raw.ItemsPerPage
	if p.ItemsPerPage == 0 {
		p.ItemsPerPage = raw.Limit
	}
	return nil
}

// Page is a decoded list response: one page of items plus the server's
// pagination block, nil when the server omitted it.
type Page[T any] struct {
	Items      []T
	Pagination *Pagination
}
