// ABOUTME: Tool output shapes for CRM entities
// ABOUTME: Dates are rendered as strings so tool schemas stay simple
package handlers

import (
	"time"

	"github.com/harperreed/inscrm/models"
)

type ClientOutput struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Address        string  `json:"address,omitempty"`
	Status         string  `json:"status"`
	ActivePolicies int     `json:"active_policies"`
	TotalPremium   float64 `json:"total_premium"`
	JoinedAt       string  `json:"joined_at"`
	LastContactAt  *string `json:"last_contact_at,omitempty"`
}

type PolicyOutput struct {
	ID             string  `json:"id"`
	PolicyNumber   string  `json:"policy_number"`
	ClientID       string  `json:"client_id"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	Carrier        string  `json:"carrier,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Premium        float64 `json:"premium"`
	CoverageAmount float64 `json:"coverage_amount"`
}

type OpportunityOutput struct {
	ID               string  `json:"id"`
	ClientID         string  `json:"client_id"`
	RelatedPolicyID  *string `json:"related_policy_id,omitempty"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	Priority         string  `json:"priority"`
	Title            string  `json:"title"`
	PotentialRevenue float64 `json:"potential_revenue,omitempty"`
	PotentialSavings float64 `json:"potential_savings,omitempty"`
}

type TaskOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ClientID    *string `json:"client_id,omitempty"`
	DueDate     string  `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

type CommunicationOutput struct {
	ID          string   `json:"id"`
	ClientID    string   `json:"client_id"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	Subject     string   `json:"subject,omitempty"`
	SentAt      string   `json:"sent_at"`
	Attachments []string `json:"attachments,omitempty"`
}

type ReportOutput struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	GeneratedAt string             `json:"generated_at"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func clientToOutput(c models.Client) ClientOutput {
	return ClientOutput{
		ID:             c.ID,
		Name:           c.FullName(),
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		Status:         c.Status,
		ActivePolicies: c.ActivePolicies,
		TotalPremium:   c.TotalPremium,
		JoinedAt:       formatTime(c.JoinedAt),
		LastContactAt:  formatTimePtr(c.LastContactAt),
	}
}

func policyToOutput(p models.Policy) PolicyOutput {
	return PolicyOutput{
		ID:             p.ID,
		PolicyNumber:   p.PolicyNumber,
		ClientID:       p.ClientID,
		Type:           p.Type,
		Status:         p.Status,
		Carrier:        p.Carrier,
		StartDate:      p.StartDate.Format(models.DateLayout),
		EndDate:        p.EndDate.Format(models.DateLayout),
		Premium:        p.Premium,
		CoverageAmount: p.CoverageAmount,
	}
}

func opportunityToOutput(o models.Opportunity) OpportunityOutput {
	return OpportunityOutput{
		ID:               o.ID,
		ClientID:         o.ClientID,
		RelatedPolicyID:  o.RelatedPolicyID,
		Type:             o.Type,
		Status:           o.Status,
		Priority:         o.Priority,
		Title:            o.Title,
		PotentialRevenue: o.PotentialRevenue,
		PotentialSavings: o.PotentialSavings,
	}
}

func taskToOutput(t models.Task) TaskOutput {
	return TaskOutput{
		ID:          t.ID,
		Title:       t.Title,
		ClientID:    t.ClientID,
		DueDate:     formatTime(t.DueDate),
		Priority:    t.Priority,
		Status:      t.Status,
		Type:        t.Type,
		CompletedAt: formatTimePtr(t.CompletedAt),
	}
}

func communicationToOutput(c models.Communication) CommunicationOutput {
	return CommunicationOutput{
		ID:          c.ID,
		ClientID:    c.ClientID,
		Type:        c.Type,
		Status:      c.Status,
		Subject:     c.Subject,
		SentAt:      formatTime(c.SentAt),
		Attachments: c.Attachments,
	}
}

func reportToOutput(r models.Report) ReportOutput {
	return ReportOutput{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		GeneratedAt: formatTime(r.GeneratedAt),
		Metrics:     r.Metrics,
	}
}
