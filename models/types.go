// ABOUTME: Data models for insurance CRM entities
// ABOUTME: Defines Client, Policy, Opportunity, Task, Communication, Report, and ChatMessage structs
package models

import (
	"strings"
	"time"
)

type Client struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	Status         string     `json:"status"`
	ActivePolicies int        `json:"active_policies"`
	TotalPremium   float64    `json:"total_premium"`
	JoinedAt       time.Time  `json:"joined_at"`
	LastContactAt  *time.Time `json:"last_contact_at,omitempty"`
}

// FullName returns "First Last".
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type Policy struct {
	ID             string    `json:"id"`
	PolicyNumber   string    `json:"policy_number"`
	ClientID       string    `json:"client_id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Carrier        string    `json:"carrier,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Premium        float64   `json:"premium"`
	CoverageAmount float64   `json:"coverage_amount"`
	Deductible     float64   `json:"deductible,omitempty"`
}

type Opportunity struct {
	ID               string    `json:"id"`
	ClientID         string    `json:"client_id"`
	RelatedPolicyID  *string   `json:"related_policy_id,omitempty"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	PotentialRevenue float64   `json:"potential_revenue,omitempty"`
	PotentialSavings float64   `json:"potential_savings,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsOpen reports whether the opportunity still needs work.
func (o Opportunity) IsOpen() bool {
	return o.Status != OpportunityStatusCompleted && o.Status != OpportunityStatusRejected
}

type Communication struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body,omitempty"`
	SentAt      time.Time `json:"sent_at"`
	Attachments []string  `json:"attachments,omitempty"`
}

type Report struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Description string             `json:"description,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Client statuses.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusPending  = "pending"
)

// Policy types.
const (
	PolicyTypeHome                  = "home"
	PolicyTypeAuto                  = "auto"
	PolicyTypeLife                  = "life"
	PolicyTypeHealth                = "health"
	PolicyTypeBusiness              = "business"
	PolicyTypeRenters               = "renters"
	PolicyTypeUmbrella              = "umbrella"
	PolicyTypeCommercialProperty    = "commercial_property"
	PolicyTypeProfessionalLiability = "professional_liability"
	PolicyTypeCyber                 = "cyber"
)

// PolicyTypes lists every policy type in display order.
var PolicyTypes = []string{
	PolicyTypeHome,
	PolicyTypeAuto,
	PolicyTypeLife,
	PolicyTypeHealth,
	PolicyTypeBusiness,
	PolicyTypeRenters,
	PolicyTypeUmbrella,
	PolicyTypeCommercialProperty,
	PolicyTypeProfessionalLiability,
	PolicyTypeCyber,
}

// Policy statuses.
const (
	PolicyStatusActive    = "active"
	PolicyStatusPending   = "pending"
	PolicyStatusExpired   = "expired"
	PolicyStatusCancelled = "cancelled"
)

// Opportunity types.
const (
	OpportunityTypeCrossSell   = "cross_sell"
	OpportunityTypeUpsell      = "upsell"
	OpportunityTypeRenewal     = "renewal"
	OpportunityTypeCoverageGap = "coverage_gap"
	OpportunityTypeRateReview  = "rate_review"
)

// Opportunity statuses.
const (
	OpportunityStatusEligible      = "eligible"
	OpportunityStatusPendingReview = "pending_review"
	OpportunityStatusInProgress    = "in_progress"
	OpportunityStatusRecommended   = "recommended"
	OpportunityStatusRejected      = "rejected"
	OpportunityStatusCompleted     = "completed"
)

// Priorities shared by opportunities and tasks.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Communication types.
const (
	CommunicationEmail   = "email"
	CommunicationCall    = "call"
	CommunicationSMS     = "sms"
	CommunicationMeeting = "meeting"
	CommunicationNote    = "note"
	CommunicationLetter  = "letter"
)

// Communication statuses.
const (
	CommunicationStatusSent      = "sent"
	CommunicationStatusDraft     = "draft"
	CommunicationStatusScheduled = "scheduled"
)

// Chat senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// HumanizeType turns "commercial_property" into "commercial property".
func HumanizeType(t string) string {
	return strings.ReplaceAll(t, "_", " ")
}
