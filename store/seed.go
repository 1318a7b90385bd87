// ABOUTME: Hardcoded mock dataset every front end starts from
// ABOUTME: Dates are offsets from the reference day so time-window answers stay meaningful
package store

import (
	"time"

	"github.com/harperreed/inscrm/models"
)

// Seed returns the mock CRM dataset anchored at the start of now's calendar day.
// Client aggregates are the hand-maintained display values; they are not
// guaranteed to agree with the policy set.
func Seed(now time.Time) *Dataset {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := func(n int) time.Time { return today.AddDate(0, 0, n) }
	at := func(n, hour, min int) time.Time { return day(n).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute) }
	str := func(s string) *string { return &s }
	tm := func(t time.Time) *time.Time { return &t }

	clients := []models.Client{
		{ID: "CL-1001", FirstName: "Jamal", LastName: "Haija", Email: "jamal.haija@example.com", Phone: "555-0101", Address: "14 Birch Lane, Springfield", Status: models.ClientStatusActive, ActivePolicies: 2, TotalPremium: 2430, JoinedAt: day(-1460), LastContactAt: tm(at(-3, 9, 15))},
		{ID: "CL-1002", FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@example.com", Phone: "555-0102", Address: "88 Oak Street, Springfield", Status: models.ClientStatusActive, ActivePolicies: 2, TotalPremium: 3220, JoinedAt: day(-900), LastContactAt: tm(at(-1, 14, 0))},
		{ID: "CL-1003", FirstName: "Sarah", LastName: "Mitchell", Email: "s.mitchell@example.com", Phone: "555-0103", Address: "3 Harbor View, Shelbyville", Status: models.ClientStatusActive, ActivePolicies: 1, TotalPremium: 1680, JoinedAt: day(-640), LastContactAt: tm(at(-14, 11, 30))},
		{ID: "CL-1004", FirstName: "Michael", LastName: "Chen", Email: "mchen@chenlogistics.example.com", Phone: "555-0104", Address: "200 Industrial Pkwy, Capital City", Status: models.ClientStatusActive, ActivePolicies: 2, TotalPremium: 7000, JoinedAt: day(-1200), LastContactAt: tm(at(-6, 10, 0))},
		{ID: "CL-1005", FirstName: "Emily", LastName: "Rodriguez", Email: "emily.rodriguez@example.com", Phone: "555-0105", Address: "51 Maple Court, Springfield", Status: models.ClientStatusActive, ActivePolicies: 1, TotalPremium: 3600, JoinedAt: day(-400), LastContactAt: tm(at(-2, 16, 45))},
		{ID: "CL-1006", FirstName: "David", LastName: "Thompson", Email: "david@thompsonproperties.example.com", Phone: "555-0106", Address: "1 Commerce Plaza, Capital City", Status: models.ClientStatusActive, ActivePolicies: 2, TotalPremium: 6850, JoinedAt: day(-2000)},
		{ID: "CL-1007", FirstName: "Priya", LastName: "Patel", Email: "priya.patel@example.com", Phone: "555-0107", Address: "77 Elm Avenue, Ogdenville", Status: models.ClientStatusActive, ActivePolicies: 1, TotalPremium: 3900, JoinedAt: day(-330), LastContactAt: tm(at(-20, 13, 0))},
		{ID: "CL-1008", FirstName: "Robert", LastName: "Williams", Email: "rwilliams@example.com", Phone: "555-0108", Address: "9 Quarry Road, North Haverbrook", Status: models.ClientStatusInactive, ActivePolicies: 1, TotalPremium: 900, JoinedAt: day(-1800)},
		{ID: "CL-1009", FirstName: "Lisa", LastName: "Anderson", Email: "lisa.anderson@example.com", Phone: "555-0109", Address: "412 Pine Street, Springfield", Status: models.ClientStatusPending, JoinedAt: day(-4)},
		{ID: "CL-1010", FirstName: "Marcus", LastName: "Brown", Email: "marcus.brown@example.com", Phone: "555-0110", Address: "60 Lakeside Drive, Shelbyville", Status: models.ClientStatusActive, ActivePolicies: 1, TotalPremium: 1800, JoinedAt: day(-1000), LastContactAt: tm(at(-5, 15, 20))},
		{ID: "CL-1011", FirstName: "Olivia", LastName: "Garcia", Email: "olivia.garcia@example.com", Phone: "555-0111", Address: "25 Sunset Blvd, Ogdenville", Status: models.ClientStatusActive, ActivePolicies: 1, TotalPremium: 1050, JoinedAt: day(-345)},
	}

	policies := []models.Policy{
		{ID: "PL-2001", PolicyNumber: "HO-448210", ClientID: "CL-1001", Type: models.PolicyTypeHome, Status: models.PolicyStatusActive, Carrier: "Harbor Mutual", StartDate: day(-340), EndDate: day(25), Premium: 1450, CoverageAmount: 450000, Deductible: 1000},
		{ID: "PL-2002", PolicyNumber: "AU-118734", ClientID: "CL-1001", Type: models.PolicyTypeAuto, Status: models.PolicyStatusActive, Carrier: "Keystone Auto", StartDate: day(-200), EndDate: day(165), Premium: 980, CoverageAmount: 100000, Deductible: 500},
		{ID: "PL-2003", PolicyNumber: "LI-902113", ClientID: "CL-1002", Type: models.PolicyTypeLife, Status: models.PolicyStatusActive, Carrier: "Summit Life", StartDate: day(-700), EndDate: day(2950), Premium: 2100, CoverageAmount: 750000},
		{ID: "PL-2004", PolicyNumber: "AU-120455", ClientID: "CL-1002", Type: models.PolicyTypeAuto, Status: models.PolicyStatusActive, Carrier: "Keystone Auto", StartDate: day(-355), EndDate: day(10), Premium: 1120, CoverageAmount: 100000, Deductible: 500},
		{ID: "PL-2005", PolicyNumber: "HO-450981", ClientID: "CL-1003", Type: models.PolicyTypeHome, Status: models.PolicyStatusActive, Carrier: "Harbor Mutual", StartDate: day(-300), EndDate: day(65), Premium: 1680, CoverageAmount: 520000, Deductible: 1500},
		{ID: "PL-2006", PolicyNumber: "BU-330017", ClientID: "CL-1004", Type: models.PolicyTypeBusiness, Status: models.PolicyStatusActive, Carrier: "Granite Commercial", StartDate: day(-350), EndDate: day(15), Premium: 4800, CoverageAmount: 1000000, Deductible: 2500},
		{ID: "PL-2007", PolicyNumber: "CY-771204", ClientID: "CL-1004", Type: models.PolicyTypeCyber, Status: models.PolicyStatusActive, Carrier: "Bastion Specialty", StartDate: day(-100), EndDate: day(265), Premium: 2200, CoverageAmount: 500000, Deductible: 5000},
		{ID: "PL-2008", PolicyNumber: "HE-560332", ClientID: "CL-1005", Type: models.PolicyTypeHealth, Status: models.PolicyStatusActive, Carrier: "Meridian Health", StartDate: day(-180), EndDate: day(185), Premium: 3600, CoverageAmount: 250000, Deductible: 2000},
		{ID: "PL-2009", PolicyNumber: "RE-208871", ClientID: "CL-1005", Type: models.PolicyTypeRenters, Status: models.PolicyStatusExpired, Carrier: "Harbor Mutual", StartDate: day(-380), EndDate: day(-15), Premium: 240, CoverageAmount: 30000, Deductible: 250},
		{ID: "PL-2010", PolicyNumber: "CP-610045", ClientID: "CL-1006", Type: models.PolicyTypeCommercialProperty, Status: models.PolicyStatusActive, Carrier: "Granite Commercial", StartDate: day(-360), EndDate: day(5), Premium: 6200, CoverageAmount: 2000000, Deductible: 10000},
		{ID: "PL-2011", PolicyNumber: "UM-092318", ClientID: "CL-1006", Type: models.PolicyTypeUmbrella, Status: models.PolicyStatusActive, Carrier: "Summit Casualty", StartDate: day(-90), EndDate: day(275), Premium: 650, CoverageAmount: 1000000},
		{ID: "PL-2012", PolicyNumber: "PL-415590", ClientID: "CL-1007", Type: models.PolicyTypeProfessionalLiability, Status: models.PolicyStatusActive, Carrier: "Bastion Specialty", StartDate: day(-330), EndDate: day(35), Premium: 3900, CoverageAmount: 1000000, Deductible: 2500},
		{ID: "PL-2013", PolicyNumber: "AU-099102", ClientID: "CL-1008", Type: models.PolicyTypeAuto, Status: models.PolicyStatusCancelled, Carrier: "Keystone Auto", StartDate: day(-500), EndDate: day(-135), Premium: 900, CoverageAmount: 50000, Deductible: 1000},
		{ID: "PL-2014", PolicyNumber: "HO-461177", ClientID: "CL-1009", Type: models.PolicyTypeHome, Status: models.PolicyStatusPending, Carrier: "Harbor Mutual", StartDate: day(14), EndDate: day(379), Premium: 1350, CoverageAmount: 380000, Deductible: 1000},
		{ID: "PL-2015", PolicyNumber: "LI-905876", ClientID: "CL-1010", Type: models.PolicyTypeLife, Status: models.PolicyStatusActive, Carrier: "Summit Life", StartDate: day(-1000), EndDate: day(8000), Premium: 1800, CoverageAmount: 500000},
		{ID: "PL-2016", PolicyNumber: "AU-125310", ClientID: "CL-1011", Type: models.PolicyTypeAuto, Status: models.PolicyStatusActive, Carrier: "Keystone Auto", StartDate: day(-340), EndDate: day(20), Premium: 1050, CoverageAmount: 100000, Deductible: 500},
		{ID: "PL-2017", PolicyNumber: "AU-117764", ClientID: "CL-1003", Type: models.PolicyTypeAuto, Status: models.PolicyStatusExpired, Carrier: "Keystone Auto", StartDate: day(-353), EndDate: day(12), Premium: 870, CoverageAmount: 100000, Deductible: 500},
	}

	opportunities := []models.Opportunity{
		{ID: "OP-3001", ClientID: "CL-1001", Type: models.OpportunityTypeCrossSell, Status: models.OpportunityStatusEligible, Priority: models.PriorityHigh, Title: "Umbrella coverage for the Haija household", Description: "Home and auto in force with no excess liability.", PotentialRevenue: 650, CreatedAt: day(-12)},
		{ID: "OP-3002", ClientID: "CL-1002", RelatedPolicyID: str("PL-2004"), Type: models.OpportunityTypeRenewal, Status: models.OpportunityStatusInProgress, Priority: models.PriorityHigh, Title: "Auto renewal review", Description: "Renewal due in under two weeks; shop multi-car discount.", PotentialRevenue: 1120, CreatedAt: day(-20)},
		{ID: "OP-3003", ClientID: "CL-1004", RelatedPolicyID: str("PL-2007"), Type: models.OpportunityTypeUpsell, Status: models.OpportunityStatusRecommended, Priority: models.PriorityHigh, Title: "Raise cyber limits", Description: "Client now processes card payments online.", PotentialRevenue: 1400, CreatedAt: day(-30)},
		{ID: "OP-3004", ClientID: "CL-1005", RelatedPolicyID: str("PL-2009"), Type: models.OpportunityTypeCoverageGap, Status: models.OpportunityStatusPendingReview, Priority: models.PriorityMedium, Title: "Replace lapsed renters coverage", PotentialRevenue: 240, CreatedAt: day(-14)},
		{ID: "OP-3005", ClientID: "CL-1006", RelatedPolicyID: str("PL-2010"), Type: models.OpportunityTypeRateReview, Status: models.OpportunityStatusEligible, Priority: models.PriorityHigh, Title: "Commercial property rate review", Description: "Sprinkler retrofit completed; request re-rate.", PotentialSavings: 800, CreatedAt: day(-8)},
		{ID: "OP-3006", ClientID: "CL-1007", Type: models.OpportunityTypeCrossSell, Status: models.OpportunityStatusEligible, Priority: models.PriorityLow, Title: "Business owner's policy", PotentialRevenue: 2500, CreatedAt: day(-40)},
		{ID: "OP-3007", ClientID: "CL-1003", RelatedPolicyID: str("PL-2005"), Type: models.OpportunityTypeUpsell, Status: models.OpportunityStatusCompleted, Priority: models.PriorityHigh, Title: "Dwelling coverage increase", PotentialRevenue: 300, CreatedAt: day(-90)},
		{ID: "OP-3008", ClientID: "CL-1010", Type: models.OpportunityTypeCrossSell, Status: models.OpportunityStatusRejected, Priority: models.PriorityMedium, Title: "Disability income policy", PotentialRevenue: 900, CreatedAt: day(-60)},
	}

	tasks := []models.Task{
		{ID: "TK-4001", Title: "Call Jamal Haija about home renewal", ClientID: str("CL-1001"), DueDate: at(0, 10, 0), Priority: models.PriorityHigh, Status: models.TaskStatusPending, Type: models.TaskTypeCall},
		{ID: "TK-4002", Title: "Send auto quote to Sarah Johnson", ClientID: str("CL-1002"), DueDate: at(0, 15, 30), Priority: models.PriorityMedium, Status: models.TaskStatusInProgress, Type: models.TaskTypeEmail},
		{ID: "TK-4003", Title: "Review commercial property schedule", ClientID: str("CL-1006"), DueDate: at(0, 9, 0), Priority: models.PriorityHigh, Status: models.TaskStatusCompleted, Type: models.TaskTypeReview, CompletedAt: tm(at(0, 8, 40))},
		{ID: "TK-4004", Title: "Quarterly pipeline review", DueDate: at(0, 16, 0), Priority: models.PriorityLow, Status: models.TaskStatusPending, Type: models.TaskTypeOther},
		{ID: "TK-4005", Title: "Follow up on cyber proposal", ClientID: str("CL-1004"), DueDate: at(-2, 11, 0), Priority: models.PriorityHigh, Status: models.TaskStatusPending, Type: models.TaskTypeFollowUp},
		{ID: "TK-4006", Title: "Collect signed renewal forms", ClientID: str("CL-1010"), DueDate: at(-5, 17, 0), Priority: models.PriorityMedium, Status: models.TaskStatusInProgress, Type: models.TaskTypeRenewal},
		{ID: "TK-4007", Title: "Schedule annual review", ClientID: str("CL-1005"), DueDate: at(3, 10, 0), Priority: models.PriorityMedium, Status: models.TaskStatusPending, Type: models.TaskTypeMeeting},
		{ID: "TK-4008", Title: "Prepare auto renewal packet", ClientID: str("CL-1011"), DueDate: at(7, 17, 0), Priority: models.PriorityHigh, Status: models.TaskStatusPending, Type: models.TaskTypeRenewal},
		{ID: "TK-4009", Title: "Welcome call", ClientID: str("CL-1009"), DueDate: at(-1, 12, 0), Priority: models.PriorityMedium, Status: models.TaskStatusCompleted, Type: models.TaskTypeCall, CompletedAt: tm(at(-1, 11, 10))},
		{ID: "TK-4010", Title: "Update beneficiary information", ClientID: str("CL-1002"), DueDate: at(1, 12, 0), Priority: models.PriorityLow, Status: models.TaskStatusPending, Type: models.TaskTypeFollowUp},
		{ID: "TK-4011", Title: "Mail reinstatement brochure", ClientID: str("CL-1008"), DueDate: at(-10, 17, 0), Priority: models.PriorityLow, Status: models.TaskStatusCancelled, Type: models.TaskTypeOther},
	}

	communications := []models.Communication{
		{ID: "CM-5001", ClientID: "CL-1001", Type: models.CommunicationEmail, Status: models.CommunicationStatusSent, Subject: "Home policy renewal reminder", Body: "Your homeowners policy renews next month.", SentAt: at(-3, 9, 15)},
		{ID: "CM-5002", ClientID: "CL-1001", Type: models.CommunicationCall, Status: models.CommunicationStatusSent, Subject: "Umbrella options", Body: "Walked through umbrella limits; client interested.", SentAt: at(-10, 14, 0)},
		{ID: "CM-5003", ClientID: "CL-1002", Type: models.CommunicationEmail, Status: models.CommunicationStatusSent, Subject: "Auto renewal quote", SentAt: at(-1, 14, 0), Attachments: []string{"auto_quote.pdf"}},
		{ID: "CM-5004", ClientID: "CL-1004", Type: models.CommunicationMeeting, Status: models.CommunicationStatusSent, Subject: "Cyber coverage review", SentAt: at(-6, 10, 0)},
		{ID: "CM-5005", ClientID: "CL-1005", Type: models.CommunicationSMS, Status: models.CommunicationStatusSent, Body: "Confirming our review appointment.", SentAt: at(-2, 16, 45)},
		{ID: "CM-5006", ClientID: "CL-1006", Type: models.CommunicationEmail, Status: models.CommunicationStatusDraft, Subject: "Commercial property rate review", SentAt: at(0, 8, 0)},
		{ID: "CM-5007", ClientID: "CL-1007", Type: models.CommunicationLetter, Status: models.CommunicationStatusSent, Subject: "Coverage summary", SentAt: at(-20, 13, 0), Attachments: []string{"coverage_summary.pdf"}},
		{ID: "CM-5008", ClientID: "CL-1010", Type: models.CommunicationNote, Status: models.CommunicationStatusSent, Body: "Renewal forms still outstanding.", SentAt: at(-5, 15, 20)},
		{ID: "CM-5009", ClientID: "CL-1011", Type: models.CommunicationEmail, Status: models.CommunicationStatusScheduled, Subject: "Auto renewal packet", SentAt: at(2, 9, 0)},
		{ID: "CM-5010", ClientID: "CL-1003", Type: models.CommunicationCall, Status: models.CommunicationStatusSent, Subject: "Claim follow-up", SentAt: at(-14, 11, 30)},
	}

	reports := []models.Report{
		{ID: "RP-6001", Name: "Premium by policy type", Category: "sales", Description: "Annual premium written per line of business.", GeneratedAt: at(-1, 6, 0), Metrics: map[string]float64{"home": 4480, "auto": 3150, "life": 3900, "commercial_property": 6200}},
		{ID: "RP-6002", Name: "Retention", Category: "retention", Description: "Active clients against total book.", GeneratedAt: at(-1, 6, 0), Metrics: map[string]float64{"active_clients": 9, "total_clients": 11}},
		{ID: "RP-6003", Name: "Renewal pipeline", Category: "renewals", Description: "Active policies ending within the next month.", GeneratedAt: at(-1, 6, 0), Metrics: map[string]float64{"expiring_policies": 5, "expiring_premium": 14620}},
		{ID: "RP-6004", Name: "Opportunity pipeline", Category: "pipeline", Description: "Open cross-sell, upsell, and review opportunities.", GeneratedAt: at(-1, 6, 0), Metrics: map[string]float64{"open_opportunities": 6, "potential_revenue": 5910}},
	}

	return &Dataset{
		Clients:        clients,
		Policies:       policies,
		Opportunities:  opportunities,
		Tasks:          tasks,
		Communications: communications,
		Reports:        reports,
	}
}
