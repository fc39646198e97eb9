// Package model defines the core domain types shared across the pipeline.
package model

import (
	"strconv"
	"time"
)

// Status values a lead can terminate with before email resolution runs.
// Once email resolution runs, the lead's Status carries the resolution
// status string (see internal/email) and is never overwritten afterward.
const (
	StatusIdentified       = "Identified"
	StatusScrapingFailed   = "Scraping Failed"
	StatusNoDecisionMaker  = "No Decision Maker Found"
	StatusAnalysisFailed   = "Analysis Failed"
	StatusLowGrade         = "Low Qualification Grade"
	StatusEmailNotFound    = "Email Not Found"
	StatusMissingLeadData  = "Missing Lead Data"
	StatusWebsiteScrape    = "Website Scrape"
	StatusHunter           = "Hunter.io"
	StatusHunterNotFound   = "Hunter.io - Not Found"
	StatusPatternGuess     = "Pattern Guess (Not Verified)"
	statusSMTPVerifiedMark = " (SMTP Verified)"
)

// SMTPVerified appends the SMTP-verified marker to a resolution status.
func SMTPVerified(status string) string {
	return status + statusSMTPVerifiedMark
}

// StatusHunterError renders a finder-lookup failure as a status string.
func StatusHunterError(err error) string {
	return "Hunter.io Error: " + err.Error()
}

// Analysis holds the grading collaborator's output for one company.
type Analysis struct {
	QualificationGrade int    `json:"qualification_grade"`
	CompanyInfo        string `json:"company_info"`
	WhyGood            string `json:"why_good"`
	PainPoint          string `json:"pain_point"`
	Icebreaker         string `json:"icebreaker"`
	RecentUpdates      string `json:"recent_updates"`
	EmployeeCount      string `json:"employee_count"`
	AnnualRevenue      string `json:"annual_revenue"`
	CompanySize        string `json:"company_size"`
	IndustryTags       string `json:"industry_tags"`
	SocialMedia        string `json:"social_media"`
	ContactDetails     string `json:"contact_details"`
	LogisticsSignals   string `json:"logistics_signals"`
	BrandVibe          string `json:"brand_vibe"`
	TechStack          string `json:"tech_stack"`
	ProductProfile     string `json:"product_profile"`
	CustomerFocus      string `json:"customer_focus"`
	ShippingLocations  string `json:"shipping_locations"`
}

// Lead is the terminal record produced for one company. It is immutable
// once handed to persistence; sinks consume it via Row().
type Lead struct {
	RunID      string        `json:"run_id"`
	Domain     string        `json:"domain"`
	Company    string        `json:"company"`
	Keyword    string        `json:"keyword"`
	Status     string        `json:"status"`
	Person     DecisionMaker `json:"person"`
	Email      string        `json:"email"`
	Analysis   Analysis      `json:"analysis"`
	SnippetBio string        `json:"snippet_bio"` // discovery snippet until analysis refines it
	CreatedAt  time.Time     `json:"created_at"`
}

// LeadColumns is the versioned column schema of the produced record.
// Column order is part of the contract: downstream consumers key on it.
var LeadColumns = []string{
	"First Name", "Last Name", "Title", "Email", "Profile URL", "Company",
	"Company Info", "Qualification Grade", "Why Good", "Pain Point",
	"Icebreaker", "Status", "Recent Updates", "Keyword",
	"Employee Count", "Annual Revenue", "Company Size", "Industry Tags",
	"Social Media", "Contact Details", "Logistics Signals", "Brand Vibe",
	"Tech Stack", "Product Profile", "Customer Focus", "Shipping Locations",
	"Timestamp",
}

// Row renders the lead in LeadColumns order.
func (l *Lead) Row() []string {
	info := l.Analysis.CompanyInfo
	if info == "" {
		info = l.SnippetBio
	}
	return []string{
		l.Person.FirstName,
		l.Person.LastName,
		l.Person.Title,
		l.Email,
		l.Person.ProfileURL,
		l.Company,
		info,
		strconv.Itoa(l.Analysis.QualificationGrade),
		l.Analysis.WhyGood,
		l.Analysis.PainPoint,
		l.Analysis.Icebreaker,
		l.Status,
		l.Analysis.RecentUpdates,
		l.Keyword,
		l.Analysis.EmployeeCount,
		l.Analysis.AnnualRevenue,
		l.Analysis.CompanySize,
		l.Analysis.IndustryTags,
		l.Analysis.SocialMedia,
		l.Analysis.ContactDetails,
		l.Analysis.LogisticsSignals,
		l.Analysis.BrandVibe,
		l.Analysis.TechStack,
		l.Analysis.ProductProfile,
		l.Analysis.CustomerFocus,
		l.Analysis.ShippingLocations,
		l.CreatedAt.UTC().Format(time.RFC3339),
	}
}
