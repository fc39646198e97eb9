package grade

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/internal/resolve"
	"github.com/shipcube/leads-cli/pkg/anthropic"
)

const analyzePrompt = `You are an expert B2B Logistics Sales Strategist for Shipcube. You are analyzing a prospect company to determine if they need 3PL (Third Party Logistics) services.

Input Data:
Company Name: %s
Website Text: %s
Decision Maker: %s (%s)

Your Task:
Generate a JSON object with the following fields:

Required fields:
- qualification_grade (Number 1-10): strict grading based on 3PL fit.
- why_good (String): A strategic justification. Connect cause (e.g., funding, growth, product launch) to effect (need for logistics).
- pain_point (String): Diagnose the operational bottleneck. Look for 'delays', 'hiring ops', 'manual processes', 'compliance'. If no specific pain is found but they are small/growing, infer 'Scaling Friction'.
- icebreaker (String): A hyper-personalized opening line for an email to the decision maker.
- company_info (String): A 1-sentence summary of what they do.
- recent_updates (String): Summarize 1 relevant news fact or infer from text if possible.

Enrichment fields — DO NOT FABRICATE OR GUESS. Only extract information EXPLICITLY STATED in the website text; otherwise return "".
- social_media (String): Comma-separated links found.
- contact_details (String): Phone numbers or physical location.
- logistics_signals (String): Shipping/returns keywords (e.g., "Free Shipping", "30-day returns").
- brand_vibe (String): 2-3 words describing the tone.
- tech_stack (String): E-commerce platforms or tools mentioned (e.g., "Shopify", "Klaviyo").
- product_profile (String): Key logistics traits: "Perishable", "Fragile", "Heavy/Bulky", or "Standard".
- customer_focus (String): "B2B", "B2C", or "Both".
- shipping_locations (String): "US Only", "International", "Global", or "North America".
- employee_count (String): only if explicitly mentioned, exact phrasing from text.
- annual_revenue (String): only if explicitly mentioned, exact phrasing from text.
- company_size (String): "Startup", "Small Business", "Mid-Market", or "Enterprise" — only if directly stated.
- industry_tags (String): comma-separated, based on how they describe themselves.

Grading matrix:
- Grade 1-4: Dropshipping, no physical address, digital goods.
- Grade 5-7: Stable business, small team, no news.
- Grade 8-9: Growth signals, hiring ops, expanding markets.
- Grade 10: Supply chain failure signals, massive funding, direct 3PL match.

Return ONLY the JSON.`

const cleanNamePrompt = `You are a data cleaning assistant.
Task: Analyze the search result title and extract the company name.

Input Title: "%s"

Rules:
1. Determine if this title represents a specific COMPANY, BRAND, or WEBSITE.
2. If it is a generic list (e.g. "Top 10..."), a directory category, or purely informational, mark is_company=false.
3. Extract ONLY the brand/company name.
4. Remove SEO keywords, pipes, hyphens, "Home", "Welcome to".

Examples:
"Polish Vitamins & Minerals - Daily Wellness Supplements USA ..." -> {"company_name": "Polish Vitamins & Minerals", "is_company": true}
"Best 10 Running Shoes in 2025" -> {"company_name": "", "is_company": false}
"Amazon.com: Nike Shoes" -> {"company_name": "Nike", "is_company": true}

Output JSON:
{"company_name": "string", "is_company": boolean}`

const extractPersonPrompt = `You are an expert lead researcher.
Task: Extract the key decision maker and their role from the text.

Input Text:
%s

Rules:
1. Find the highest ranking person (CEO, Founder, Owner, President).
2. If not found, find high level ops (Director of Ops, Logistics Manager).
3. If not found, find ANY specific contact person listed.
4. Ignore generic placeholder names.
5. Return JSON only.

Output JSON:
{"first_name": "String", "last_name": "String", "title": "String", "confidence": "High/Medium/Low"}
or {} if no specific person found.`

const keywordsPrompt = `You are an expert SEO and Lead Generation Specialist for a 3PL (logistics) company.
Your goal is to find e-commerce brands that match the following Ideal Customer Profile (ICP).

ICP DESCRIPTION: "%s"
TARGET GEOGRAPHY: %s
TARGET INDUSTRY: %s

TASK:
Generate a JSON list of 50-100 high-intent search keywords to find these specific companies.%s

CRITERIA:
1. Target "storefront" intent (companies selling products), NOT informational articles.
2. Use specific niches (e.g., instead of "clothing", use "sustainable organic cotton baby clothes USA").
3. Include "Shopify", "DTC", "Direct to Consumer", "Online Store", "Official Site" variations.
4. Focus on products that are shippable (physical goods).
5. Exclude terms likely to find dropshippers if the ICP implies established brands.

Return ONLY a JSON object with a key "keywords" containing the list of strings.`

// ClaudeGrader implements Grader on the Anthropic API. Fast extraction
// tasks run on the haiku model; lead analysis runs on the grade model.
type ClaudeGrader struct {
	client     anthropic.Client
	haikuModel string
	gradeModel string
}

// NewClaudeGrader creates a ClaudeGrader.
func NewClaudeGrader(client anthropic.Client, haikuModel, gradeModel string) *ClaudeGrader {
	return &ClaudeGrader{
		client:     client,
		haikuModel: haikuModel,
		gradeModel: gradeModel,
	}
}

// analysisPayload mirrors model.Analysis with a float grade, since the
// model sometimes returns "8.0" instead of "8".
type analysisPayload struct {
	QualificationGrade float64 `json:"qualification_grade"`
	CompanyInfo        string  `json:"company_info"`
	WhyGood            string  `json:"why_good"`
	PainPoint          string  `json:"pain_point"`
	Icebreaker         string  `json:"icebreaker"`
	RecentUpdates      string  `json:"recent_updates"`
	EmployeeCount      string  `json:"employee_count"`
	AnnualRevenue      string  `json:"annual_revenue"`
	CompanySize        string  `json:"company_size"`
	IndustryTags       string  `json:"industry_tags"`
	SocialMedia        string  `json:"social_media"`
	ContactDetails     string  `json:"contact_details"`
	LogisticsSignals   string  `json:"logistics_signals"`
	BrandVibe          string  `json:"brand_vibe"`
	TechStack          string  `json:"tech_stack"`
	ProductProfile     string  `json:"product_profile"`
	CustomerFocus      string  `json:"customer_focus"`
	ShippingLocations  string  `json:"shipping_locations"`
}

func (g *ClaudeGrader) AnalyzeLead(ctx context.Context, companyName, websiteText string, dm *model.DecisionMaker) (*model.Analysis, error) {
	dmName := "Prospect"
	dmTitle := "Founder"
	if dm != nil {
		if n := strings.TrimSpace(dm.FullName()); n != "" {
			dmName = n
		}
		if dm.Title != "" {
			dmTitle = dm.Title
		}
	}

	if len(websiteText) > 15000 {
		websiteText = websiteText[:15000]
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.gradeModel,
		MaxTokens: 2048,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(analyzePrompt, companyName, websiteText, dmName, dmTitle)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "grade: analyze lead")
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &payload); err != nil {
		return nil, eris.Wrap(err, "grade: parse analysis json")
	}

	return &model.Analysis{
		QualificationGrade: int(payload.QualificationGrade),
		CompanyInfo:        payload.CompanyInfo,
		WhyGood:            payload.WhyGood,
		PainPoint:          payload.PainPoint,
		Icebreaker:         payload.Icebreaker,
		RecentUpdates:      payload.RecentUpdates,
		EmployeeCount:      payload.EmployeeCount,
		AnnualRevenue:      payload.AnnualRevenue,
		CompanySize:        payload.CompanySize,
		IndustryTags:       payload.IndustryTags,
		SocialMedia:        payload.SocialMedia,
		ContactDetails:     payload.ContactDetails,
		LogisticsSignals:   payload.LogisticsSignals,
		BrandVibe:          payload.BrandVibe,
		TechStack:          payload.TechStack,
		ProductProfile:     payload.ProductProfile,
		CustomerFocus:      payload.CustomerFocus,
		ShippingLocations:  payload.ShippingLocations,
	}, nil
}

func (g *ClaudeGrader) CleanCompanyName(ctx context.Context, rawTitle string, strict bool) (string, error) {
	if rawTitle == "" {
		return "", nil
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.haikuModel,
		MaxTokens: 256,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(cleanNamePrompt, rawTitle)},
		},
	})
	if err != nil {
		// The cleaner is advisory: fall back to a mechanical split so a
		// transient model failure doesn't discard the candidate.
		zap.L().Warn("grade: name clean failed, using fallback", zap.Error(err))
		return fallbackCleanName(rawTitle), nil
	}

	var payload struct {
		CompanyName string `json:"company_name"`
		IsCompany   *bool  `json:"is_company"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &payload); err != nil {
		zap.L().Warn("grade: name clean parse failed, using fallback", zap.Error(err))
		return fallbackCleanName(rawTitle), nil
	}

	isCompany := payload.IsCompany == nil || *payload.IsCompany
	if strict && !isCompany {
		zap.L().Info("grade: title is not a company", zap.String("title", rawTitle))
		return "", nil
	}

	if name := strings.TrimSpace(payload.CompanyName); name != "" {
		return name, nil
	}
	return strings.TrimSpace(strings.SplitN(rawTitle, "|", 2)[0]), nil
}

func fallbackCleanName(rawTitle string) string {
	name := strings.SplitN(rawTitle, "|", 2)[0]
	name = strings.SplitN(name, "-", 2)[0]
	return strings.TrimSpace(name)
}

func (g *ClaudeGrader) ExtractPerson(ctx context.Context, text, companyName string) (*model.DecisionMaker, error) {
	if len(text) < 100 {
		return nil, nil
	}
	if len(text) > 10000 {
		text = text[:10000]
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.haikuModel,
		MaxTokens: 256,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(extractPersonPrompt, text)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "grade: extract person")
	}

	var payload struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Title     string `json:"title"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &payload); err != nil {
		return nil, eris.Wrap(err, "grade: parse person json")
	}

	first := strings.TrimSpace(payload.FirstName)
	if first == "" {
		return nil, nil
	}
	if !resolve.ValidFirstName(first, companyName) {
		zap.L().Info("grade: rejected extracted name", zap.String("name", first))
		return nil, nil
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = "Contact"
	}

	return &model.DecisionMaker{
		FirstName: first,
		LastName:  strings.TrimSpace(payload.LastName),
		Title:     title,
	}, nil
}

func (g *ClaudeGrader) GenerateKeywords(ctx context.Context, icp model.ICP, variationSeed int) ([]string, error) {
	variation := ""
	if variationSeed > 0 {
		variation = fmt.Sprintf("\nIMPORTANT: This is variation #%d. Generate DIFFERENT keywords than previous runs, exploring alternative angles, synonyms, and related niches.", variationSeed)
	}

	geo := icp.Geography
	if geo == "" {
		geo = "USA"
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.haikuModel,
		MaxTokens: 4096,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(keywordsPrompt, icp.Description, geo, icp.Industry, variation)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "grade: generate keywords")
	}

	var payload struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &payload); err != nil {
		return nil, eris.Wrap(err, "grade: parse keywords json")
	}

	zap.L().Info("grade: generated keywords",
		zap.Int("count", len(payload.Keywords)),
		zap.String("industry", icp.Industry),
	)
	return payload.Keywords, nil
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
