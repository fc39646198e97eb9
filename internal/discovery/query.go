// Package discovery finds candidate companies via keyword search, broad
// storefront search, and technology-profile lookups.
package discovery

import (
	"fmt"
	"strings"
)

// Sites that pollute storefront searches with documents, social pages,
// and marketplaces rather than company websites.
var noiseSites = []string{
	"scribd.com", "slideshare.net", "facebook.com",
	"instagram.com", "yelp.com",
	"pdfcoffee.com", "coursehero.com", "issuu.com", "pinterest.com",
}

// tldPriority biases results toward company-owned TLDs.
const tldPriority = "(site:.com | site:.io | site:.co | site:.net)"

func siteExclusions() string {
	parts := make([]string, len(noiseSites))
	for i, site := range noiseSites {
		parts[i] = "-site:" + site
	}
	return strings.Join(parts, " ")
}

// DiscoveryQuery builds the market-specific storefront discovery query
// for a keyword. Unknown markets return an empty string.
func DiscoveryQuery(keyword, market string) string {
	switch market {
	case "USA":
		return fmt.Sprintf(
			`"%s" ("add to cart" OR "checkout" OR "cart" OR "basket") %s -inurl:blog -inurl:news -inurl:article -site:wikipedia.org -site:amazon.com -site:ebay.com -site:etsy.com -site:tiktok.com -site:youtube.com`,
			keyword, siteExclusions(),
		)
	case "UAE":
		return fmt.Sprintf(
			`site:.ae "%s" ("add to cart" OR "powered by shopify" OR "delivery") %s -inurl:blog -inurl:news -site:amazon.ae -site:noon.com`,
			keyword, siteExclusions(),
		)
	default:
		return ""
	}
}

// KeywordQuery builds the lighter storefront query used during shuffled
// keyword sweeps.
func KeywordQuery(keyword string) string {
	return fmt.Sprintf(
		`"%s" ("add to cart" OR "checkout" OR "shop now") %s -inurl:blog`,
		keyword, siteExclusions(),
	)
}

// BroadQuery builds a market-wide storefront query independent of any
// keyword. Unknown markets return an empty string.
func BroadQuery(market string) string {
	switch market {
	case "USA":
		return fmt.Sprintf(
			`site:.com "powered by shopify" ("add to cart" OR "shop now") %s -site:myshopify.com -inurl:blog -inurl:news -site:amazon.com -site:ebay.com -site:etsy.com -site:pinterest.com -site:tiktok.com -site:youtube.com`,
			siteExclusions(),
		)
	case "UAE":
		return fmt.Sprintf(
			`site:.ae "powered by shopify" ("add to cart" OR "checkout") %s -inurl:blog -inurl:news`,
			siteExclusions(),
		)
	default:
		return ""
	}
}

// EnrichmentQuery builds the query used to find the official website of
// a known company by name.
func EnrichmentQuery(companyName string) string {
	return fmt.Sprintf(`"%s" official website %s %s`, companyName, siteExclusions(), tldPriority)
}
