package usecase

import (
	"fmt"
	"net/url"
	"strings"
)

// MarketplaceDomains groups the three storefront hosts offered for one
// detected user language.
type MarketplaceDomains struct {
	Local  string
	Global string
	Other  string
}

const globalDomain = "www.amazon.com"

// DomainsForLanguage maps a user language to its marketplace hosts.
// Unrecognized codes get the default (English) row. The Other column is
// asymmetric on purpose: it reproduces the launch configuration, and must
// not be reshuffled without product sign-off.
func DomainsForLanguage(lang string) MarketplaceDomains {
	switch lang {
	case "ar":
		return MarketplaceDomains{Local: "www.amazon.sa", Global: globalDomain, Other: "www.amazon.fr"}
	case "fr":
		return MarketplaceDomains{Local: "www.amazon.fr", Global: globalDomain, Other: globalDomain}
	default:
		return MarketplaceDomains{Local: globalDomain, Global: globalDomain, Other: "www.amazon.fr"}
	}
}

// LinkBuilder builds marketplace search links and the internal redirect
// links that front them for click counting.
type LinkBuilder struct {
	baseURL string
	tag     string
}

// NewLinkBuilder creates a LinkBuilder. baseURL is this service's public
// origin; tag is the affiliate tag appended to every search link.
func NewLinkBuilder(baseURL, tag string) *LinkBuilder {
	return &LinkBuilder{
		baseURL: strings.TrimRight(baseURL, "/"),
		tag:     tag,
	}
}

// SearchLink returns the marketplace search URL for a product on the given
// storefront host.
func (b *LinkBuilder) SearchLink(product, domain string) string {
	return fmt.Sprintf("https://%s/s?k=%s&tag=%s", domain, escapeQuery(product), escapeQuery(b.tag))
}

// RedirectLink returns the internal /go URL that records the click before
// forwarding to SearchLink's output.
func (b *LinkBuilder) RedirectLink(product, domain, userID string) string {
	v := url.Values{}
	v.Set("product", product)
	v.Set("domain", domain)
	v.Set("uid", userID)
	return b.baseURL + "/go?" + v.Encode()
}

// escapeQuery percent-encodes a query value with %20 for spaces. The
// storefront publishes links in that form; url.QueryEscape alone would
// emit "+".
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
