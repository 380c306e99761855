// Package fetch - platform.go provides platform detection and platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known scholar or author page platform.
type Platform string

const (
	// PlatformGoogleScholar is a Google Scholar author page
	PlatformGoogleScholar Platform = "google_scholar"
	// PlatformORCID is an ORCID record page
	PlatformORCID Platform = "orcid"
	// PlatformResearchGate is a ResearchGate profile page
	PlatformResearchGate Platform = "researchgate"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the author page platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "scholar.google") {
		return PlatformGoogleScholar
	}

	if strings.Contains(host, "orcid.org") {
		return PlatformORCID
	}

	if strings.Contains(host, "researchgate.net") {
		return PlatformResearchGate
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGoogleScholar:
		return []string{
			"#gsc_bdy", // Profile body: name, affiliation, publication table
			"#gsc_prf", // Profile header fallback
			"#gs_top",  // Page container
			"#gsc_art", // Publication list only
		}
	case PlatformORCID:
		return []string{
			"#main",
			".workspace-section",
			"app-root",
			".content",
		}
	case PlatformResearchGate:
		return []string{
			".profile-header",
			".nova-legacy-o-stack",
			"main",
			".content",
		}
	default:
		return AuthorPageSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all platforms
	common := []string{
		// Login and signup prompts
		"form",
		".login-prompt",
		".signup-banner",
		".auth-modal",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	// Platform-specific noise selectors
	switch platform {
	case PlatformGoogleScholar:
		return append(common,
			"#gs_gb",      // Top navigation bar
			"#gsc_md_fol", // Follow dialog
			"#gsc_lwp",    // Pagination controls
			".gs_md_wnw",  // Modal windows
		)
	case PlatformORCID:
		return append(common,
			".banner",
			".topbar",
			"app-footer",
		)
	case PlatformResearchGate:
		return append(common,
			".js-header",
			".nova-legacy-c-modal",
			".request-fulltext",
		)
	default:
		return common
	}
}
