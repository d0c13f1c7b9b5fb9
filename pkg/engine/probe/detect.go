package probe

import (
	"net/http"
	"slices"
	"strings"
	"usercheck/pkg/domain"
)

// wafFingerprints are body fragments served by common bot-protection walls.
var wafFingerprints = []string{ //nolint: gochecknoglobals
	".loading-spinner{visibility:hidden}body.no-js .challenge-running{display:none}",
	`<span id="challenge-error-text">`,
	"AwsWafIntegration.forceRefreshToken",
	`{return l.onPageView}}),Object.defineProperty(r,"perimeterxIdentifiers",{enumerable:`,
}

func blockedByWAF(body string) bool {
	for _, f := range wafFingerprints {
		if strings.Contains(body, f) {
			return true
		}
	}

	return false
}

// classify applies the site's error rules to a response. Every rule starts
// from Claimed; any rule finding evidence of absence yields Available.
func classify(site domain.Site, status int, body string) (domain.Status, string) {
	if len(site.ErrorTypes) == 0 {
		return domain.StatusUnknown, "site has no error type"
	}

	result := domain.StatusClaimed
	for _, t := range site.ErrorTypes {
		switch t {
		case domain.ErrorTypeMessage:
			for _, msg := range site.ErrorMessages {
				if strings.Contains(body, msg) {
					result = domain.StatusAvailable

					break
				}
			}
		case domain.ErrorTypeStatusCode:
			if slices.Contains(site.ErrorCodes, status) || status < 200 || status >= 300 {
				result = domain.StatusAvailable
			}
		case domain.ErrorTypeResponseURL:
			if status < 200 || status >= 300 {
				result = domain.StatusAvailable
			}
		default:
			return domain.StatusUnknown, "unknown error type " + string(t)
		}
	}

	return result, ""
}

// method picks the HTTP method for a probe.
func method(site domain.Site) string {
	if site.RequestMethod != "" {
		return strings.ToUpper(site.RequestMethod)
	}
	if len(site.ErrorTypes) == 1 && site.ErrorTypes[0] == domain.ErrorTypeStatusCode {
		return http.MethodHead
	}

	return http.MethodGet
}

func followsRedirects(site domain.Site) bool {
	return !slices.Contains(site.ErrorTypes, domain.ErrorTypeResponseURL)
}
