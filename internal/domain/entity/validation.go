package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for source URLs.
const maxURLLength = 2048

// ValidateSourceURL validates the format of a submitted source URL.
// It checks that the URL is well-formed, uses an HTTP/HTTPS scheme, and has a host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateSourceURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "source_url", Message: "is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "source_url",
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "source_url", Message: "is not a valid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "source_url", Message: "must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "source_url", Message: "must have a valid host"}
	}

	return nil
}
