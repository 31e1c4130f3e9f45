package entity

import (
	"fmt"
	"net/url"
	"time"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// DateLayout is the calendar date format used as the briefing key.
const DateLayout = "2006-01-02"

// ValidateURL validates the format of a feed URL.
// The service runs on a trusted home network, so private hosts are allowed.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is invalid"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateDate reports whether date is a real calendar date in YYYY-MM-DD form.
// Dates are used as storage keys, so anything else is rejected.
func ValidateDate(date string) error {
	if len(date) != len(DateLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
