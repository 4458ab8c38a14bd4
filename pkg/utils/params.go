package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a non-empty path parameter.
func ParseIDParam(c *gin.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

// QueryList merges a single-value and a comma-separated query parameter.
func QueryList(c *gin.Context, single, multi string) []string {
	var out []string
	if v := strings.TrimSpace(c.Query(single)); v != "" {
		out = append(out, v)
	}
	for _, v := range strings.Split(c.Query(multi), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// QueryTime parses an optional RFC 3339 query parameter.
func QueryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be RFC 3339: %w", name, err)
	}
	return &t, nil
}

// QueryString returns a pointer to the trimmed value, or nil when absent.
func QueryString(c *gin.Context, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}
