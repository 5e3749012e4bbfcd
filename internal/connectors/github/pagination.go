package github

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// linkRegex matches Link header entries: <url>; rel="type".
var linkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// ParseLinks extracts all URLs from a Link header by relationship type.
func ParseLinks(linkHeader string) map[string]string {
	links := make(map[string]string)
	if linkHeader == "" {
		return links
	}

	for _, part := range strings.Split(linkHeader, ",") {
		matches := linkRegex.FindStringSubmatch(strings.TrimSpace(part))
		if len(matches) == 3 {
			links[matches[2]] = matches[1]
		}
	}
	return links
}

// HasNextPage checks if the Link header advertises rel="next".
func HasNextPage(linkHeader string) bool {
	return ParseLinks(linkHeader)["next"] != ""
}

// PageOf returns the page query parameter of the rel link, or 0.
func PageOf(linkHeader, rel string) int {
	raw := ParseLinks(linkHeader)[rel]
	if raw == "" {
		return 0
	}
	u, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return 0
	}
	return n
}
