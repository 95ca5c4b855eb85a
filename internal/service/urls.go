package service

import (
	"net/url"
	"strings"

	"seo_checker/internal/pkg/errors"
)

// parseUrl accepts absolute http and https URLs only.
func parseUrl(userURL string) (*url.URL, error) {
	baseURL, err := url.Parse(userURL)
	if err != nil {
		return nil, errors.Wrap(err, `failed to parse url`)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, errors.New("url is invalid")
	}
	if baseURL.Host == "" {
		return nil, errors.New("url has no host")
	}
	return baseURL, nil
}

// canonical drops the fragment so that page.html and page.html#top are
// the same visit.
func canonical(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

// isInternal reports whether a resolved link stays on the crawled site:
// no host at all, or exactly the start host.
func isInternal(u *url.URL, startHost string) bool {
	return u.Host == "" || u.Host == startHost
}

// resolve parses href against base the way browsers read an href
// attribute: surrounding spaces and C0 controls are trimmed and any tab,
// CR or LF inside is removed.
func resolve(base *url.URL, href string) (*url.URL, error) {
	return base.Parse(cleanHref(href))
}

func cleanHref(href string) string {
	href = strings.TrimFunc(href, func(r rune) bool { return r <= ' ' })
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\r', '\n':
			return -1
		}
		return r
	}, href)
}
