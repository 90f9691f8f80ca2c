package validation

import (
	"net/netip"
	"net/url"
	"strings"
)

var blockedProtocols = map[string]bool{
	"javascript": true,
	"data":       true,
	"file":       true,
	"vbscript":   true,
	"about":      true,
	"blob":       true,
}

var allowedProtocols = map[string]bool{
	"http":  true,
	"https": true,
}

type LinkValidator struct {
	maxURLLength    int
	allowPrivateIPs bool
}

func NewLinkValidator(maxURLLength int, allowPrivateIPs bool) *LinkValidator {
	return &LinkValidator{
		maxURLLength:    maxURLLength,
		allowPrivateIPs: allowPrivateIPs,
	}
}

func (v *LinkValidator) ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return ErrEmptyURL
	}

	if len(rawURL) > v.maxURLLength {
		return ErrURLTooLong
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURLFormat
	}

	scheme := strings.ToLower(parsed.Scheme)
	if blockedProtocols[scheme] {
		return ErrUnsafeProtocol
	}
	if !allowedProtocols[scheme] {
		return ErrInvalidURLFormat
	}

	if parsed.Host == "" {
		return ErrInvalidURLFormat
	}

	if !v.allowPrivateIPs {
		if err := validateHost(parsed.Host); err != nil {
			return err
		}
	}

	return nil
}

// validateHost rejects IP-literal hosts pointing at private or local ranges.
// Hostnames pass through untouched: no DNS resolution happens here.
func validateHost(host string) error {
	hostname := host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		if !strings.HasPrefix(host, "[") {
			hostname = host[:idx]
		}
	}

	hostname = strings.TrimPrefix(hostname, "[")
	hostname = strings.TrimSuffix(hostname, "]")
	if idx := strings.LastIndex(hostname, "]:"); idx != -1 {
		hostname = hostname[:idx]
	}

	addr, err := netip.ParseAddr(hostname)
	if err != nil {
		return nil
	}

	if addr.Is4In6() {
		addr = netip.AddrFrom4(addr.As4())
	}

	if addr.IsPrivate() ||
		addr.IsLoopback() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified() {
		return ErrPrivateIPNotAllowed
	}

	return nil
}
