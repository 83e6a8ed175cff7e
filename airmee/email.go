package airmee

import (
	"net"
	"regexp"
	"strings"
)

// Email validation mirrors the behaviour the provider's SDKs have always
// shipped: dot-atom or quoted local parts, ASCII only, and a domain that is
// either a bracketed IP literal or at least two labels whose last label is
// not all digits. TLDs are not checked against a whitelist.
var (
	localAtomPattern   = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+(\\.[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+)*$")
	domainLabelPattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)
	quotedLocalPattern = regexp.MustCompile(`^"[ -!#-[\]-~]+"$`)
	allDigitsPattern   = regexp.MustCompile(`^[0-9]+$`)
)

func validEmail(email string) bool {
	local, domain, ok := splitEmail(email)
	if !ok {
		return false
	}
	return validLocalPart(local) && validDomain(domain)
}

// splitEmail separates the local part from the domain. Quoted local parts may
// contain '@', so the split happens after the closing quote in that case.
func splitEmail(email string) (local, domain string, ok bool) {
	if strings.HasPrefix(email, `"`) {
		end := strings.Index(email[1:], `"`)
		if end < 0 {
			return "", "", false
		}
		local = email[:end+2]
		rest := email[end+2:]
		if !strings.HasPrefix(rest, "@") || strings.Count(rest[1:], "@") != 0 {
			return "", "", false
		}
		return local, rest[1:], true
	}

	if strings.Count(email, "@") != 1 {
		return "", "", false
	}
	at := strings.Index(email, "@")
	return email[:at], email[at+1:], true
}

func validLocalPart(local string) bool {
	if quotedLocalPattern.MatchString(local) {
		return true
	}
	return localAtomPattern.MatchString(local)
}

func validDomain(domain string) bool {
	// Bracketed IP literal, e.g. [123.123.123.123].
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		addr := strings.TrimSuffix(strings.TrimPrefix(domain, "["), "]")
		addr = strings.TrimPrefix(addr, "IPv6:")
		return net.ParseIP(addr) != nil
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !domainLabelPattern.MatchString(label) {
			return false
		}
	}
	// An unbracketed domain whose top label is numeric is a malformed IP,
	// not a hostname.
	return !allDigitsPattern.MatchString(labels[len(labels)-1])
}
