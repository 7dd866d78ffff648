package provision

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingHost is returned when no host for the self URL can be determined.
var ErrMissingHost = errors.New("cannot determine host: no forwarded-for header, domain name or host header")

// ErrInvalidSchemePolicy is returned for an unrecognized SchemePolicy.
var ErrInvalidSchemePolicy = errors.New("invalid self URL scheme policy")

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"

	// localHost is used for plain HTTP requests without a Host header, i.e.
	// local testing outside any proxy.
	localHost = "127.0.0.1:3000"
)

// SchemePolicy selects the scheme written into self URLs.
type SchemePolicy string

const (
	// SchemePlain always emits http, whatever the inbound scheme. Phones
	// only need host and port to reach the next screen. This is the default.
	SchemePlain SchemePolicy = "plain"

	// SchemeForwarded emits the scheme the request arrived with.
	SchemeForwarded SchemePolicy = "forwarded"
)

// ParseSchemePolicy parses a policy name. The empty string is SchemePlain.
func ParseSchemePolicy(s string) (SchemePolicy, error) {
	switch p := SchemePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", SchemePlain:
		return SchemePlain, nil
	case SchemeForwarded:
		return SchemeForwarded, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSchemePolicy, s)
	}
}

// ResolveSelfURL reconstructs an absolute URL pointing back at this service,
// with subPath as its path and every query parameter of req appended.
//
// The inbound scheme comes from the forwarded-proto header and defaults to
// https. It decides where the host comes from: plain http requests use the
// Host header (falling back to 127.0.0.1:3000); anything else uses the
// forwarded-for header, then the request's domain name, then the Host header,
// and never defaults to loopback. Query parameters are written in key order.
func ResolveSelfURL(req *Request, subPath string, policy SchemePolicy) (*url.URL, error) {
	proto := req.header(schemeHTTPS, forwardedProtoKeys...)

	var host string
	if proto == schemeHTTP {
		host = req.header(localHost, hostKeys...)
	} else {
		host = firstForwarded(req.header("", forwardedForKeys...))
		if host == "" {
			host = req.RequestContext.DomainName
		}
		if host == "" {
			host = req.header("", hostKeys...)
		}
		if host == "" {
			return nil, ErrMissingHost
		}
	}

	scheme := schemeHTTP
	if policy == SchemeForwarded && proto == schemeHTTPS {
		scheme = schemeHTTPS
	}

	u := &url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   "/" + strings.TrimPrefix(subPath, "/"),
	}

	if len(req.QueryStringParameters) > 0 {
		q := make(url.Values, len(req.QueryStringParameters))
		for k, v := range req.QueryStringParameters {
			q.Add(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u, nil
}

// firstForwarded returns the first address of a forwarded-for list, the one
// closest to the client.
func firstForwarded(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
