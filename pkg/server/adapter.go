package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/getmockd/phonexml/pkg/httputil"
	"github.com/getmockd/phonexml/pkg/phonexml"
	"github.com/getmockd/phonexml/pkg/provision"
)

// eventTimeLayout is the requestContext.time format of API Gateway events.
const eventTimeLayout = "02/Jan/2006:15:04:05 -0700"

// ToRequest converts an HTTP request into the event shape the handler
// consumes. Header names are lowercased and only the first value of each
// header and query key is kept. The Host is added as the "host" header.
// domainName overrides the request context domain name; empty means r.Host.
func ToRequest(r *http.Request, domainName, requestID string, now time.Time) *provision.Request {
	headers := make(map[string]string, len(r.Header)+1)
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[strings.ToLower(k)] = v[0]
		}
	}
	if r.Host != "" {
		headers["host"] = r.Host
	}

	var params map[string]string
	if op := r.PathValue("operation"); op != "" {
		params = map[string]string{"operation": op}
	}

	if domainName == "" {
		domainName = r.Host
	}

	routeKey := r.Pattern
	if routeKey == "" {
		routeKey = "$default"
	}

	return &provision.Request{
		Version:               "2.0",
		RouteKey:              routeKey,
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		PathParameters:        params,
		QueryStringParameters: httputil.FirstValues(r.URL.Query()),
		RequestContext: provision.RequestContext{
			DomainName: domainName,
			HTTP: provision.HTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  sourceIP(r.RemoteAddr),
				UserAgent: r.UserAgent(),
			},
			RequestID: requestID,
			RouteKey:  routeKey,
			Stage:     "$default",
			Time:      now.Format(eventTimeLayout),
			TimeEpoch: now.UnixMilli(),
		},
	}
}

func sourceIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// WriteResponse writes resp to w with the body transcoded to ISO-8859-1.
func WriteResponse(w http.ResponseWriter, resp provision.Response) error {
	body, err := phonexml.EncodeLatin1(resp.Body)
	if err != nil {
		return fmt.Errorf("encoding response body: %w", err)
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	httputil.WriteBody(w, resp.StatusCode, "", body)
	return nil
}
