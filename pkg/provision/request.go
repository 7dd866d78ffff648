package provision

// Request is an inbound event. JSON names follow the API Gateway HTTP API
// payload format 2.0. Handlers treat a Request as read-only.
type Request struct {
	Version               string            `json:"version,omitempty"`
	RouteKey              string            `json:"routeKey,omitempty"`
	RawPath               string            `json:"rawPath,omitempty"`
	RawQueryString        string            `json:"rawQueryString,omitempty"`
	Headers               map[string]string `json:"headers,omitempty"`
	PathParameters        map[string]string `json:"pathParameters,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
	RequestContext        RequestContext    `json:"requestContext"`
	Body                  string            `json:"body,omitempty"`
	IsBase64Encoded       bool              `json:"isBase64Encoded,omitempty"`
}

// RequestContext is the platform metadata attached to a Request.
type RequestContext struct {
	AccountID    string          `json:"accountId,omitempty"`
	APIID        string          `json:"apiId,omitempty"`
	DomainName   string          `json:"domainName,omitempty"`
	DomainPrefix string          `json:"domainPrefix,omitempty"`
	HTTP         HTTPDescription `json:"http"`
	RequestID    string          `json:"requestId,omitempty"`
	RouteKey     string          `json:"routeKey,omitempty"`
	Stage        string          `json:"stage,omitempty"`
	Time         string          `json:"time,omitempty"`
	TimeEpoch    int64           `json:"timeEpoch,omitempty"`
}

// HTTPDescription describes the HTTP request behind an event.
type HTTPDescription struct {
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	Protocol  string `json:"protocol,omitempty"`
	SourceIP  string `json:"sourceIp,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Header names consulted by the resolver, in lookup order.
var (
	forwardedProtoKeys = []string{"x-forwarded-proto", "X-Forwarded-Proto"}
	forwardedForKeys   = []string{"x-forwarded-for", "X-Forwarded-For"}
	hostKeys           = []string{"host", "Host"}
)

// header returns the value of the first key present in r.Headers, or def if
// none is. Gateways deliver either spelling depending on the integration.
func (r *Request) header(def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := r.Headers[k]; ok && v != "" {
			return v
		}
	}
	return def
}

// pathParam returns a path parameter and whether it was present.
func (r *Request) pathParam(name string) (string, bool) {
	v, ok := r.PathParameters[name]
	return v, ok
}
