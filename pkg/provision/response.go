package provision

import (
	"net/http"

	"github.com/getmockd/phonexml/pkg/phonexml"
)

// Error screen texts.
const (
	errorTitle  = "Backend System Error"
	errorPrompt = "Please try again"
)

// contentTypeHeader is the header key used in Response.Headers.
const contentTypeHeader = "content-type"

// Response is the transport-neutral response shape. JSON names follow the
// API Gateway HTTP API response payload.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// ContentType returns the response's content type.
func (r Response) ContentType() string {
	return r.Headers[contentTypeHeader]
}

func newResponse(body string) Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{contentTypeHeader: phonexml.ContentType},
		Body:       body,
	}
}

// Success serializes doc into a 200 response.
func Success(doc phonexml.Document) Response {
	return newResponse(phonexml.Serialize(doc))
}

// Failure renders err as an error screen. The status is still 200: phones
// ignore the status code and only show the body.
func Failure(err error) Response {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	doc := phonexml.NewText(phonexml.Header{Title: errorTitle, Prompt: errorPrompt}, msg)
	return newResponse(phonexml.Serialize(doc))
}
