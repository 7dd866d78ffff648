package provision

import (
	"fmt"

	"github.com/getmockd/phonexml/pkg/phonexml"
)

// Screen texts.
const (
	loginTitle        = "Login Demo"
	loginResultTitle  = "Login Demo Result"
	loginResultText   = "You are now logged in"
	unknownOperation  = "Unknown Operation"
	loginSubmissionTo = "login"
)

// loginFields are the fields of the login form, in display order.
var loginFields = []phonexml.InputItem{
	{DisplayName: "Username", QueryStringParam: "username", Flags: phonexml.InputText},
	{DisplayName: "Password", QueryStringParam: "password", Flags: phonexml.InputPassword},
	{DisplayName: "Phone Number", QueryStringParam: "phone", Flags: phonexml.InputTelephoneNumber},
}

// Dispatcher maps operations to documents. It performs no I/O and catches
// no errors; failures propagate to the caller.
type Dispatcher struct {
	// Scheme selects the scheme of generated self URLs.
	Scheme SchemePolicy
}

// Dispatch builds the document for op.
func (d Dispatcher) Dispatch(op Operation, req *Request) (phonexml.Document, error) {
	switch op {
	case OperationInit:
		u, err := ResolveSelfURL(req, loginSubmissionTo, d.Scheme)
		if err != nil {
			return nil, fmt.Errorf("building login form: %w", err)
		}
		fields := make([]phonexml.InputItem, len(loginFields))
		copy(fields, loginFields)
		return phonexml.NewInput(phonexml.Header{Title: loginTitle}, u.String(), fields...), nil

	case OperationLogin:
		// No credentials are checked; the result screen is a placeholder.
		return phonexml.NewText(phonexml.Header{Title: loginResultTitle}, loginResultText), nil

	default:
		return phonexml.NewText(phonexml.Header{Title: unknownOperation}, unknownOperation), nil
	}
}
