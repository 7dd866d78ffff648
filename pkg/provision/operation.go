package provision

// Operation is the logical action requested by the phone.
type Operation string

// Operations.
const (
	OperationInit    Operation = "init"
	OperationLogin   Operation = "login"
	OperationUnknown Operation = "unknown"
)

// operationParam is the path parameter carrying the operation name.
const operationParam = "operation"

// operations maps path values to operations. Matching is case-sensitive.
var operations = map[string]Operation{
	string(OperationInit):    OperationInit,
	string(OperationLogin):   OperationLogin,
	string(OperationUnknown): OperationUnknown,
}

// ResolveOperation returns the operation addressed by req. A request without
// an operation path parameter is for the root path and resolves to
// OperationInit; a value that names no operation, including a present but
// empty value, resolves to OperationUnknown.
func ResolveOperation(req *Request) Operation {
	raw, ok := req.pathParam(operationParam)
	if !ok {
		return OperationInit
	}
	if op, ok := operations[raw]; ok {
		return op
	}
	return OperationUnknown
}

// String implements fmt.Stringer.
func (o Operation) String() string {
	return string(o)
}
