package result

// Code classifies a failure so transports can map it to a status without
// inspecting message text. Messages are for humans and may change; codes
// are the contract.
type Code string

const (
	CodeInvalid  Code = "invalid"
	CodeNotFound Code = "not_found"
	CodeConflict Code = "conflict"
	CodeInternal Code = "internal"
)

// Of is the uniform envelope every service operation returns. Callers
// branch on Success; expected failures never surface as raw errors.
type Of[T any] struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Code      Code           `json:"code,omitempty"`
	Result    T              `json:"result,omitempty"`
	Error     any            `json:"error,omitempty"`
	ExtraData map[string]any `json:"extraData,omitempty"`
}

func Ok[T any](value T) Of[T] {
	return Of[T]{Success: true, Message: "ok", Result: value}
}

func OkMsg[T any](value T, message string) Of[T] {
	return Of[T]{Success: true, Message: message, Result: value}
}

// Fail builds an unclassified failure. Expected failures should carry a
// concrete code via FailCode instead.
func Fail[T any](message string, err any) Of[T] {
	return Of[T]{Success: false, Message: message, Code: CodeInternal, Error: err}
}

// FailCode builds a failure classified by code.
func FailCode[T any](code Code, message string, err any) Of[T] {
	return Of[T]{Success: false, Message: message, Code: code, Error: err}
}

// FieldError attributes a validation or constraint failure to one input
// attribute.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FailFields wraps a field-error list as the envelope's error payload so a
// caller can render every invalid field at once.
func FailFields[T any](message string, fields []FieldError) Of[T] {
	return Of[T]{Success: false, Message: message, Code: CodeInvalid, Error: fields}
}

func (r Of[T]) WithExtra(key string, value any) Of[T] {
	if r.ExtraData == nil {
		r.ExtraData = make(map[string]any, 1)
	}
	r.ExtraData[key] = value
	return r
}
