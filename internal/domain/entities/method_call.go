package entities

// Method names accepted on the plugin channel.
const (
	MethodInitialize        = "initialize"
	MethodStartPayment      = "startPayment"
	MethodVerifyTransaction = "verifyTransaction"
)

// MethodCall is one invocation arriving from the host's channel layer.
type MethodCall struct {
	Method    string
	Arguments map[string]any
}

// Argument returns the named argument or nil.
func (c MethodCall) Argument(name string) any {
	if c.Arguments == nil {
		return nil
	}
	return c.Arguments[name]
}

// StringArgument returns the named argument when it is a string.
func (c MethodCall) StringArgument(name string) string {
	s, _ := c.Argument(name).(string)
	return s
}

type MethodResultKind string

const (
	MethodResultSuccess        MethodResultKind = "success"
	MethodResultError          MethodResultKind = "error"
	MethodResultNotImplemented MethodResultKind = "notImplemented"
)

// MethodResult mirrors a channel reply: success(value), error(code, message,
// details) or notImplemented.
type MethodResult struct {
	Kind    MethodResultKind
	Value   any
	Code    string
	Message string
	Details any
}

func MethodSuccess(value any) MethodResult {
	return MethodResult{Kind: MethodResultSuccess, Value: value}
}

func MethodError(code, message string, details any) MethodResult {
	return MethodResult{Kind: MethodResultError, Code: code, Message: message, Details: details}
}

func MethodNotImplemented() MethodResult {
	return MethodResult{Kind: MethodResultNotImplemented}
}

// PluginSettings is the session configuration stored by "initialize".
type PluginSettings struct {
	PublicKey string `json:"public_key"`
	Currency  string `json:"currency"`
	Country   string `json:"country"`
}
