package wrapper

// ConfigError reports a wrapper declaration or evaluation that cannot be
// used: an unsupported declaration type, a missing wrapper method, or a
// method or function returning something other than a string, false, or nil.
type ConfigError struct {
	// Handler names the declaring handler when known.
	Handler string
	// Method names the wrapper method involved, when one was.
	Method string
	// Value is the offending declaration or return value.
	Value any
	// Reason is the human readable description.
	Reason string
}

func (e ConfigError) Error() string {
	msg := "wrapper: "
	if e.Handler != "" {
		msg += e.Handler + ": "
	}
	return msg + e.Reason
}
