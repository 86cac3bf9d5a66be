package proxy

// HttpMethod is an enum of the standard Http Methods.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var httpMethodNames = [...]string{
	"GET",
	"HEAD",
	"POST",
	"PUT",
	"DELETE",
	"CONNECT",
	"OPTIONS",
	"TRACE",
	"PATCH",
}

// String returns the method name as it appears on the wire.
func (method HttpMethod) String() string {
	if method < 0 || int(method) >= len(httpMethodNames) {
		return "UNKNOWN"
	}

	return httpMethodNames[method]
}
