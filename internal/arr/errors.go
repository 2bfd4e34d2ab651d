package arr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FaultCategory classifies the failure modes of an API call.
type FaultCategory string

const (
	// FaultTransport covers connectivity, DNS and timeout errors raised
	// before a response was received.
	FaultTransport FaultCategory = "TransportFault"

	// FaultStatus covers responses with a non-2xx status code.
	FaultStatus FaultCategory = "StatusFault"

	// FaultDecode covers response bodies that do not match the expected
	// JSON shape.
	FaultDecode FaultCategory = "DecodeFault"
)

// Fault is the error type raised by all client operations.
type Fault struct {
	Category   FaultCategory
	StatusCode int // set for status faults only
	Message    string
	Err        error // underlying cause, may be nil
}

func (f *Fault) Error() string {
	return f.Message
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// AsFault extracts a Fault from an error chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func transportFault(err error) *Fault {
	return &Fault{Category: FaultTransport, Message: err.Error(), Err: err}
}

func statusFault(code int, body string) *Fault {
	msg := fmt.Sprintf("%d %s", code, http.StatusText(code))
	if body = strings.TrimSpace(body); body != "" {
		msg = msg + ": " + body
	}
	return &Fault{Category: FaultStatus, StatusCode: code, Message: msg}
}

func decodeFault(err error) *Fault {
	return &Fault{Category: FaultDecode, Message: err.Error(), Err: err}
}
