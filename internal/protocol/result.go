package protocol

import "fmt"

// Result bodies understood by the supervisor.
const (
	ResultOK   = "OK"
	ResultFail = "FAIL"
)

const readyToken = "READY"

// WriteReady tells the supervisor the listener can take the next event.
func WriteReady(c *Channel) error {
	return c.WriteLine(readyToken)
}

// WriteResult writes one length-prefixed result frame for the event just
// processed. The supervisor accepts the event on ResultOK and requeues it
// on ResultFail.
func WriteResult(c *Channel, body string) error {
	return c.writeString(fmt.Sprintf("RESULT %d\n%s", len(body), body))
}
