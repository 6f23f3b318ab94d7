package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// unmarshal http response which has json content.
//
// args:
//   - op: description of the operation, used in error reports.
//   - resp: http response to be processed.
//   - v: value which response should be.
//
// return:
//
//	error if...
//	- response body cannot be read
//	- response body is not shaped of v
//	- status code is not successful; reported as *RemoteError
func unmarshalJsonResponse[T any](op string, resp *http.Response, v *T) error {
	scr := StatusCodeRangeOf(resp.StatusCode)
	if scr <= Status2xx {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("%s: unexpected response body (status code = %d): %w", op, resp.StatusCode, err)
		}
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: op, Status: resp.StatusCode, Cause: err}
	}
	return &RemoteError{Op: op, Status: resp.StatusCode, Body: body}
}

// drain reads a response body off and closes it, so the connection can
// be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
