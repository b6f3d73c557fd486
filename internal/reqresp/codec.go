package reqresp

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/avlasov/transcat/internal/transcaterr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeInput parses the top-level request blob from r. A malformed
// top-level shape is reported as transcaterr.KindInvalidInput, which the
// caller treats as fatal rather than a per-request failure.
func DecodeInput(r io.Reader) (*Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, transcaterr.Wrap(transcaterr.KindInvalidInput, err, "reqresp: decoding input blob")
	}

	return &in, nil
}

// EncodeOutput writes responses to w as the output blob's JSON array, in the
// order given (which must match the order the requests arrived in).
func EncodeOutput(w io.Writer, responses []Response) error {
	if responses == nil {
		responses = []Response{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(responses); err != nil {
		return transcaterr.Wrap(transcaterr.KindInternal, err, "reqresp: encoding output blob")
	}

	return nil
}

// NotFound builds the canonical "not found" error response for requestID.
func NotFound(requestID int) Response {
	return Response{RequestID: requestID, ErrorMessage: "not found"}
}
