package jmap

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrMalformed marks a request body that is not a JSON object at all, as
// opposed to one missing a required field.
var ErrMalformed = errors.New("jmap: malformed request body")

// FieldError reports a required field that is missing or has the wrong
// shape. The field name is part of the user-facing validation error.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("jmap: field %q: %s", e.Field, e.Reason)
}

// Property enumerates the request fields this method knows about. Field
// names are resolved through the table once per key and matched by enum
// value from then on.
type Property int

const (
	PropertyUnknown Property = iota
	PropertyAccountID
	PropertyBlobID
)

var properties = map[string]Property{
	"accountId": PropertyAccountID,
	"blobId":    PropertyBlobID,
}

// ParseValidateRequest decodes a ValidateSieveScript request body. Unknown
// fields are skipped; a missing or non-string required field yields a
// *FieldError naming it.
func ParseValidateRequest(body []byte) (*ValidateSieveScriptRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}

	var req ValidateSieveScriptRequest
	var haveAccount, haveBlob bool
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected an object key", ErrMalformed)
		}

		switch properties[key] {
		case PropertyAccountID:
			req.AccountID, err = stringValue(dec, "accountId")
			haveAccount = true
		case PropertyBlobID:
			req.BlobID, err = stringValue(dec, "blobId")
			haveBlob = true
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err = dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !haveAccount {
		return nil, &FieldError{Field: "accountId", Reason: "missing"}
	}
	if !haveBlob {
		return nil, &FieldError{Field: "blobId", Reason: "missing"}
	}
	return &req, nil
}

// stringValue decodes the next value, requiring a non-empty string.
func stringValue(dec *json.Decoder, field string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", &FieldError{Field: field, Reason: "unreadable value"}
	}
	if delim, ok := tok.(json.Delim); ok {
		// Drain the nested value so the decoder stays positioned, then fail.
		if err := drainNested(dec, delim); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return "", &FieldError{Field: field, Reason: "expected a string"}
	}
	s, ok := tok.(string)
	if !ok {
		return "", &FieldError{Field: field, Reason: fmt.Sprintf("expected a string, got %v", tok)}
	}
	if s == "" {
		return "", &FieldError{Field: field, Reason: "must not be empty"}
	}
	return s, nil
}

// skipValue discards the next value, whatever its shape.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); ok {
		if err := drainNested(dec, delim); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return nil
}

// drainNested consumes tokens until the container opened by delim closes.
func drainNested(dec *json.Decoder, delim json.Delim) error {
	if delim != '{' && delim != '[' {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
