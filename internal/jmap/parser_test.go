package jmap

import (
	"errors"
	"testing"
)

func TestParseValidateRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		body        string
		wantAccount string
		wantBlob    string
		wantField   string
		wantErr     bool
	}{
		{
			name:        "both fields",
			body:        `{"accountId":"a42","blobId":"blob_7"}`,
			wantAccount: "a42",
			wantBlob:    "blob_7",
		},
		{
			name:        "unknown fields ignored",
			body:        `{"accountId":"a1","future":{"nested":[1,2,{"x":true}]},"blobId":"b1","flag":null}`,
			wantAccount: "a1",
			wantBlob:    "b1",
		},
		{
			name:        "field order irrelevant",
			body:        `{"blobId":"b2","accountId":"a2"}`,
			wantAccount: "a2",
			wantBlob:    "b2",
		},
		{
			name:      "missing accountId",
			body:      `{"blobId":"b1"}`,
			wantField: "accountId",
		},
		{
			name:      "missing blobId",
			body:      `{"accountId":"a1"}`,
			wantField: "blobId",
		},
		{
			name:      "accountId wrong type",
			body:      `{"accountId":42,"blobId":"b1"}`,
			wantField: "accountId",
		},
		{
			name:      "blobId is an object",
			body:      `{"accountId":"a1","blobId":{"id":"b1"}}`,
			wantField: "blobId",
		},
		{
			name:      "empty accountId",
			body:      `{"accountId":"","blobId":"b1"}`,
			wantField: "accountId",
		},
		{
			name:    "not an object",
			body:    `["accountId","a1"]`,
			wantErr: true,
		},
		{
			name:    "truncated body",
			body:    `{"accountId":"a1",`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req, err := ParseValidateRequest([]byte(tc.body))
			switch {
			case tc.wantField != "":
				var fieldErr *FieldError
				if !errors.As(err, &fieldErr) {
					t.Fatalf("got err %v, want *FieldError", err)
				}
				if fieldErr.Field != tc.wantField {
					t.Fatalf("got field %q, want %q", fieldErr.Field, tc.wantField)
				}
			case tc.wantErr:
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("got err %v, want ErrMalformed", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if req.AccountID != tc.wantAccount || req.BlobID != tc.wantBlob {
					t.Fatalf("got %+v, want account %q blob %q", req, tc.wantAccount, tc.wantBlob)
				}
			}
		})
	}
}
