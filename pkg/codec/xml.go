// Package codec implements the wire encodings the acquirer adapters share:
// XML with explicit encoding declarations, form-urlencoding, the iyzico
// PKI-string serializer, and PAN masking/currency/amount/installment
// formatting tables.
package codec

import (
	"bytes"
	"encoding/xml"

	"golang.org/x/text/encoding/charmap"

	pkgerrors "vpos-orchestrator/pkg/errors"
)

// XMLBuild marshals v and prepends an XML declaration with the given
// encoding name ("UTF-8" or "ISO-8859-9"). For ISO-8859-9 the body bytes are
// transcoded from UTF-8 so the declaration matches the actual byte content —
// Garanti and YKB POSNET both reject UTF-8 bodies declared as ISO-8859-9.
func XMLBuild(v interface{}, encoding string) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, pkgerrors.ErrValidation.Wrap(err)
	}

	if encoding == "" || encoding == "UTF-8" {
		decl := []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		return append(decl, body...), nil
	}

	transcoded, err := charmap.ISO8859_9.NewEncoder().Bytes(body)
	if err != nil {
		return nil, pkgerrors.ErrCrypto.Wrap(err)
	}
	decl := []byte(`<?xml version="1.0" encoding="` + encoding + `"?>` + "\n")
	return append(decl, transcoded...), nil
}

// XMLParse decodes body (which may be ISO-8859-9 encoded, matching its own
// declaration) into v.
func XMLParse(body []byte, v interface{}) error {
	if err := decodeWithCharset(body, v); err != nil {
		return pkgerrors.ErrValidation.Wrap(err)
	}
	return nil
}

func decodeWithCharset(body []byte, v interface{}) error {
	// Detect the declared encoding; ISO-8859-9 bodies are transcoded to
	// UTF-8 before the standard decoder (which only understands UTF-8)
	// sees them.
	if bytes.Contains(body, []byte("ISO-8859-9")) {
		utf8Body, err := charmap.ISO8859_9.NewDecoder().Bytes(body)
		if err != nil {
			return err
		}
		body = utf8Body
	}
	return xml.Unmarshal(body, v)
}
