package http

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

var errMalformedXML = errors.New("malformed xml")

// xmlField extracts the character data of the first element named name from
// an XML document. The element may be the document root (<plan_id>3</plan_id>)
// or nested anywhere below it. Accepting the bare-root form is deliberate
// leniency: clients in the wild send both the wrapped document and the bare
// element, and rejecting the latter would break them for no gain. The second
// return reports whether the element was present at all; a malformed
// document fails with errMalformedXML.
func xmlField(body []byte, name string) (string, bool, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	sawAny := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false, errMalformedXML
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawAny = true

		if start.Name.Local != name {
			continue
		}

		var value struct {
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&value, &start); err != nil {
			return "", false, errMalformedXML
		}
		return value.Text, true, nil
	}

	if !sawAny {
		// No elements at all: empty or non-XML payload.
		return "", false, errMalformedXML
	}
	return "", false, nil
}
