package http

import (
	"encoding/xml"
	"net/http"

	"github.com/telemost/accountd/pkg/httpx"
)

// messageResponse is the machine-readable body every failure (and most
// successes) carries. Error bodies are JSON on every endpoint, including
// the XML ones - an inherited asymmetry that existing clients depend on.
type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, messageResponse{Message: msg})
}

// xmlMessage is the <message> success document used by the XML endpoints.
type xmlMessage struct {
	XMLName xml.Name `xml:"message"`
	Text    string   `xml:",chardata"`
}

func writeXMLMessage(w http.ResponseWriter, msg string) {
	body, err := xml.Marshal(xmlMessage{Text: msg})
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.WriteXML(w, http.StatusOK, body)
}
