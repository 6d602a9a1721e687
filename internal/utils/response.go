package utils

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ContentTypeMsgpack is the media type clients send in Accept to get msgpack
const ContentTypeMsgpack = "application/msgpack"

// Envelope is the response body shape shared by all API handlers
type Envelope struct {
	Data     interface{}            `json:"data,omitempty" msgpack:"data,omitempty"`
	Error    *ErrorBody             `json:"error,omitempty" msgpack:"error,omitempty"`
	Metadata map[string]interface{} `json:"metadata" msgpack:"metadata"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    uint32 `json:"code,omitempty" msgpack:"code,omitempty"`
	Kind    string `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Message string `json:"message" msgpack:"message"`
}

// WantsMsgpack reports whether the client asked for a msgpack body
func WantsMsgpack(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), ContentTypeMsgpack)
}

// WriteData writes data wrapped in an Envelope, honouring Accept
func WriteData(w http.ResponseWriter, r *http.Request, status int, data interface{}, log zerolog.Logger) {
	write(w, r, status, Envelope{Data: data, Metadata: metadata()}, log)
}

// WriteError writes an error Envelope, honouring Accept
func WriteError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody, log zerolog.Logger) {
	write(w, r, status, Envelope{Error: &body, Metadata: metadata()}, log)
}

func metadata() map[string]interface{} {
	return map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
	}
}

func write(w http.ResponseWriter, r *http.Request, status int, env Envelope, log zerolog.Logger) {
	if r != nil && WantsMsgpack(r) {
		body, err := msgpack.Marshal(env)
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode msgpack response")
			http.Error(w, "encoding failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentTypeMsgpack)
		w.WriteHeader(status)
		if _, err := w.Write(body); err != nil {
			log.Error().Err(err).Msg("Failed to write msgpack response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
