package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type sample struct {
	Open   bool   `json:"open" msgpack:"open"`
	Reason string `json:"reason" msgpack:"reason"`
}

func TestWriteData_JSON(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteData(w, req, http.StatusOK, sample{Open: true, Reason: "open"}, log)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["open"])
	assert.NotNil(t, response["metadata"])
	assert.Nil(t, response["error"])
}

func TestWriteData_Msgpack(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", ContentTypeMsgpack)
	w := httptest.NewRecorder()

	WriteData(w, req, http.StatusOK, sample{Open: false, Reason: "weekend"}, log)

	assert.Equal(t, ContentTypeMsgpack, w.Header().Get("Content-Type"))

	var response struct {
		Data     sample                 `msgpack:"data"`
		Metadata map[string]interface{} `msgpack:"metadata"`
	}
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "weekend", response.Data.Reason)
	assert.False(t, response.Data.Open)
	assert.Contains(t, response.Metadata, "timestamp")
}

func TestWriteError(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusForbidden, ErrorBody{
		Code:    818340127,
		Kind:    "OutsideBusinessHours",
		Message: "operation not allowed outside business hours",
	}, log)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errBody := response["error"].(map[string]interface{})
	assert.Equal(t, float64(818340127), errBody["code"])
	assert.Equal(t, "OutsideBusinessHours", errBody["kind"])
	assert.Nil(t, response["data"])
}
