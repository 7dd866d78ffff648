package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusOK, map[string]string{"foo": "bar"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "bar", result["foo"])
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusMethodNotAllowed, "method_not_allowed", "only GET is supported")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "method_not_allowed", result["error"])
	assert.Equal(t, "only GET is supported", result["message"])
}

func TestWriteOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteOK(rec, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteBody(rec, http.StatusOK, "text/xml; charset=ISO-8859-1", []byte{'<', 0xE9, '>'})

	assert.Equal(t, "text/xml; charset=ISO-8859-1", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{'<', 0xE9, '>'}, rec.Body.Bytes())
}

func TestFirstValues(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FirstValues(nil))
	assert.Equal(t, map[string]string{"a": "1", "B": "x"}, FirstValues(map[string][]string{
		"a":     {"1", "2"},
		"B":     {"x"},
		"empty": {},
	}))
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("uses the caller's id", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "abc-123")
		assert.Equal(t, "abc-123", RequestID(r))
	})

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "  ")

		id := RequestID(r)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.NotEqual(t, id, RequestID(r))
	})
}
