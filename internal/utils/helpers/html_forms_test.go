package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildContactHTML_EscapesInput(t *testing.T) {
	out := BuildContactHTML("<b>Eve</b>", "eve@example.com", "line one\n<script>alert(1)</script>",
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, out, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.Contains(t, out, "line one<br>&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "01 Mar 2024 10:00 UTC")
}

func TestFieldsError(t *testing.T) {
	rec := httptest.NewRecorder()
	FieldsError(rec, http.StatusBadRequest, "validation failed", map[string]string{"title": "cannot be blank"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"validation failed","fields":{"title":"cannot be blank"}}`, rec.Body.String())
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]int{"n": 1})

	assert.JSONEq(t, `{"data":{"n":1}}`, rec.Body.String())
}
