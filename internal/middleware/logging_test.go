package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode: got %d, want 404", rw.statusCode)
	}

	// Second WriteHeader must not overwrite the recorded status.
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusNotFound {
		t.Errorf("statusCode after second WriteHeader: got %d, want 404", rw.statusCode)
	}
}

func TestResponseWriterDefaultsTo200OnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	if _, err := rw.Write([]byte("body")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if rw.statusCode != http.StatusOK {
		t.Errorf("statusCode: got %d, want 200", rw.statusCode)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	next, called := okHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)

	Logger(next).ServeHTTP(rec, req)

	if !*called {
		t.Error("next handler should be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}
