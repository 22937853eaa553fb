package shiprocket

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestLabelURL_PollsUntilReady(t *testing.T) {
	old := labelPollDelay
	labelPollDelay = time.Millisecond
	t.Cleanup(func() { labelPollDelay = old })

	var calls atomic.Int32
	var labelURL string

	c, server := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courier/generate/label":
			// First response: accepted, PDF not rendered yet.
			if calls.Add(1) == 1 {
				fmt.Fprint(w, `{"label_created": 1, "label_url": ""}`)
				return
			}
			fmt.Fprintf(w, `{"label_created": 1, "label_url": %q}`, labelURL)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	labelURL = server.URL + "/files/label.pdf"

	got, err := c.LabelURL(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("LabelURL() error = %v", err)
	}
	if got != labelURL {
		t.Errorf("url = %s, want %s", got, labelURL)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 generate calls, got %d", calls.Load())
	}
}

func TestLabelURL_NoShipments(t *testing.T) {
	c, _ := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {}))
	if _, err := c.LabelURL(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty shipment list")
	}
}

// An HTTP failure from the generate endpoint must not be retried.
func TestLabelURL_FailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	if _, err := c.LabelURL(context.Background(), []int64{1}); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("failed call retried %d times, want 1 attempt", calls.Load())
	}
}

func TestDownloadLabels(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake label")

	var server string
	c, s := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courier/generate/label":
			fmt.Fprintf(w, `{"label_created": 1, "label_url": %q}`, server+"/files/label.pdf")
		case "/files/label.pdf":
			w.Write(pdfBytes)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	server = s.URL

	var buf bytes.Buffer
	if err := c.DownloadLabels(context.Background(), []int64{1}, &buf); err != nil {
		t.Fatalf("DownloadLabels() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), pdfBytes) {
		t.Errorf("downloaded %q, want %q", buf.Bytes(), pdfBytes)
	}
}
