package shiprocket

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestQuickShipNewOrders(t *testing.T) {
	c, _ := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			if got := r.URL.Query().Get("filter"); got != "new" {
				t.Errorf("filter = %q, want %q", got, "new")
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": 1, "shipments": []map[string]any{{"id": 11}}},
					{"id": 2, "shipments": []map[string]any{{"id": 12}, {"id": 13}}},
				},
			})
		case "/courier/assign/awb":
			json.NewEncoder(w).Encode(map[string]any{
				"awb_assign_status": 1,
				"response": map[string]any{
					"data": map[string]any{"courier_name": "Ekart", "awb_code": "AWB1"},
				},
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))

	summary, err := c.QuickShipNewOrders(context.Background(), 0)
	if err != nil {
		t.Fatalf("QuickShipNewOrders() error = %v", err)
	}
	if summary.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", summary.TotalOrders)
	}
	if summary.Shipped != 3 {
		t.Errorf("Shipped = %d, want 3", summary.Shipped)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}
}

func TestQuickShipNewOrders_NoOrders(t *testing.T) {
	c, _ := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))

	summary, err := c.QuickShipNewOrders(context.Background(), 0)
	if err != nil {
		t.Fatalf("QuickShipNewOrders() error = %v", err)
	}
	if summary.Message == "" {
		t.Error("expected a message for the empty case")
	}
	if summary.Shipped != 0 || summary.Failed != 0 {
		t.Errorf("Shipped/Failed = %d/%d, want 0/0", summary.Shipped, summary.Failed)
	}
}

func TestDownloadReadyLabels(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake label content")

	var srvURL string
	c, srv := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			if got := r.URL.Query().Get("filter"); got != "ready_to_ship" {
				t.Errorf("filter = %q, want %q", got, "ready_to_ship")
			}
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": 1, "shipments": []map[string]any{{"id": 1, "courier": "Ekart Logistics"}}},
					{"id": 2, "shipments": []map[string]any{{"id": 2, "courier": "Delhivery"}}},
					{"id": 3, "shipments": []map[string]any{{"id": 3, "courier": "Ekart Logistics"}}},
				},
			})
		case "/courier/generate/label":
			json.NewEncoder(w).Encode(map[string]any{
				"label_created": 1,
				"label_url":     srvURL + "/label.pdf",
			})
		case "/label.pdf":
			w.Write(pdfBytes)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	srvURL = srv.URL
	c.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

	outDir := t.TempDir()
	files, err := c.DownloadReadyLabels(context.Background(), outDir)
	if err != nil {
		t.Fatalf("DownloadReadyLabels() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}

	want := []struct {
		name  string
		count int
	}{
		{"2024-03-10_Ekart_labels.pdf", 2},
		{"2024-03-10_Delhivery_labels.pdf", 1},
	}
	for i, w := range want {
		if filepath.Base(files[i].Path) != w.name {
			t.Errorf("files[%d] = %s, want %s", i, filepath.Base(files[i].Path), w.name)
		}
		if files[i].Count != w.count {
			t.Errorf("files[%d].Count = %d, want %d", i, files[i].Count, w.count)
		}
		data, err := os.ReadFile(files[i].Path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", files[i].Path, err)
		}
		if string(data) != string(pdfBytes) {
			t.Errorf("files[%d] content mismatch", i)
		}
	}
}

func TestDownloadReadyLabels_SkipsFailedCourier(t *testing.T) {
	var srvURL string
	c, srv := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": 1, "shipments": []map[string]any{{"id": 1, "courier": "Ekart"}}},
					{"id": 2, "shipments": []map[string]any{{"id": 2, "courier": "Delhivery"}}},
				},
			})
		case "/courier/generate/label":
			var req shipmentIDsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if len(req.ShipmentID) > 0 && req.ShipmentID[0] == 2 {
				http.Error(w, `{"message":"label generation failed"}`, http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"label_created": 1,
				"label_url":     srvURL + "/label.pdf",
			})
		case "/label.pdf":
			w.Write([]byte("%PDF-ok"))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	srvURL = srv.URL
	c.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }

	outDir := t.TempDir()
	files, err := c.DownloadReadyLabels(context.Background(), outDir)
	if err != nil {
		t.Fatalf("DownloadReadyLabels() error = %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Courier != "Ekart" {
		t.Errorf("courier = %s, want Ekart", files[0].Courier)
	}

	// The failed courier must not leave a file behind.
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output dir has %d files, want 1", len(entries))
	}
}

func TestDownloadReadyLabels_NoOrders(t *testing.T) {
	c, _ := testClient(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))

	files, err := c.DownloadReadyLabels(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("DownloadReadyLabels() error = %v", err)
	}
	if files != nil {
		t.Errorf("got %d files, want none", len(files))
	}
}
