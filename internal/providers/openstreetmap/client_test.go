package openstreetmap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		q := r.URL.Query()
		if q.Get("format") != "jsonv2" || q.Get("addressdetails") != "1" || q.Get("extratags") != "1" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("q") != "Moscow" || q.Get("limit") != "5" {
			t.Errorf("q/limit = %q/%q", q.Get("q"), q.Get("limit"))
		}
		_, _ = io.WriteString(w, `[{
			"place_id": 1234, "osm_id": 2555133, "lat": "55.7505412", "lon": "37.6174782",
			"importance": 0.88, "name": "Москва", "display_name": "Москва, Центральный федеральный округ, Россия",
			"address": {"city": "Москва", "state": "Москва", "country": "Россия", "country_code": "ru"},
			"extratags": {"timezone": "Europe/Moscow"}
		}]`)
	}))
	defer srv.Close()

	client := NewClient("horoscopus-test", slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithBaseURL(srv.URL), WithRate(1000))

	results, err := client.Search(context.Background(), "Moscow", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}
	if gotUA != "horoscopus-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	r := results[0]
	if r.PlaceId != 1234 || r.ExtraTags.Timezone != "Europe/Moscow" || r.Address.Locality() != "Москва" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestClient_Search_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("ua", slog.New(slog.NewTextHandler(io.Discard, nil)), WithBaseURL(srv.URL), WithRate(1000))
	if _, err := client.Search(context.Background(), "Moscow", 5); err == nil {
		t.Fatal("Search() expected error but got none")
	}
}

func TestClient_Search_CancelledWhileRateLimited(t *testing.T) {
	client := NewClient("ua", slog.New(slog.NewTextHandler(io.Discard, nil)), WithBaseURL("http://127.0.0.1:0"))
	// drain the single token so the next call has to wait
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Search(ctx, "Moscow", 5); err == nil {
		t.Fatal("Search() expected context error but got none")
	}
}

func TestAddress_Locality(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{"city wins", Address{City: "A", Town: "B"}, "A"},
		{"town", Address{Town: "B", Village: "C"}, "B"},
		{"village", Address{Village: "C"}, "C"},
		{"hamlet", Address{Hamlet: "D"}, "D"},
		{"none", Address{Country: "X"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Locality(); got != tt.want {
				t.Errorf("Locality() = %q, want %q", got, tt.want)
			}
		})
	}
}
