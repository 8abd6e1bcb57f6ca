package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"load-route-service/internal/adapters/memory"
	"load-route-service/internal/api/dto"
	"load-route-service/internal/domain"
	"load-route-service/internal/graph"
	"load-route-service/internal/search"
	"load-route-service/internal/services"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := memory.NewLoadRepository([]domain.Load{
		{
			LoadID:          1,
			OriginCity:      "Null Island",
			Origin:          domain.Coordinate{Lat: 0, Lon: 0},
			DestinationCity: "East",
			Destination:     domain.Coordinate{Lat: 0, Lon: 1},
			Amount:          100,
			PickupAt:        time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	g, err := services.LoadGraph(context.Background(), repo, graph.Options{})
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}

	planner, err := services.NewRoutePlanner(g, search.DefaultParams(),
		services.WithResultStore(memory.NewResultStore()),
		services.WithWorkers(2),
	)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	return NewApp(planner)
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, b
}

func TestHealth(t *testing.T) {
	resp, body := do(t, newTestApp(t), http.MethodGet, "/health", "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Fatalf("body = %s", body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestGraphAndLoads(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/graph", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("graph status = %d", resp.StatusCode)
	}
	var stats dto.GraphStatsResponse
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if stats.Nodes != 2 || stats.Edges != 1 || stats.Origins != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	resp, body = do(t, app, http.MethodGet, "/loads", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("loads status = %d", resp.StatusCode)
	}
	var loads dto.ListLoadsResponse
	if err := json.Unmarshal(body, &loads); err != nil {
		t.Fatalf("decode loads: %v", err)
	}
	if len(loads.Loads) != 1 || loads.Loads[0].LoadID != 1 {
		t.Fatalf("loads = %+v", loads)
	}
	if loads.Loads[0].PickupDateTime != "2022-03-01T00:00:00Z" {
		t.Fatalf("pickup = %q", loads.Loads[0].PickupDateTime)
	}
}

func TestPlanRoutes(t *testing.T) {
	app := newTestApp(t)

	body := `{"trips":[
		{"input_trip_id":7,"start_latitude":0,"start_longitude":0,"start_time":"2022-03-01 08:00:00","max_destination_time":"2022-03-02 08:00:00"},
		{"input_trip_id":8,"start_latitude":0,"start_longitude":0,"start_time":"2022-03-01 08:00:00","max_destination_time":"2022-03-01 08:00:00"}
	]}`
	resp, b := do(t, app, http.MethodPost, "/routes", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, b)
	}

	var res dto.PlanRoutesResponse
	if err := json.Unmarshal(b, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(res.Results))
	}
	if res.Results[0].InputTripID != 7 || !slices.Equal(res.Results[0].LoadIDs, []int64{1}) {
		t.Fatalf("first result = %+v", res.Results[0])
	}
	if res.Results[0].ArriveAt != "2022-03-01 09:15:22" {
		t.Fatalf("arrive_at = %q, want 2022-03-01 09:15:22", res.Results[0].ArriveAt)
	}
	if res.Results[1].InputTripID != 8 || len(res.Results[1].LoadIDs) != 0 {
		t.Fatalf("second result = %+v", res.Results[1])
	}
	if !strings.Contains(string(b), `"load_ids":[]`) {
		t.Fatalf("empty route should encode as []: %s", b)
	}

	resp, b = do(t, app, http.MethodGet, "/routes/7", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d body = %s", resp.StatusCode, b)
	}
	var got dto.RouteResponse
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !slices.Equal(got.LoadIDs, []int64{1}) {
		t.Fatalf("stored route = %v", got.LoadIDs)
	}
}

func TestPlanRoutesRejectsBadInput(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]string{
		"not json":      `{`,
		"no trips":      `{"trips":[]}`,
		"missing id":    `{"trips":[{"start_latitude":0,"start_longitude":0,"start_time":"2022-03-01 08:00:00","max_destination_time":"2022-03-02 08:00:00"}]}`,
		"bad timestamp": `{"trips":[{"input_trip_id":1,"start_latitude":0,"start_longitude":0,"start_time":"2022-03-01T08:00:00Z","max_destination_time":"2022-03-02 08:00:00"}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, b := do(t, app, http.MethodPost, "/routes", body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d body = %s, want 400", resp.StatusCode, b)
			}
			if !strings.Contains(string(b), `"error"`) {
				t.Fatalf("missing error field: %s", b)
			}
		})
	}
}

func TestPlanRoutesDeadlineBeforeStartIsEmptyRoute(t *testing.T) {
	app := newTestApp(t)

	body := `{"trips":[
		{"input_trip_id":1,"start_latitude":0,"start_longitude":0,"start_time":"2022-03-02 08:00:00","max_destination_time":"2022-03-01 08:00:00"},
		{"input_trip_id":2,"start_latitude":0,"start_longitude":0,"start_time":"2022-03-01 08:00:00","max_destination_time":"2022-03-02 08:00:00"}
	]}`
	resp, b := do(t, app, http.MethodPost, "/routes", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body = %s, want 200", resp.StatusCode, b)
	}

	var res dto.PlanRoutesResponse
	if err := json.Unmarshal(b, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(res.Results))
	}
	if len(res.Results[0].LoadIDs) != 0 || res.Results[0].Error != "" {
		t.Fatalf("first result = %+v, want empty route", res.Results[0])
	}
	if !slices.Equal(res.Results[1].LoadIDs, []int64{1}) {
		t.Fatalf("second result = %+v", res.Results[1])
	}
}

func TestGetRouteErrors(t *testing.T) {
	app := newTestApp(t)

	if resp, _ := do(t, app, http.MethodGet, "/routes/abc", ""); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("non-numeric id status = %d, want 400", resp.StatusCode)
	}
	if resp, _ := do(t, app, http.MethodGet, "/routes/999", ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", resp.StatusCode)
	}
}

func TestAccessLogLine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	app := newTestApp(t)
	do(t, app, http.MethodGet, "/health", "")
	do(t, app, http.MethodGet, "/missing", "")

	ok := regexp.MustCompile(`method=GET path=/health status=200 bytes=[1-9][0-9]* dur=[0-9]+ms`)
	if !ok.MatchString(buf.String()) {
		t.Fatalf("health access line not found in:\n%s", buf.String())
	}
	notFound := regexp.MustCompile(`method=GET path=/missing status=404 bytes=[0-9]+ dur=[0-9]+ms`)
	if !notFound.MatchString(buf.String()) {
		t.Fatalf("404 access line not found in:\n%s", buf.String())
	}
}
