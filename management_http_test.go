package benchreporter_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	fiber "github.com/gofiber/fiber/v3"
	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchreporter"
)

// TestManagementHTTP_Endpoints spins up the management HTTP server on an ephemeral port
// and walks the baseline lifecycle through it.
func TestManagementHTTP_Endpoints(t *testing.T) {
	ctx := context.Background()

	p, err := benchreporter.New()
	assert.NoError(t, err)

	srv := benchreporter.NewManagementHTTPServer("127.0.0.1:0")
	err = srv.Start(ctx, p)
	assert.NoError(t, err)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	// wait briefly for listener
	time.Sleep(30 * time.Millisecond)

	addr := srv.Address()
	assert.True(t, addr != "")

	base := "http://" + addr
	client := &http.Client{Timeout: 2 * time.Second}

	// /health
	resp, err := client.Get(base + "/health")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// /config
	resp, err = client.Get(base + "/config")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cfgBody map[string]any

	err = json.NewDecoder(resp.Body).Decode(&cfgBody)
	assert.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "Average", cfgBody["aggregationType"])
	assert.Equal(t, "in-memory", cfgBody["storeBackend"])

	// unknown baseline
	resp, err = client.Get(base + "/baselines/main")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// store baseline
	body, err := json.Marshal(timingRun("suite", 10, 10, 10))
	assert.NoError(t, err)

	resp, err = client.Post(base+"/baselines/main", "application/json", bytes.NewReader(body))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// list baselines
	resp, err = client.Get(base + "/baselines")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listBody struct {
		Count     int      `json:"count"`
		Baselines []string `json:"baselines"`
	}

	err = json.NewDecoder(resp.Body).Decode(&listBody)
	assert.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, 1, listBody.Count)
	assert.Equal(t, []string{"main"}, listBody.Baselines)

	// compare a slower candidate
	body, err = json.Marshal(timingRun("suite", 12, 12, 12))
	assert.NoError(t, err)

	report := postCompare(t, client, base+"/compare/main?result=candidate", body)
	assert.Equal(t, "candidate", report.Run.ResultName)
	assert.Equal(t, 1, report.Summary.Regressions)
	assert.Equal(t, []string{"TestA"}, report.Summary.FailedTests)

	// the stored name must survive later requests reusing the request buffers
	for range 5 {
		resp, err = client.Get(base + "/health")
		assert.Nil(t, err)
		_ = resp.Body.Close()
	}

	resp, err = client.Get(base + "/baselines/main")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	stored, err := p.LoadBaseline(ctx, "main")
	assert.NoError(t, err)
	assert.Equal(t, "main", stored.ResultName)

	report = postCompare(t, client, base+"/compare/main?result=second", body)
	assert.Equal(t, "second", report.Run.ResultName)
	assert.Equal(t, "main", report.Baseline)

	// malformed body
	resp, err = client.Post(base+"/compare/main", "application/json", bytes.NewReader([]byte("{")))
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestManagementHTTP_Auth(t *testing.T) {
	ctx := context.Background()

	p, err := benchreporter.New()
	assert.NoError(t, err)

	srv := benchreporter.NewManagementHTTPServer("127.0.0.1:0", benchreporter.WithMgmtAuth(func(fiberCtx fiber.Ctx) error {
		if fiberCtx.Get("Authorization") != "Bearer token" {
			return fiber.ErrUnauthorized
		}

		return nil
	}))
	err = srv.Start(ctx, p)
	assert.NoError(t, err)

	defer func() { _ = srv.Shutdown(ctx) }()

	time.Sleep(30 * time.Millisecond)

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get("http://" + srv.Address() + "/health")
	assert.Nil(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func postCompare(t *testing.T, client *http.Client, url string, body []byte) benchreporter.Report {
	t.Helper()

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post %s: expected status 200, got %d", url, resp.StatusCode)
	}

	var report benchreporter.Report

	err = json.NewDecoder(resp.Body).Decode(&report)
	if err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if report.Run == nil {
		t.Fatalf("post %s: report has no run", url)
	}

	return report
}
