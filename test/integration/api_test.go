//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/tsfeatures/internal/augmentation"
	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/core/recipe"
	"github.com/aevon-lab/tsfeatures/internal/server"
)

type integrationHarness struct {
	baseURL    string
	client     *http.Client
	cancel     context.CancelFunc
	serverDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case err := <-h.serverDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}
}

func TestAPI_AugmentDaily(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]map[string]interface{}, 14)
	for i := range rows {
		rows[i] = map[string]interface{}{
			"date":  start.AddDate(0, 0, i).Format(time.RFC3339),
			"sales": 100 + i,
		}
	}

	status, body := postJSON(t, h.client, h.baseURL+"/v1/fourier", map[string]interface{}{
		"date_column": "date",
		"periods":     []int{7, 14},
		"max_order":   2,
		"engine":      fourier.EngineVectorized,
		"rows":        rows,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var payload struct {
		RunID     string                   `json:"run_id"`
		Generated []string                 `json:"generated"`
		RowCount  int                      `json:"row_count"`
		Rows      []map[string]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NotEmpty(t, payload.RunID)
	require.Len(t, payload.Generated, 8)
	require.Equal(t, 14, payload.RowCount)

	for _, row := range payload.Rows {
		for _, name := range payload.Generated {
			v, ok := row[name].(float64)
			require.True(t, ok, "column %s", name)
			require.LessOrEqual(t, v, 1.0)
			require.GreaterOrEqual(t, v, -1.0)
		}
	}
}

func TestAPI_ApplyShippedRecipe(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]map[string]interface{}, 8)
	for i := range rows {
		rows[i] = map[string]interface{}{"date": start.AddDate(0, 0, i).Format(time.RFC3339)}
	}

	status, body := postJSON(t, h.client, h.baseURL+"/v1/recipes/weekly/apply", map[string]interface{}{
		"rows": rows,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	require.Contains(t, string(body), `"recipe":"weekly"`)
	require.Contains(t, string(body), "date_cos_2_7")
}

func TestAPI_DegenerateScale(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	status, body := postJSON(t, h.client, h.baseURL+"/v1/fourier", map[string]interface{}{
		"date_column": "date",
		"rows": []map[string]interface{}{
			{"date": "2024-03-01T00:00:00Z"},
			{"date": "2024-03-01T00:00:00Z"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, status, string(body))
}

func startHarness(t *testing.T) *integrationHarness {
	t.Helper()

	repo, err := recipe.NewFileSystemRepository(filepath.Join(projectRoot(t), "config", "recipes"))
	require.NoError(t, err)
	require.NotZero(t, repo.Len())

	addr := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	httpServer := server.New(addr, "test", map[string]server.HealthChecker{"recipes": repo})
	svc := augmentation.NewService(fourier.NewAugmenter(), repo, augmentation.Defaults{
		DateLayout: time.RFC3339,
	}, 1)
	svc.RegisterRoutes(httpServer.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() { serverDone <- httpServer.Run(ctx) }()

	baseURL := "http://" + addr
	waitForHealthy(t, baseURL)

	return &integrationHarness{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		cancel:     cancel,
		serverDone: serverDone,
	}
}

func waitForHealthy(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("server did not become healthy at %s", baseURL)
}

func postJSON(t *testing.T, client *http.Client, endpoint string, payload interface{}) (int, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return root
}
