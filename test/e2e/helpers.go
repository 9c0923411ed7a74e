//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quillhaven/botadmin/internal/api/handlers"
	"github.com/quillhaven/botadmin/internal/repository"
	"github.com/quillhaven/botadmin/internal/server"
	"github.com/quillhaven/botadmin/internal/service"
	"github.com/quillhaven/botadmin/internal/testutil"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	Embedder     *fakeEmbedder
	HTTPClient   *http.Client
}

// fakeEmbedder is a deterministic stand-in for the OpenAI embedding API.
// Chunks containing FailOn produce an error instead of a vector.
type fakeEmbedder struct {
	FailOn string
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.FailOn != "" && strings.Contains(text, f.FailOn) {
		return nil, fmt.Errorf("embedding refused for test")
	}
	emb := make([]float32, 1536)
	for i := range emb {
		emb[i] = float32(len(text)%7) / 10
	}
	return emb, nil
}

// plainTextExtractor treats the uploaded bytes as already-extracted text so
// tests can drive the pipeline without real PDF fixtures.
type plainTextExtractor struct{}

func (plainTextExtractor) ExtractText(data []byte) (string, error) {
	return string(data), nil
}

// SetupE2EEnv creates a full E2E test environment with a container-backed
// database and a real HTTP server.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	embedder := &fakeEmbedder{}
	serverURL, serverCloser := startServer(t, pool, embedder, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		Embedder:     embedder,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// startServer wires the repositories, services, and router against the test
// database and serves on the given port.
func startServer(t *testing.T, pool *pgxpool.Pool, embedder service.EmbeddingClient, port int) (string, func()) {
	knowledgeRepo := repository.NewKnowledgeRepository(pool)
	configRepo := repository.NewBotConfigRepository(pool)
	memoryRepo := repository.NewMemoryRepository(pool)
	statusRepo := repository.NewBotStatusRepository(pool)

	ingestSvc := service.NewIngestService(plainTextExtractor{}, embedder, knowledgeRepo)
	configSvc := service.NewBotConfigService(configRepo)
	memorySvc := service.NewMemoryService(memoryRepo)
	statusSvc := service.NewStatusService(statusRepo)

	router := server.NewRouter(server.RouterConfig{
		UploadHandler: handlers.NewUploadHandler(ingestSvc),
		ConfigHandler: handlers.NewConfigHandler(configSvc),
		MemoryHandler: handlers.NewMemoryHandler(memorySvc),
		StatusHandler: handlers.NewStatusHandler(statusSvc),
		MaxBodyBytes:  20 << 20,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Errorf("server failed: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL)

	closer := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}

	return serverURL, closer
}

func waitForServer(t *testing.T, serverURL string) {
	client := &http.Client{Timeout: time.Second}
	for i := 0; i < 50; i++ {
		resp, err := client.Get(serverURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("server did not become ready")
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// DoJSON performs a request with an optional JSON body and returns the status
// code and raw response body.
func (e *E2ETestEnv) DoJSON(method, path string, body interface{}) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			e.T.Fatalf("failed to marshal body: %v", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, e.ServerURL+path, reqBody)
	if err != nil {
		e.T.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		e.T.Fatalf("failed to read response: %v", err)
	}

	return resp.StatusCode, respBody
}

// UploadDocument posts content as a multipart file under the given form field
// and returns the status code and raw response body.
func (e *E2ETestEnv) UploadDocument(field, filename string, content []byte) (int, []byte) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		e.T.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		e.T.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, e.ServerURL+"/api/upload", &buf)
	if err != nil {
		e.T.Fatalf("failed to build upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("upload request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		e.T.Fatalf("failed to read upload response: %v", err)
	}

	return resp.StatusCode, respBody
}

// KnowledgeCount returns the number of stored chunks.
func (e *E2ETestEnv) KnowledgeCount() int64 {
	var n int64
	if err := e.Pool.QueryRow(e.Ctx, "SELECT count(*) FROM knowledge_base").Scan(&n); err != nil {
		e.T.Fatalf("failed to count chunks: %v", err)
	}
	return n
}
