package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"findash/internal/handlers"
	"findash/internal/ingest"
	"findash/internal/logger"
	"findash/internal/router"
	"findash/internal/services"
	"findash/internal/testutil"
	"findash/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database using the given record policy.
func setupApp(t *testing.T, policy ingest.Policy) *testApp {
	t.Helper()

	db := testutil.SetupTestDBWithPolicy(t, policy)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	// Services
	userService := services.NewUserService(db)
	uploadLogService := services.NewUploadLogService(db, userService)
	financeService := services.NewFinanceService(db, userService, policy)
	ingestService := services.NewIngestService(
		services.NewRecordStore(db, policy),
		uploadLogService,
		services.IngestConfig{AllowedExtensions: []string{"xlsx", "xls"}, MaxReportedErrors: 5},
	)

	r := router.New(router.Options{
		CORSAllowedOrigin: "*",
		Finance:           handlers.NewFinanceHandler(ingestService, financeService, 1<<20),
		User:              handlers.NewUserHandler(userService, uploadLogService),
	})

	return &testApp{DB: db, Router: r}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload posts data as the spreadsheet of an upload request.
func (app *testApp) upload(t *testing.T, path, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode returns the error code of an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	return errObj["code"].(string)
}

// months returns the month values of a GET /api/finances response as strings.
func months(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	records := parseJSON(t, rec)["records"].([]interface{})
	out := make([]string, len(records))
	for i, r := range records {
		raw, _ := json.Marshal(r.(map[string]interface{})["month"])
		out[i] = strings.Trim(string(raw), `"`)
	}
	return out
}
