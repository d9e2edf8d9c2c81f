package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"findash/internal/ingest"
	"findash/internal/testutil"
)

func TestUpsertFlow(t *testing.T) {
	app := setupApp(t, ingest.PolicyUpsert)
	user := testutil.CreateTestUserWithName(t, app.DB, "Jane Doe")
	uploadPath := fmt.Sprintf("/api/finances/upload/%d/2024", user.ID)
	getPath := fmt.Sprintf("/api/finances/%d/2024", user.ID)

	t.Run("empty year", func(t *testing.T) {
		rec := app.request("GET", getPath)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["user_name"] != "Jane Doe" || result["year"] != float64(2024) {
			t.Errorf("unexpected header %v", result)
		}
		if len(result["records"].([]interface{})) != 0 {
			t.Errorf("expected no records, got %v", result["records"])
		}
	})

	t.Run("partial upload", func(t *testing.T) {
		data := testutil.MonthlyWorkbook(t,
			[2]interface{}{1, 500}, [2]interface{}{13, 10}, [2]interface{}{3, -5})
		rec := app.upload(t, uploadPath, "finances.xlsx", data)

		if rec.Code != http.StatusMultiStatus {
			t.Fatalf("expected 207, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["records_count"] != float64(1) || result["error_count"] != float64(2) {
			t.Errorf("unexpected counts %v", result)
		}
		if result["status"] != "partial" {
			t.Errorf("expected partial status, got %v", result["status"])
		}

		rec = app.request("GET", getPath)
		if got := months(t, rec); strings.Join(got, ",") != "1" {
			t.Errorf("expected only January stored, got %v", got)
		}
	})

	t.Run("overwrite and add", func(t *testing.T) {
		data := testutil.MonthlyWorkbook(t,
			[2]interface{}{"February", 20}, [2]interface{}{1, 750.5})
		rec := app.upload(t, uploadPath, "finances.XLSX", data)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", getPath)
		result := parseJSON(t, rec)
		records := result["records"].([]interface{})
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %v", records)
		}
		jan := records[0].(map[string]interface{})
		if jan["month"] != float64(1) || jan["amount"] != "750.50" {
			t.Errorf("expected January overwritten to 750.50, got %v", jan)
		}
	})

	t.Run("upload history", func(t *testing.T) {
		rec := app.request("GET", fmt.Sprintf("/api/users/%d/uploads", user.ID))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(2) {
			t.Errorf("expected 2 uploads logged, got %v", result["total_items"])
		}
		latest := result["data"].([]interface{})[0].(map[string]interface{})
		if latest["status"] != "success" {
			t.Errorf("expected latest upload to be success, got %v", latest["status"])
		}
	})
}

func TestUploadRejections(t *testing.T) {
	app := setupApp(t, ingest.PolicyUpsert)
	user := testutil.CreateTestUser(t, app.DB)
	uploadPath := fmt.Sprintf("/api/finances/upload/%d/2024", user.ID)
	valid := testutil.MonthlyWorkbook(t, [2]interface{}{1, 5})

	cases := []struct {
		name     string
		path     string
		filename string
		data     []byte
		status   int
		code     string
	}{
		{"bad extension", uploadPath, "finances.csv", []byte("Month,Amount"), http.StatusBadRequest, "BAD_EXTENSION"},
		{"no extension", uploadPath, "finances", valid, http.StatusBadRequest, "BAD_EXTENSION"},
		{"unreadable", uploadPath, "finances.xlsx", []byte("garbage"), http.StatusInternalServerError, "UNREADABLE_FILE"},
		{"missing columns", uploadPath, "finances.xlsx",
			testutil.BuildWorkbook(t, []interface{}{"Month", "Value"}, []interface{}{1, 5}),
			http.StatusBadRequest, "MISSING_COLUMNS"},
		{"unknown user", "/api/finances/upload/99999/2024", "finances.xlsx", valid, http.StatusNotFound, "USER_NOT_FOUND"},
		{"bad year", fmt.Sprintf("/api/finances/upload/%d/abc", user.ID), "finances.xlsx", valid, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.upload(t, tc.path, tc.filename, tc.data)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, code)
			}
		})
	}

	testutil.AssertRecordCount(t, app.DB, user.ID, 2024, 0)
}

func TestUsersAndHealth(t *testing.T) {
	app := setupApp(t, ingest.PolicyUpsert)
	testutil.CreateTestUserWithName(t, app.DB, "Jane")
	testutil.CreateTestUserWithName(t, app.DB, "John")

	rec := app.request("GET", "/api/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	users := parseJSON(t, rec)["users"].([]interface{})
	if len(users) != 2 || users[0].(map[string]interface{})["name"] != "Jane" {
		t.Errorf("unexpected users %v", users)
	}

	rec = app.request("GET", "/api/health")
	if rec.Code != http.StatusOK {
		t.Errorf("expected healthy, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/finances/99999/2024")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", rec.Code)
	}
}
