package services

import (
	"context"
	"encoding/json"
	"testing"

	"findash/internal/ingest"
	"findash/internal/testutil"
)

func TestGetYearRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("numeric_months_ordered", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinanceService(db, NewUserService(db), ingest.PolicyUpsert)
		user := testutil.CreateTestUserWithName(t, db, "Jane")
		testutil.CreateTestRecord(t, db, user.ID, 2024, 3, "30")
		testutil.CreateTestRecord(t, db, user.ID, 2024, 1, "10.5")
		testutil.CreateTestRecord(t, db, user.ID, 2023, 2, "99")

		got, err := svc.GetYearRecords(ctx, user.ID, 2024)
		testutil.AssertNoError(t, err)

		if got.UserName != "Jane" || got.Year != 2024 {
			t.Errorf("unexpected header %+v", got)
		}
		if len(got.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got.Records))
		}
		if got.Records[0].Month.Number != 1 || got.Records[0].Amount != "10.50" {
			t.Errorf("unexpected first record %+v", got.Records[0])
		}
		if got.Records[1].Month.Number != 3 || got.Records[1].Amount != "30.00" {
			t.Errorf("unexpected second record %+v", got.Records[1])
		}
	})

	t.Run("labels_keep_upload_order", func(t *testing.T) {
		db := testutil.SetupTestDBWithPolicy(t, ingest.PolicyReplace)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinanceService(db, NewUserService(db), ingest.PolicyReplace)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestLabeledRecord(t, db, user.ID, 2024, "Mar", "3")
		testutil.CreateTestLabeledRecord(t, db, user.ID, 2024, "Jan", "1")

		got, err := svc.GetYearRecords(ctx, user.ID, 2024)
		testutil.AssertNoError(t, err)

		body, _ := json.Marshal(got.Records)
		want := `[{"month":"Mar","amount":"3.00"},{"month":"Jan","amount":"1.00"}]`
		if string(body) != want {
			t.Errorf("expected %s, got %s", want, body)
		}
	})

	t.Run("known_user_without_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinanceService(db, NewUserService(db), ingest.PolicyUpsert)
		user := testutil.CreateTestUser(t, db)

		got, err := svc.GetYearRecords(ctx, user.ID, 2024)
		testutil.AssertNoError(t, err)

		body, _ := json.Marshal(got.Records)
		if string(body) != "[]" {
			t.Errorf("expected empty records array, got %s", body)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinanceService(db, NewUserService(db), ingest.PolicyUpsert)

		_, err := svc.GetYearRecords(ctx, 99999, 2024)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
