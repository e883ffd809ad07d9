//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"kasmoni-app-go/internal/config"
	"kasmoni-app-go/internal/db"
	activitydomain "kasmoni-app-go/internal/domain/activity"
	banksdomain "kasmoni-app-go/internal/domain/banks"
	groupsdomain "kasmoni-app-go/internal/domain/groups"
	membersdomain "kasmoni-app-go/internal/domain/members"
	paymentsdomain "kasmoni-app-go/internal/domain/payments"
	reportsdomain "kasmoni-app-go/internal/domain/reports"
	scheduledomain "kasmoni-app-go/internal/domain/schedule"
	slotsdomain "kasmoni-app-go/internal/domain/slots"
	usersdomain "kasmoni-app-go/internal/domain/users"
	activityrepo "kasmoni-app-go/internal/repository/postgres/activity"
	banksrepo "kasmoni-app-go/internal/repository/postgres/banks"
	groupsrepo "kasmoni-app-go/internal/repository/postgres/groups"
	membersrepo "kasmoni-app-go/internal/repository/postgres/members"
	paymentsrepo "kasmoni-app-go/internal/repository/postgres/payments"
	reportsrepo "kasmoni-app-go/internal/repository/postgres/reports"
	schedulerepo "kasmoni-app-go/internal/repository/postgres/schedule"
	slotsrepo "kasmoni-app-go/internal/repository/postgres/slots"
	usersrepo "kasmoni-app-go/internal/repository/postgres/users"
	"kasmoni-app-go/internal/transport/httpserver"
	"kasmoni-app-go/internal/transport/httpserver/handler"
	"kasmoni-app-go/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, slog.LevelError, "text")

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			JWTSecret: "e2e-secret",
			TokenTTL:  time.Hour,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	groupsService := groupsdomain.NewService(groupsrepo.NewPostgres(dbConn))
	membersService := membersdomain.NewService(membersrepo.NewPostgres(dbConn))
	banksService := banksdomain.NewService(banksrepo.NewPostgres(dbConn))
	scheduleService := scheduledomain.NewService(schedulerepo.NewPostgres(dbConn), groupsService)
	slotsService := slotsdomain.NewService(slotsrepo.NewPostgres(dbConn), groupsService)
	paymentsService := paymentsdomain.NewService(paymentsrepo.NewPostgres(dbConn), slotsService, groupsService, scheduleService, log)
	reportsService := reportsdomain.NewService(reportsrepo.NewPostgres(dbConn), groupsService, 0)
	activityService := activitydomain.NewService(activityrepo.NewPostgres(dbConn), log)
	usersService := usersdomain.NewService(usersrepo.NewPostgres(dbConn), cfg.Auth)

	handlers := handler.New(
		groupsService,
		membersService,
		banksService,
		scheduleService,
		slotsService,
		paymentsService,
		reportsService,
		activityService,
		usersService,
		log,
	)

	router := httpserver.NewRouter(cfg, handlers, usersService)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	env := &testEnv{server: server, db: dbConn}
	env.bootstrapAdmin(t)
	return env
}

func cleanDB(dbConn *gorm.DB) error {
	tables := []string{"activity_log", "payments", "payment_slots", "group_members", "members", "groups", "banks", "users"}
	for _, table := range tables {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (env *testEnv) bootstrapAdmin(t *testing.T) {
	t.Helper()

	status, _ := env.request(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "admin@example.com",
		"password": "admin-password",
	})
	if status != http.StatusCreated {
		t.Fatalf("register admin: status %d", status)
	}

	status, body := env.request(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@example.com",
		"password": "admin-password",
	})
	if status != http.StatusOK {
		t.Fatalf("login: status %d", status)
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	env.token = login.Token
}

func (env *testEnv) request(t *testing.T, method, path string, payload any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, env.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if env.token != "" {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

func TestPaymentFlow(t *testing.T) {
	env := setupE2E(t)

	status, body := env.request(t, http.MethodPost, "/api/members", map[string]any{
		"first_name": "Anita",
		"last_name":  "Blokland",
	})
	if status != http.StatusCreated {
		t.Fatalf("create member: status %d body %s", status, body)
	}
	var member struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &member); err != nil {
		t.Fatalf("decode member: %v", err)
	}

	status, body = env.request(t, http.MethodPost, "/api/groups", map[string]any{
		"name":           "Juni Ronde",
		"monthly_amount": "250.00",
		"start_date":     "2024-01-01",
		"end_date":       "2024-12-31",
	})
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d body %s", status, body)
	}
	var group struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &group); err != nil {
		t.Fatalf("decode group: %v", err)
	}

	status, body = env.request(t, http.MethodPost, "/api/assignments", map[string]any{
		"group_id":   group.ID,
		"member_id":  member.ID,
		"month_date": "2024-06",
	})
	if status != http.StatusCreated {
		t.Fatalf("create assignment: status %d body %s", status, body)
	}

	slotValue := fmt.Sprintf("%d_%d_2024-06", group.ID, member.ID)
	status, body = env.request(t, http.MethodPost, "/api/payments", map[string]any{
		"member_id":      member.ID,
		"group_id":       group.ID,
		"slot":           slotValue,
		"payment_date":   "2024-06-05",
		"payment_month":  "2024-06",
		"amount":         "250.00",
		"payment_method": "cash",
		"status":         "received",
	})
	if status != http.StatusCreated {
		t.Fatalf("create payment: status %d body %s", status, body)
	}

	// The same slot again must be rejected as a duplicate.
	status, body = env.request(t, http.MethodPost, "/api/payments", map[string]any{
		"member_id":      member.ID,
		"group_id":       group.ID,
		"slot":           slotValue,
		"payment_date":   "2024-06-06",
		"payment_month":  "2024-06",
		"amount":         "250.00",
		"payment_method": "cash",
		"status":         "received",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate payment: status %d body %s", status, body)
	}

	checkPath := fmt.Sprintf("/api/payments/duplicate-check?member_id=%d&group_id=%d&slot=%s&month=2024-06", member.ID, group.ID, slotValue)
	status, body = env.request(t, http.MethodGet, checkPath, nil)
	if status != http.StatusOK {
		t.Fatalf("duplicate check: status %d body %s", status, body)
	}
	var check struct {
		Known     bool `json:"known"`
		Duplicate bool `json:"duplicate"`
	}
	if err := json.Unmarshal(body, &check); err != nil {
		t.Fatalf("decode check: %v", err)
	}
	if !check.Known || !check.Duplicate {
		t.Fatalf("expected confirmed duplicate, got %+v", check)
	}

	status, body = env.request(t, http.MethodGet, fmt.Sprintf("/api/members/%d/combinations?month=2024-06", member.ID), nil)
	if status != http.StatusOK {
		t.Fatalf("combinations: status %d body %s", status, body)
	}
	var combos struct {
		Items []struct {
			FormValue   string `json:"form_value"`
			AlreadyPaid bool   `json:"already_paid"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &combos); err != nil {
		t.Fatalf("decode combinations: %v", err)
	}
	if len(combos.Items) != 1 || !combos.Items[0].AlreadyPaid {
		t.Fatalf("expected one paid combination, got %+v", combos.Items)
	}

	status, body = env.request(t, http.MethodGet, "/api/reports/dashboard?month=2024-06", nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard: status %d body %s", status, body)
	}
}
