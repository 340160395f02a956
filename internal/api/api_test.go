package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/erazemk/swiftship/internal/auth"
	"github.com/erazemk/swiftship/internal/db"
	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/notify"
	"github.com/erazemk/swiftship/internal/rates"
	"github.com/erazemk/swiftship/internal/service"
)

const (
	testJWTSecret = "test-secret"
	testPassword  = "correct-horse"
)

type testEnv struct {
	server *httptest.Server
	svc    Services
	admin  string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	database := db.NewTestDB(t)
	hub := live.NewHub()
	dispatch := notify.NewDispatcher(nil)
	t.Cleanup(dispatch.Wait)

	svc := Services{
		Accounts: &service.Accounts{
			DB: database, Secret: testJWTSecret, Notify: dispatch, Changes: hub,
			BaseURL: "http://localhost", AddressLines: []string{"8300 NW 123th Ave", "Miami, FL 33166"},
		},
		Ledger: &service.Ledger{DB: database, Notify: dispatch, Changes: hub},
		Rates:  &service.Rates{DB: database, Defaults: rates.Default()},
		Hub:    hub,
	}

	server := httptest.NewServer(LoggingMiddleware(NewRouter(database, testJWTSecret, svc)))
	t.Cleanup(server.Close)

	if _, err := svc.Accounts.SeedAdmin(context.Background(), "Admin", "admin@swiftship.local", testPassword); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}

	env := &testEnv{server: server, svc: svc}
	env.admin = env.login(t, "admin@swiftship.local", testPassword)
	return env
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.do(t, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": password})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var session struct {
		Token string `json:"token"`
	}
	json.NewDecoder(resp.Body).Decode(&session)
	if session.Token == "" {
		t.Fatal("empty token from login")
	}
	return session.Token
}

// register signs up a customer and returns their token and account.
func (e *testEnv) register(t *testing.T, name string) (string, model.Account) {
	t.Helper()
	resp := e.do(t, "POST", "/api/auth/register", "", map[string]string{
		"name": name, "email": strings.ToLower(name) + "@x.com", "password": testPassword,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", name, resp.StatusCode)
	}

	var session struct {
		Token   string        `json:"token"`
		Account model.Account `json:"account"`
	}
	json.NewDecoder(resp.Body).Decode(&session)
	return session.Token, session.Account
}

func (e *testEnv) verify(t *testing.T, id int64) {
	t.Helper()
	resp := e.do(t, "POST", fmt.Sprintf("/api/accounts/%d/verify", id), e.admin, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify %d: expected 200, got %d", id, resp.StatusCode)
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	req, err := authRequest(method, e.server.URL+path, token, body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader io.Reader = bytes.NewReader(nil)
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	defer resp.Body.Close()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "admin@swiftship.local", "password": "wrong-password"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Code != "InvalidCredentials" {
		t.Errorf("expected InvalidCredentials, got %q", body.Code)
	}

	resp = env.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "nobody@x.com", "password": testPassword})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown account, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Code != "AccountNotFound" {
		t.Errorf("expected AccountNotFound, got %q", body.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestServer(t)
	token, acct := env.register(t, "Alice")

	if acct.Verified || acct.Role != model.RoleCustomer || !strings.HasPrefix(acct.SuiteNumber, "SS-") {
		t.Errorf("unexpected account: %+v", acct)
	}

	resp := env.do(t, "GET", "/api/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /api/me, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"name": "Alice 2", "email": "ALICE@x.com", "password": testPassword,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/auth/register", "", map[string]string{"name": "Bob", "email": "bob@x.com", "password": "short"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for short password, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Code != "ValidationError" || body.Field != "password" {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestVerificationGatesAddressAndPreAlert(t *testing.T) {
	env := setupTestServer(t)
	token, acct := env.register(t, "Alice")

	resp := env.do(t, "GET", "/api/me/address", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for unverified address, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Code != "NotVerified" {
		t.Errorf("expected NotVerified, got %q", body.Code)
	}

	resp = env.do(t, "POST", "/api/packages", token, map[string]any{"tracking_number": "TN1", "merchant": "Amazon", "declared_value_usd": 10})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for unverified pre-alert, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/me/verification", token, nil)
	var sent map[string]bool
	json.NewDecoder(resp.Body).Decode(&sent)
	resp.Body.Close()
	if !sent["sent"] {
		t.Error("expected verification resend to succeed")
	}

	verifyToken, _ := auth.GenerateVerificationToken(testJWTSecret, acct.ID, acct.Email)
	resp = env.do(t, "GET", "/api/auth/verify?token="+verifyToken, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from verify link, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/me/address", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for verified address, got %d", resp.StatusCode)
	}
	var addr model.Address
	json.NewDecoder(resp.Body).Decode(&addr)
	resp.Body.Close()
	if addr.Suite != acct.SuiteNumber || len(addr.Lines) != 3 {
		t.Errorf("unexpected address: %+v", addr)
	}

	resp = env.do(t, "GET", "/api/auth/verify?token=bogus", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad verify token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPackageFlow(t *testing.T) {
	env := setupTestServer(t)
	aliceToken, alice := env.register(t, "Alice")
	bobToken, bob := env.register(t, "Bob")
	env.verify(t, alice.ID)
	env.verify(t, bob.ID)

	resp := env.do(t, "POST", "/api/packages", aliceToken, map[string]any{
		"tracking_number": "TN1", "merchant": "Amazon", "declared_value_usd": 10.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var pkg model.Package
	json.NewDecoder(resp.Body).Decode(&pkg)
	resp.Body.Close()
	if pkg.Status != model.StatusExpected || pkg.Suite != alice.SuiteNumber {
		t.Errorf("unexpected package: %+v", pkg)
	}

	resp = env.do(t, "POST", "/api/packages", aliceToken, map[string]any{"tracking_number": "TN2", "merchant": "Amazon", "declared_value_usd": -1})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for negative value, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Customers cannot change status.
	resp = env.do(t, "PUT", fmt.Sprintf("/api/packages/%d/status", pkg.ID), aliceToken, map[string]string{"status": "Delivered"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for customer status update, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "PUT", fmt.Sprintf("/api/packages/%d/status", pkg.ID), env.admin, map[string]string{"status": "Lost"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Code != "InvalidStatus" {
		t.Errorf("expected InvalidStatus, got %q", body.Code)
	}

	resp = env.do(t, "PUT", "/api/packages/9999/status", env.admin, map[string]string{"status": "Received"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown package, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "PUT", fmt.Sprintf("/api/packages/%d/status", pkg.ID), env.admin, map[string]string{"status": "Delivered"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for status update, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	var list []model.Package
	resp = env.do(t, "GET", "/api/packages", aliceToken, nil)
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list) != 1 || list[0].Status != model.StatusDelivered {
		t.Errorf("expected one delivered package for alice, got %+v", list)
	}

	resp = env.do(t, "GET", "/api/packages?active=true", aliceToken, nil)
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list) != 0 {
		t.Errorf("expected no active packages, got %d", len(list))
	}

	resp = env.do(t, "GET", "/api/packages", bobToken, nil)
	json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if len(list) != 0 {
		t.Errorf("expected bob to see no packages, got %d", len(list))
	}

	resp = env.do(t, "GET", fmt.Sprintf("/api/packages/%d", pkg.ID), bobToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for another owner's package, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	var history []model.PackageEvent
	resp = env.do(t, "GET", fmt.Sprintf("/api/packages/%d/history", pkg.ID), aliceToken, nil)
	json.NewDecoder(resp.Body).Decode(&history)
	resp.Body.Close()
	if len(history) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(history))
	}
}

func TestTrackEndpoint(t *testing.T) {
	env := setupTestServer(t)
	token, acct := env.register(t, "Alice")
	env.verify(t, acct.ID)

	resp := env.do(t, "POST", "/api/packages", token, map[string]any{"tracking_number": "AB12", "merchant": "Amazon", "declared_value_usd": 10})
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/track?q=ab12", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(raw), "declared_value") || strings.Contains(string(raw), "owner_id") {
		t.Errorf("public tracking view leaks private fields: %s", raw)
	}

	resp = env.do(t, "GET", "/api/track?q=nope", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRatesEndpoints(t *testing.T) {
	env := setupTestServer(t)
	token, _ := env.register(t, "Alice")

	resp := env.do(t, "POST", "/api/rates/estimate", "", map[string]any{"weight_lb": 2, "category": "electronics", "declared_value": 100})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var q rates.Quote
	json.NewDecoder(resp.Body).Decode(&q)
	resp.Body.Close()
	if q.Total != 34.00 || q.ShippingFee != 9.00 || q.DutyAmount != 20.00 {
		t.Errorf("unexpected quote: %+v", q)
	}

	update := rates.Default()
	update.BasePerLb = 5

	resp = env.do(t, "PUT", "/api/rates", token, update)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for customer rates update, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "PUT", "/api/rates", env.admin, update)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin rates update, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/rates", "", nil)
	var cfg rates.Config
	json.NewDecoder(resp.Body).Decode(&cfg)
	resp.Body.Close()
	if cfg.BasePerLb != 5 {
		t.Errorf("expected base_per_lb 5, got %v", cfg.BasePerLb)
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	env := setupTestServer(t)

	for _, path := range []string{"/api/packages", "/api/me", "/api/accounts", "/api/live/packages"} {
		resp, _ := http.Get(env.server.URL + path)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestRoleBasedAccess(t *testing.T) {
	env := setupTestServer(t)
	token, _ := env.register(t, "Alice")

	resp := env.do(t, "GET", "/api/accounts", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for customer listing accounts, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/invitations", token, map[string]string{"email": "ops@x.com"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for customer invitation, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// A forged admin claim does not help: roles come from the stored account.
	var me model.Account
	resp = env.do(t, "GET", "/api/me", token, nil)
	json.NewDecoder(resp.Body).Decode(&me)
	resp.Body.Close()

	forged, _ := auth.GenerateToken(testJWTSecret, me.ID, me.Email, model.RoleAdmin)
	resp = env.do(t, "GET", "/api/accounts", forged, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for admin claim on customer account, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestInvitationFlow(t *testing.T) {
	env := setupTestServer(t)

	resp := env.do(t, "POST", "/api/invitations", env.admin, map[string]string{"email": "ops@x.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var inv model.Invitation
	json.NewDecoder(resp.Body).Decode(&inv)
	resp.Body.Close()

	resp = env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"name": "Ops", "email": "ops@x.com", "password": testPassword, "invite_code": inv.Code,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for invited registration, got %d", resp.StatusCode)
	}
	var session sessionResponse
	json.NewDecoder(resp.Body).Decode(&session)
	resp.Body.Close()
	if session.Account.Role != model.RoleAdmin || !session.Account.Verified {
		t.Errorf("expected verified admin, got %+v", session.Account)
	}

	resp = env.do(t, "GET", "/api/accounts", session.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected invited admin to list accounts, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	env := setupTestServer(t)
	token, _ := env.register(t, "Alice")

	resp := env.do(t, "POST", "/api/auth/logout", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/me", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := setupTestServer(t)
	token, _ := env.register(t, "Alice")

	resp := env.do(t, "PUT", "/api/auth/password", token, map[string]string{"current_password": "nope-nope", "new_password": "another-pass"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong current password, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "PUT", "/api/auth/password", token, map[string]string{"current_password": testPassword, "new_password": "another-pass"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	env.login(t, "alice@x.com", "another-pass")
}

func TestPhotoUpload(t *testing.T) {
	env := setupTestServer(t)
	token, acct := env.register(t, "Alice")
	env.verify(t, acct.ID)

	resp := env.do(t, "POST", "/api/packages", token, map[string]any{"tracking_number": "TN1", "merchant": "Amazon", "declared_value_usd": 10})
	var pkg model.Package
	json.NewDecoder(resp.Body).Decode(&pkg)
	resp.Body.Close()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var pngData bytes.Buffer
	png.Encode(&pngData, img)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("photo", "box.png")
	part.Write(pngData.Bytes())
	mw.Close()

	req, _ := http.NewRequest("PUT", fmt.Sprintf("%s/api/packages/%d/photo", env.server.URL, pkg.ID), &body)
	req.Header.Set("Authorization", "Bearer "+env.admin)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from upload, got %d", resp.StatusCode)
	}

	resp = env.do(t, "GET", fmt.Sprintf("/api/packages/%d/photo?size=thumb", pkg.ID), token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/jpeg" {
		t.Errorf("expected jpeg thumbnail, got %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestLivePackagesWebsocket(t *testing.T) {
	env := setupTestServer(t)
	token, acct := env.register(t, "Alice")
	env.verify(t, acct.ID)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/live/packages?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() Snapshot {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		var snap Snapshot
		if err := conn.ReadJSON(&snap); err != nil {
			t.Fatalf("reading snapshot: %v", err)
		}
		return snap
	}

	if snap := read(); len(snap.Packages) != 0 || snap.Account == nil || snap.Account.ID != acct.ID {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}

	resp := env.do(t, "POST", "/api/packages", token, map[string]any{"tracking_number": "TN1", "merchant": "Amazon", "declared_value_usd": 10})
	resp.Body.Close()

	snap := read()
	if len(snap.Packages) != 1 || snap.Packages[0].TrackingNumber != "TN1" {
		t.Fatalf("expected snapshot with TN1, got %+v", snap.Packages)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestServer(t)

	resp, err := http.Get(env.server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(raw), "swiftship_http_request_duration_seconds") {
		t.Error("expected request duration metric in /metrics output")
	}
}

func TestSuiteLookup(t *testing.T) {
	env := setupTestServer(t)
	token, alice := env.register(t, "Alice")

	resp := env.do(t, "GET", "/api/suites/"+strings.ToLower(alice.SuiteNumber), env.admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var entry model.SuiteEntry
	json.NewDecoder(resp.Body).Decode(&entry)
	resp.Body.Close()
	if entry.AccountID != alice.ID || entry.Name != "Alice" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	resp = env.do(t, "GET", "/api/suites/SS-0000", env.admin, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown suite, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, "GET", "/api/suites/"+alice.SuiteNumber, token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for customer lookup, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
