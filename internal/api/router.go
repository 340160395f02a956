package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/metrics"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/service"
)

// Services bundles the domain services the API exposes.
type Services struct {
	Accounts *service.Accounts
	Ledger   *service.Ledger
	Rates    *service.Rates
	Hub      *live.Hub
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, svc Services) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret, Accounts: svc.Accounts}
	meHandler := &MeHandler{Accounts: svc.Accounts}
	packagesHandler := &PackagesHandler{Ledger: svc.Ledger}
	ratesHandler := &RatesHandler{Rates: svc.Rates}
	accountsHandler := &AccountsHandler{Accounts: svc.Accounts}
	liveHandler := &LiveHandler{Accounts: svc.Accounts, Ledger: svc.Ledger, Hub: svc.Hub}

	authMW := AuthMiddleware(jwtSecret, db, svc.Accounts, false)
	wsAuthMW := AuthMiddleware(jwtSecret, db, svc.Accounts, true)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/verify", authHandler.Verify)
	mux.HandleFunc("GET /api/track", packagesHandler.Track)
	mux.HandleFunc("GET /api/rates", ratesHandler.Get)
	mux.HandleFunc("POST /api/rates/estimate", ratesHandler.Estimate)
	mux.Handle("GET /metrics", metrics.Handler())

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/me", authMW(http.HandlerFunc(meHandler.Get)))
	mux.Handle("GET /api/me/address", authMW(http.HandlerFunc(meHandler.Address)))
	mux.Handle("POST /api/me/verification", authMW(http.HandlerFunc(meHandler.ResendVerification)))

	// Packages: visibility is scoped by the ledger, writes below are admin only.
	mux.Handle("GET /api/packages", authMW(http.HandlerFunc(packagesHandler.List)))
	mux.Handle("POST /api/packages", authMW(http.HandlerFunc(packagesHandler.Create)))
	mux.Handle("GET /api/packages/{id}", authMW(http.HandlerFunc(packagesHandler.Get)))
	mux.Handle("GET /api/packages/{id}/history", authMW(http.HandlerFunc(packagesHandler.History)))
	mux.Handle("GET /api/packages/{id}/photo", authMW(http.HandlerFunc(packagesHandler.GetPhoto)))
	mux.Handle("PUT /api/packages/{id}/status", authMW(requireAdmin(http.HandlerFunc(packagesHandler.UpdateStatus))))
	mux.Handle("PUT /api/packages/{id}/photo", authMW(requireAdmin(http.HandlerFunc(packagesHandler.UploadPhoto))))
	mux.Handle("GET /api/live/packages", wsAuthMW(http.HandlerFunc(liveHandler.Packages)))

	// Administration.
	mux.Handle("PUT /api/rates", authMW(requireAdmin(http.HandlerFunc(ratesHandler.Update))))
	mux.Handle("GET /api/accounts", authMW(requireAdmin(http.HandlerFunc(accountsHandler.List))))
	mux.Handle("GET /api/accounts/{id}", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Get))))
	mux.Handle("POST /api/accounts/{id}/verify", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Verify))))
	mux.Handle("POST /api/invitations", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Invite))))
	mux.Handle("GET /api/suites/{suite}", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Suite))))

	return mux
}
