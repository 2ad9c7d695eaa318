package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shd1007/ClaimLocal/internal/app"
	"github.com/shd1007/ClaimLocal/internal/claims"
	"github.com/shd1007/ClaimLocal/internal/httputil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	deps, err := app.Build(context.Background())
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Get("/claims", listClaimsHandler(deps))
	r.Get("/claims/{id}", getClaimHandler(deps))
	r.Post("/claims/{id}/summarize", summarizeHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(version))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("claims api listening", "addr", addr, "version", version)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func claimID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func getClaimHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := claimID(r)
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid claim id", err, http.StatusBadRequest)
			return
		}
		claim, err := deps.Store.GetClaim(r.Context(), id)
		if errors.Is(err, claims.ErrClaimNotFound) {
			httputil.Fail(deps.Log, w, "claim not found", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load claim", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, claim)
	}
}

func listClaimsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := deps.Store.GetAllClaims(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load claims", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, all)
	}
}

// summarizeHandler maps an unknown id to 404; every other summarization
// outcome, including the degraded placeholder, is a 200.
func summarizeHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := claimID(r)
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid claim id", err, http.StatusBadRequest)
			return
		}
		result, err := deps.Summarizer.Summarize(r.Context(), id)
		if errors.Is(err, claims.ErrClaimNotFound) {
			httputil.Fail(deps.Log, w, "claim not found", err, http.StatusNotFound)
			return
		}
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to summarize claim", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}
