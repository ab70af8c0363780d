package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/strataforge/agsi/pkg/errors"
	"github.com/strataforge/agsi/pkg/ground"
	"github.com/strataforge/agsi/pkg/observability"
	"github.com/strataforge/agsi/pkg/validate"
)

// newServeCmd builds the serve command: the same document tools the agent
// exposes on stdio, served over HTTP. Documents travel in request bodies;
// the server holds no state between requests.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve document tools over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// runServer blocks until ctx is cancelled, then shuts the server down
// gracefully.
func runServer(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/validate", handleValidate)
	r.Post("/info", handleInfo)
	r.Post("/materials", handleMaterials)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "shutdown server")
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeIO, err, "serve on %s", addr)
		}
		return nil
	}
}

// decodeDocument reads a document from the request body.
func decodeDocument(r *http.Request) (*ground.Document, error) {
	var doc ground.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeJSONParse, err, "decode document body")
	}
	return &doc, nil
}

func handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	observability.Validation().OnValidateStart(r.Context(), doc.File.FileID)
	report := validate.Document(doc)
	observability.Validation().OnValidateComplete(r.Context(), doc.File.FileID,
		len(report.Errors()), len(report.Warnings()), time.Since(start))
	writeJSON(w, http.StatusOK, struct {
		Valid    bool               `json:"valid"`
		Errors   []validate.Issue   `json:"errors"`
		Warnings []validate.Warning `json:"warnings"`
	}{report.IsValid(), report.Errors(), report.Warnings()})
}

func handleInfo(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, inspect(doc))
}

func handleMaterials(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	q := r.URL.Query()
	matches := queryMaterials(doc, q.Get("name"), q.Get("materialType"))
	writeJSON(w, http.StatusOK, matches)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"code":    string(errors.GetCode(err)),
		"message": errors.UserMessage(err),
	})
}
