package web

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"relish/internal/ops"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server: the public feedback
// form at the root, the admin area under /admin.
func NewServer(env *ops.Env, version string) *http.Server {
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version, env.Config.RestaurantName)

	h := &Handlers{
		env:      env,
		renderer: renderer,
		formURL:  formURL(env),
	}

	mux := http.NewServeMux()

	// Public surface
	mux.HandleFunc("GET /{$}", h.HandleForm)
	mux.HandleFunc("POST /submit", h.HandleSubmit)
	mux.HandleFunc("GET /thanks", h.HandleThanks)
	mux.HandleFunc("GET /qr.png", h.HandleQRImage)

	// Admin surface
	mux.HandleFunc("GET /admin", h.HandleDashboard)
	mux.HandleFunc("GET /admin/customers", h.HandleCustomers)
	mux.HandleFunc("GET /admin/customers/export", h.HandleExport)
	mux.HandleFunc("GET /admin/customers/{id}", h.HandleCustomerDetail)
	mux.HandleFunc("GET /admin/fields", h.HandleFields)
	mux.HandleFunc("POST /admin/fields", h.HandleFieldAdd)
	mux.HandleFunc("POST /admin/fields/move", h.HandleFieldMove)
	mux.HandleFunc("POST /admin/fields/reset", h.HandleFieldsReset)
	mux.HandleFunc("POST /admin/fields/{id}/delete", h.HandleFieldRemove)
	mux.HandleFunc("GET /admin/qr", h.HandleQRPage)
	mux.HandleFunc("POST /admin/clear", h.HandleClear)

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	return &http.Server{
		Addr:    env.Config.ListenAddr,
		Handler: securityHeaders(mux),
	}
}

// formURL returns the address customers should reach the form at, which is
// what gets baked into the QR code.
func formURL(env *ops.Env) string {
	if env.Config.PublicURL != "" {
		return strings.TrimRight(env.Config.PublicURL, "/") + "/"
	}
	return "http://" + env.Config.ListenAddr + "/"
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("Relish running at http://%s", srv.Addr)
	log.Printf("Feedback form: http://%s/ (admin: http://%s/admin)", srv.Addr, srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
