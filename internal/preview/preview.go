// Package preview serves the built site over HTTP and rebuilds it whenever
// the blog database changes.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

const debounceInterval = 300 * time.Millisecond

// Options configures the preview server.
type Options struct {
	DBPath  string // database file to watch
	SiteDir string // built site to serve
	Port    int
	Rebuild func(ctx context.Context) error
	Metrics *metrics.PrometheusRecorder // optional; enables /metrics
}

// buildStatus tracks the current build state for error display.
type buildStatus struct {
	mu        sync.RWMutex
	lastError error
}

func (bs *buildStatus) set(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) get() error {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError
}

// Serve runs an initial build, then serves the site and watches the database
// file, rebuilding on change with debouncing. Returns when ctx is canceled.
func Serve(ctx context.Context, opts Options) error {
	status := &buildStatus{}
	status.set(opts.Rebuild(ctx))
	if err := status.get(); err != nil {
		slog.Error("Initial build failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: sqlite commits through journal/WAL files and
	// renames, which would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(opts.DBPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(opts.DBPath), err)
	}

	server := startHTTPServer(opts, status)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	slog.Info("Preview server listening", "url", fmt.Sprintf("http://localhost:%d", opts.Port), "watching", opts.DBPath)

	rebuildReq := make(chan struct{}, 1)
	trigger := newDebouncer(rebuildReq)
	go rebuildWorker(ctx, opts, status, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isDatabaseEvent(opts.DBPath, event) {
				slog.Debug("Database changed", "event", event.String())
				trigger()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", watchErr)
		}
	}
}

func startHTTPServer(opts Options, status *buildStatus) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(opts.SiteDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := status.get(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics.Handler())
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Preview server failed", "error", err)
		}
	}()
	return server
}

// newDebouncer collapses bursts of change events into one rebuild request.
func newDebouncer(rebuildReq chan<- struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceInterval, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
}

func rebuildWorker(ctx context.Context, opts Options, status *buildStatus, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Rebuilding site", "output", opts.SiteDir)
			err := opts.Rebuild(ctx)
			status.set(err)
			if err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// isDatabaseEvent reports whether the event concerns the watched database,
// including sqlite's journal and WAL side files.
func isDatabaseEvent(dbPath string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == filepath.Clean(dbPath) || strings.HasPrefix(name, filepath.Clean(dbPath)+"-")
}
