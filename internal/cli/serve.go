package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	treeio "github.com/matzehuels/treeize/pkg/io"
	"github.com/matzehuels/treeize/pkg/pipeline"
	"github.com/matzehuels/treeize/pkg/tree"
)

// indexHTML is the page served at / embedding the rendered graph.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { margin: 0; background: #fafafa; font-family: sans-serif; }
header { padding: 8px 16px; border-bottom: 1px solid #ddd; background: #fff; }
header h1 { font-size: 16px; margin: 0; }
main { display: flex; justify-content: center; padding: 16px; }
</style>
</head>
<body>
<header><h1>%s</h1></header>
<main><img src="/graph.svg" alt="graph"></main>
</body>
</html>
`

// serveCommand creates the serve command, which renders a graph on
// demand over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		style   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a graph rendering over HTTP",
		Long: `Serve starts an HTTP server that renders the graph file on every
request, so edits to the file show up on reload. Endpoints: / (HTML
page), /graph.svg, /graph.png, /graph.json (positioned export), and
/healthz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			if style != "" {
				opts.StylePath = style
			}
			s := &graphServer{
				path:   args[0],
				runner: c.newRunner(cmd, noCache),
				opts:   opts,
			}
			// Fail fast on an unreadable file before binding the port.
			if _, err := treeio.ImportJSON(s.path); err != nil {
				return err
			}
			return s.listen(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&style, "style", "", "TOML style file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the layout and artifact caches")

	return cmd
}

// graphServer renders a graph file on demand.
type graphServer struct {
	path   string
	runner *pipeline.Runner
	opts   pipeline.Options
}

func (s *graphServer) listen(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/graph.svg", s.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/graph.png", s.handleArtifact(pipeline.FormatPNG, "image/png"))
	r.Get("/graph.json", s.handleArtifact(pipeline.FormatJSON, "application/json"))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		printInfo("Serving %s on http://localhost%s", s.path, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *graphServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	g, err := treeio.ImportJSON(s.path)
	title := s.path
	if err == nil {
		if t, ok := g.Meta()["title"].(string); ok && t != "" {
			title = t
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, title, title)
}

// handleArtifact renders the graph file and responds with the named
// format. The pipeline cache makes repeated reloads cheap.
func (s *graphServer) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := treeio.ImportJSON(s.path)
		if err != nil {
			httpError(w, r, err)
			return
		}
		data, err := s.render(r.Context(), g, format)
		if err != nil {
			httpError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(data)
	}
}

func (s *graphServer) render(ctx context.Context, g *tree.Graph, format string) ([]byte, error) {
	opts := s.opts
	opts.Formats = []string{format}
	opts.Logger = loggerFromContext(ctx)
	res, err := s.runner.Execute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts[format], nil
}

func httpError(w http.ResponseWriter, r *http.Request, err error) {
	loggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
