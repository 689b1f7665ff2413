package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beltgrid/pkg/cache"
	"github.com/matzehuels/beltgrid/pkg/errors"
	"github.com/matzehuels/beltgrid/pkg/grid"
	bgio "github.com/matzehuels/beltgrid/pkg/io"
	"github.com/matzehuels/beltgrid/pkg/observability"
	"github.com/matzehuels/beltgrid/pkg/pipeline"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	listen  string
	full    bool
	noCache bool
}

// contentTypes maps each pipeline format to its HTTP content type.
var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatGraph: "image/svg+xml",
	pipeline.FormatText:  "text/plain; charset=utf-8",
}

// serveCommand creates the live preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve [script.toml|script.yaml]",
		Short: "Preview a placement script in the browser",
		Long: `Preview a placement script in the browser.

The script is reread on every request, so edits show up on reload:

  /                   page that redraws the tile picture when the script changes
  /grid.svg           tile picture (also .png, .pdf, .json, .dot, .graph.svg, .txt)
  /grid.schema.json   JSON Schema of /grid.json
  /cell?x=&y=         the belt at one cell as JSON
  /watch              websocket sending "reload" after each edit
  /healthz            liveness probe`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				f.listen = c.Config.Listen
			}
			return c.runServe(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.listen, "listen", "127.0.0.1:8080", "address to listen on")
	cmd.Flags().BoolVar(&f.full, "full", false, "frame the whole 128×128 grid")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe serves the preview until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, script string, f serveFlags) error {
	logger := loggerFromContext(ctx)

	// Fail fast on a missing or broken script; later edits are reported per request.
	data, err := readScript(script)
	if err != nil {
		return err
	}
	if _, err := bgio.ParseScriptAs(data, bgio.FormatForPath(script)); err != nil {
		return err
	}

	runner, err := c.newRunner(f.noCache, cache.NewScopedKeyer(nil, "serve:"))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.pipelineOptions()
	opts.FullGrid = f.full
	s := newPreviewServer(script, opts, runner)

	srv := &http.Server{
		Addr:              f.listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		// Watch connections are hijacked; cancelling ctx ends them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	printSuccess("Serving %s", script)
	printKeyValue("Preview", StyleLink.Render("http://"+f.listen+"/"))
	logger.Info("listening", "addr", f.listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// =============================================================================
// Preview Server
// =============================================================================

// defaultPollInterval is how often /watch checks the script file.
const defaultPollInterval = 500 * time.Millisecond

// previewServer renders a script file on demand.
type previewServer struct {
	script   string
	opts     pipeline.Options
	runner   *pipeline.Runner
	poll     time.Duration
	upgrader websocket.Upgrader
}

func newPreviewServer(script string, opts pipeline.Options, runner *pipeline.Runner) *previewServer {
	return &previewServer{
		script: script,
		opts:   opts,
		runner: runner,
		poll:   defaultPollInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observeRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/cell", s.handleCell)
	r.Get("/watch", s.handleWatch)
	r.Get("/grid.schema.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/schema+json")
		_, _ = w.Write(bgio.Schema())
	})
	r.Get("/grid.{ext}", s.handleGrid)
	return r
}

// observeRequests reports every request to the HTTP hooks.
func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

const indexPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>%[1]s</title>
<style>body { background: #1e1e1e; color: #ccc; font-family: sans-serif; }</style>
</head>
<body>
<h1>%[1]s</h1>
<img src="/grid.svg" alt="%[1]s">
<p><a href="/grid.json">json</a> · <a href="/grid.dot">dot</a> · <a href="/grid.graph.svg">graph</a> · <a href="/grid.txt">text</a></p>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/watch");
ws.onmessage = () => { document.querySelector("img").src = "/grid.svg?t=" + Date.now(); };
</script>
</body>
</html>
`

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, html.EscapeString(filepath.Base(s.script)))
}

// handleGrid renders the script in the format named by the extension.
func (s *previewServer) handleGrid(w http.ResponseWriter, r *http.Request) {
	format, ok := formatForExtension(chi.URLParam(r, "ext"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, err := readScript(s.script)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.opts
	opts.Script = data
	opts.ScriptFormat = bgio.FormatForPath(s.script)
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(result.Artifacts[format])
}

// scriptStamp identifies one version of the script file.
type scriptStamp struct {
	mod  time.Time
	size int64
	ok   bool
}

func (s *previewServer) stamp() scriptStamp {
	fi, err := os.Stat(s.script)
	if err != nil {
		return scriptStamp{}
	}
	return scriptStamp{mod: fi.ModTime(), size: fi.Size(), ok: true}
}

// handleWatch sends "reload" over a websocket whenever the script changes.
func (s *previewServer) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader goroutine; the client never sends, so any result means it left.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	last := s.stamp()
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
			return
		case <-ticker.C:
			cur := s.stamp()
			if cur == last {
				continue
			}
			last = cur
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
				return
			}
		}
	}
}

// cellResponse is the JSON body of /cell.
type cellResponse struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Turn   string `json:"turn"`
}

// handleCell reports the belt at ?x=&y=.
func (s *previewServer) handleCell(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "x and y must be integers"))
		return
	}
	if err := errors.ValidateCoordinate(x, y, grid.Size); err != nil {
		writeError(w, err)
		return
	}

	data, err := readScript(s.script)
	if err != nil {
		writeError(w, err)
		return
	}
	script, err := bgio.ParseScriptAs(data, bgio.FormatForPath(s.script))
	if err != nil {
		writeError(w, err)
		return
	}
	g, _ := script.Build()

	b, ok := g.Get(x, y)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no belt at (%d,%d)", x, y))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cellResponse{
		X:      x,
		Y:      y,
		Input:  b.Input.String(),
		Output: b.Output.String(),
		Turn:   b.Turn().String(),
	})
}

// formatForExtension maps a URL extension back to its pipeline format.
func formatForExtension(ext string) (string, bool) {
	for _, format := range pipeline.ValidFormats {
		if pipeline.Extension(format) == ext {
			return format, true
		}
	}
	return "", false
}

// writeError writes err as a plain-text response with a status for its kind.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, errors.UserMessage(err), httpStatus(err))
}

func httpStatus(err error) int {
	switch errors.KindOf(err) {
	case errors.KindUsage:
		return http.StatusBadRequest
	case errors.KindInvalid:
		return http.StatusUnprocessableEntity
	case errors.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
