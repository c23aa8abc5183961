// Command worldview serves a live map preview of a generated world over
// WebSocket. Clients send plain-text commands:
//
//	view <x> <y> <width> <height>  -> one symbol row per line
//	tile <x> <y>                   -> "<kind> passable|impassable"
//	save                           -> persist the world snapshot
//
// The world is loaded from the snapshot store when a save with the
// configured name exists, otherwise generated fresh from the configured
// seed. The snapshot is written back on shutdown.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/openworldmud/server/internal/config"
	"github.com/lawnchairsociety/openworldmud/server/internal/database"
	"github.com/lawnchairsociety/openworldmud/server/internal/logger"
	"github.com/lawnchairsociety/openworldmud/server/internal/overworld"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	logConfig, err := logger.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load log config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}

	store, err := database.Open(cfg.Database)
	if err != nil {
		logger.Errorf("failed to open snapshot store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	manager, err := loadOrCreateWorld(store, cfg)
	if err != nil {
		logger.Errorf("failed to prepare world: %v", err)
		os.Exit(1)
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return cfg.Viewer.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}

	srv := &viewServer{
		manager:   manager,
		store:     store,
		worldName: cfg.World.Name,
		maxView:   cfg.Viewer.MaxViewport,
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warning("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
			return
		}
		go srv.handle(conn)
	})

	go func() {
		logger.Info("worldview listening", "addr", cfg.Viewer.ListenAddr, "world", cfg.World.Name)
		if err := http.ListenAndServe(cfg.Viewer.ListenAddr, nil); err != nil {
			logger.Errorf("server stopped: %v", err)
			os.Exit(1)
		}
	}()

	// Save the world snapshot on shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if err := srv.save(); err != nil {
		logger.Errorf("failed to save world on shutdown: %v", err)
		os.Exit(1)
	}
	logger.Info("world saved, shutting down", "world", cfg.World.Name)
}

// loadOrCreateWorld restores the named world from the store, falling back
// to a fresh manager with the configured seed when no save exists.
func loadOrCreateWorld(store *database.Store, cfg *config.WorldConfig) (*overworld.Manager, error) {
	rec, err := store.LoadWorld(cfg.World.Name)
	if err == database.ErrWorldNotFound {
		logger.Info("no saved world, generating fresh",
			"world", cfg.World.Name, "seed", cfg.World.Seed)
		return overworld.NewManagerSized(cfg.World.Seed, cfg.World.BlockSize)
	}
	if err != nil {
		return nil, err
	}

	m, err := overworld.Restore(rec.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("saved world %q is unreadable: %w", cfg.World.Name, err)
	}
	logger.Info("restored saved world",
		"world", cfg.World.Name, "seed", m.Seed(), "blocks", m.BlockCount())
	return m, nil
}

// viewServer answers map queries over a websocket connection
type viewServer struct {
	manager   *overworld.Manager
	store     *database.Store
	worldName string
	maxView   int
}

// handle runs the command loop for one client connection
func (s *viewServer) handle(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		reply := s.dispatch(strings.TrimSpace(string(message)))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
	}
}

// dispatch parses one command line and returns the reply text
func (s *viewServer) dispatch(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "error: empty command"
	}

	switch fields[0] {
	case "view":
		if len(fields) != 5 {
			return "error: usage: view <x> <y> <width> <height>"
		}
		args, err := parseInts(fields[1:])
		if err != nil {
			return "error: " + err.Error()
		}
		return s.renderView(args[0], args[1], args[2], args[3])

	case "tile":
		if len(fields) != 3 {
			return "error: usage: tile <x> <y>"
		}
		args, err := parseInts(fields[1:])
		if err != nil {
			return "error: " + err.Error()
		}
		kind := s.manager.TileAt(args[0], args[1])
		pass := "passable"
		if !kind.Passable() {
			pass = "impassable"
		}
		return kind.String() + " " + pass

	case "save":
		if err := s.save(); err != nil {
			logger.Errorf("save command failed: %v", err)
			return "error: save failed"
		}
		return "saved"

	default:
		return "error: unknown command " + fields[0]
	}
}

// renderView returns the requested rectangle as one symbol row per line
func (s *viewServer) renderView(x, y, width, height int) string {
	if width <= 0 || height <= 0 {
		return "error: width and height must be positive"
	}
	if width > s.maxView || height > s.maxView {
		return fmt.Sprintf("error: viewport larger than %d", s.maxView)
	}

	var out strings.Builder
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			out.WriteRune(s.manager.TileAt(col, row).Symbol())
		}
		if row < y+height-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// save writes the current snapshot to the store
func (s *viewServer) save() error {
	snapshot, err := s.manager.Serialize()
	if err != nil {
		return err
	}
	return s.store.SaveWorld(s.worldName, s.manager.Seed(), s.manager.BlockSize(), snapshot)
}

// parseInts converts a slice of decimal strings
func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out[i] = n
	}
	return out, nil
}
