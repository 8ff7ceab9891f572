package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexboard/internal/archive"
	"github.com/gravitas-games/hexboard/internal/board"
	"github.com/gravitas-games/hexboard/internal/config"
	"github.com/gravitas-games/hexboard/internal/game"
	"github.com/gravitas-games/hexboard/internal/scene"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/gravitas-games/hexboard/pkg/models"
)

// Server represents the board server
type Server struct {
	config       *config.Config
	session      *Session
	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator
	redis        *redis.Client

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance with everything configured in cfg
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	var redisClient *redis.Client
	var arch archive.Archive = archive.NewMemoryArchive()
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		arch = archive.NewRedisArchive(redisClient, cfg.Redis.ArchivePrefix)
		log.Println("Connected to Redis")
	} else {
		log.Println("No Redis address configured, battle reports are kept in memory")
	}

	session, err := LoadSession(ctx, cfg, arch)
	if err != nil {
		cancel()
		return nil, err
	}

	var validator *JWTValidator
	if !cfg.JWT.Disabled {
		if validator, err = NewJWTValidator(cfg, redisClient); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
		}
	} else {
		log.Println("Warning: JWT authentication disabled, all connections play as guests")
	}

	srv := newServer(ctx, cancel, cfg, session, validator)
	srv.redis = redisClient

	log.Println("Server initialized successfully")
	return srv, nil
}

// LoadSession builds the stat table, the game store and the scene composer
// described by cfg.
func LoadSession(ctx context.Context, cfg *config.Config, arch archive.Archive) (*Session, error) {
	st := stats.Default()
	if cfg.Game.StatsPath != "" {
		var err error
		if st, err = stats.Load(cfg.Game.StatsPath); err != nil {
			return nil, err
		}
	}

	opts := []game.Option{game.WithArchive(arch)}
	var store *game.Store
	var err error
	if cfg.Game.ScenarioPath != "" {
		store, err = game.LoadScenario(cfg.Game.ScenarioPath, st, opts...)
	} else {
		store, err = game.DefaultScenario(cfg.Game.ID).Build(st, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if err := store.RestoreReports(ctx); err != nil {
		log.Printf("Warning: failed to restore battle reports: %v", err)
	}

	composer := scene.NewComposer(
		hexgrid.Layout{Size: cfg.Board.HexSize},
		st,
		board.WithPalette(cfg.Board.Palette),
		board.WithManyMarker(cfg.Board.ManyMarker),
	)
	return NewSession(store, composer), nil
}

func newServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, session *Session, validator *JWTValidator) *Server {
	return &Server{
		config:       cfg,
		session:      session,
		jwtValidator: validator,
		connections:  make(map[*Connection]bool),
		ctx:          ctx,
		cancel:       cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/board.svg", s.handleBoard)
	return mux
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)
	log.Printf("Board snapshot: http://%s/board.svg", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	// Closing the socket ends each read pump, which then releases its
	// connection.
	s.connMu.Lock()
	for conn := range s.connections {
		conn.ws.Close()
	}
	s.connMu.Unlock()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// authenticate resolves the player behind a request
func (s *Server) authenticate(r *http.Request) (*models.Player, error) {
	if s.jwtValidator == nil {
		return &models.Player{ID: r.RemoteAddr, Username: "guest"}, nil
	}
	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		return nil, fmt.Errorf("missing authentication token")
	}
	return s.jwtValidator.ValidateToken(tokenString)
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Printf("New WebSocket connection request from %s", r.RemoteAddr)

	player, err := s.authenticate(r)
	if err != nil {
		log.Printf("Rejected connection from %s: %v", r.RemoteAddr, err)
		http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	log.Printf("Authenticated user: %s (%s) from %s", player.Username, player.ID, r.RemoteAddr)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s, player)

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	log.Printf("WebSocket connection established: %s (%s)", player.Username, r.RemoteAddr)

	conn.Handle()

	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s (%s)", player.Username, r.RemoteAddr)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","game":%q,"turn":%d,"players":%d}`,
		s.session.ID, s.session.store.Snapshot().Turn, len(s.session.GetPlayers()))
}

// handleBoard serves the current board as an SVG document
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sc := s.session.composer.Compose(s.session.store.Snapshot())
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := scene.WriteSVG(w, sc); err != nil {
		log.Printf("Failed to serve board: %v", err)
	}
}
