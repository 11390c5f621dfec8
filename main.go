package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dev-singh-05/gymers/internal/auth"
	"github.com/dev-singh-05/gymers/internal/cart"
	"github.com/dev-singh-05/gymers/internal/chat"
	"github.com/dev-singh-05/gymers/internal/config"
	"github.com/dev-singh-05/gymers/internal/database"
	"github.com/dev-singh-05/gymers/internal/metrics"
	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/realtime"
	"github.com/dev-singh-05/gymers/internal/router"
	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/upload"
	"github.com/dev-singh-05/gymers/internal/util"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// stores
	profiles := store.NewProfileStore(db)
	programs := store.NewProgramStore(db)
	todos := store.NewTodoStore(db)
	members := store.NewMemberStore(db)
	messages := store.NewMessageStore(db)

	collector := metrics.NewCollector()

	// realtime hub, optionally bridged over redis for multi-node
	hub := realtime.NewHub()
	hub.OnDrop(collector.RecordMessageDropped)

	var relay chat.Relay
	if cfg.Redis.URL != "" {
		bridge, err := realtime.NewBridge(cfg.Redis.URL, cfg.Redis.Channel, hub)
		if err != nil {
			log.Fatalf("init redis bridge: %v", err)
		}
		defer func() { _ = bridge.Close() }()
		relay = bridge
	}

	chatSvc := chat.NewService(messages, hub, relay)
	authSvc := auth.NewService(db, profiles, cfg.JWT.Secret, cfg.JWT.ExpireHours)

	programCart := cart.New()

	// on sign-in, make sure the user is on the chat roster; best-effort
	// with a bounded retry, terminal failure is only logged
	authSvc.OnAuthStateChange(func(user *models.User) {
		if user == nil {
			return
		}
		name := util.EmailLocalPart(user.Email)
		avatarURL := ""
		if p, err := profiles.Get(user.ID); err == nil {
			if p.Name != "" {
				name = p.Name
			}
			avatarURL = p.AvatarURL
		}
		var lastErr error
		for i := 0; i < 3; i++ {
			if _, lastErr = members.Join(user.ID, name, avatarURL); lastErr == nil {
				return
			}
		}
		log.Printf("group auto-join for user %d failed: %v", user.ID, lastErr)
	})

	uploads := upload.NewClient(cfg.Cloudinary)

	r := router.Setup(cfg, router.Deps{
		Auth:     authSvc,
		Chat:     chatSvc,
		Cart:     programCart,
		Profiles: profiles,
		Programs: programs,
		Todos:    todos,
		Members:  members,
		Uploads:  uploads,
		Metrics:  collector,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
