// Entry point: loads config, wires the realtime store and module services,
// starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"quickbite/internal/config"
	httptransport "quickbite/internal/http"
	"quickbite/internal/infra"
	"quickbite/internal/modules/dispatch"
	"quickbite/internal/modules/notify"
	"quickbite/internal/modules/ordersync"
	"quickbite/internal/modules/presence"
	"quickbite/internal/modules/routecache"
	"quickbite/internal/modules/routes"
	"quickbite/internal/modules/userloc"
	"quickbite/internal/modules/zone"
	"quickbite/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store realtime.Store
	var verifier infra.TokenVerifier
	var messenger notify.Messenger

	switch cfg.Realtime.Driver {
	case "memory":
		store = realtime.NewMemoryStore()
		verifier = infra.InsecureVerifier{}
		log.Printf("realtime: using in-memory store with INSECURE auth; local development only")
	default:
		// Credentials are required up front: the API cannot verify tokens
		// without them. An unreachable database is not fatal; the store
		// degrades lazily and syncs report "unavailable" until it connects.
		app, err := infra.NewFirebaseApp(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase init: %v", err)
		}
		store = realtime.NewFirebaseStore(app)
		if verifier, err = infra.NewFirebaseVerifier(ctx, app); err != nil {
			log.Fatalf("firebase auth init: %v", err)
		}
		if messenger, err = infra.NewMessaging(ctx, app); err != nil {
			log.Printf("firebase messaging init failed, pushes disabled: %v", err)
		}
	}

	var mirror *presence.GeoMirror
	if cfg.Redis.Addr != "" {
		mirror = presence.NewGeoMirror(infra.NewRedis(cfg.Redis.Addr))
	}
	var history *presence.History
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("postgres init: %v", err)
		}
		defer pool.Close()
		history = presence.NewHistory(pool)
	}

	presenceSvc := presence.NewService(store, mirror, history)
	// A nil *GeoMirror must stay a nil interface, or Nearby would call
	// through a nil receiver.
	var nearby dispatch.NearbyIndex
	if mirror != nil {
		nearby = mirror
	}
	dispatchSvc := dispatch.NewService(presenceSvc, nearby)
	routeCache := routecache.NewCache(store)
	syncSvc := ordersync.NewService(store, routeCache)
	zoneSvc := zone.NewService(store)
	userlocSvc := userloc.NewService(store)
	notifySvc := notify.NewService(messenger, store)

	var routeSvc *routes.Service
	if cfg.Maps.APIKey != "" {
		mapsClient, err := routes.NewMapsClient(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		routeSvc = routes.NewService(mapsClient, routeCache)
	}

	router := httptransport.NewRouter(httptransport.ServerDeps{
		Presence:    presenceSvc,
		Dispatch:    dispatchSvc,
		Sync:        syncSvc,
		Routes:      routeSvc,
		Zones:       zoneSvc,
		UserLoc:     userlocSvc,
		Notify:      notifySvc,
		Verifier:    verifier,
		DispatchCfg: cfg.Dispatch,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
