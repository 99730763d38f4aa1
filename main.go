package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snatchgame/go-server/internal/config"
	"github.com/snatchgame/go-server/internal/httpserver"
	"github.com/snatchgame/go-server/internal/room"
	"github.com/snatchgame/go-server/internal/words"
	"github.com/snatchgame/go-server/internal/ws"
	"os"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	cfg := config.FromEnv()
	hub := ws.NewHub()
	manager := room.NewManager(hub, words.Dictionary{}, cfg)
	srv := httpserver.New(manager, hub)

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("words", words.Count()).Msg("starting snatch server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
