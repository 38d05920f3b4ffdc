package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/park285/chess-duel/internal/probe"
)

func main() {
	baseURL := os.Getenv("CHESS_BASE_URL")
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}

	client := probe.NewClient(baseURL, probe.WithTimeout(5*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	h, err := client.Health(ctx)
	if err != nil {
		log.Fatalf("/healthz error: %v", err)
	}
	log.Printf("/healthz ok: status=%s connections=%d tokens=%d uptime=%ds", h.Status, h.Connections, h.Tokens, h.UptimeSec)

	tok, err := client.Handshake(ctx)
	if err != nil {
		log.Fatalf("ws handshake error: %v", err)
	}
	log.Printf("ws ok: token=%s", tok)
}
