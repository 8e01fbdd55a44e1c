package netcfg

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Config holds the connection defaults read at startup. A .env file next
// to the binary overrides nothing already present in the environment.
type Config struct {
	ServerURL  string // base websocket endpoint, no trailing room segment
	Room       string // default room id; empty means generate one
	PlayerName string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		ServerURL:  getenv("REDHORIZON_WS_URL", "ws://127.0.0.1:8000/ws"),
		Room:       getenv("REDHORIZON_ROOM", ""),
		PlayerName: getenv("REDHORIZON_NAME", "Commander"),
	}
}

// SocketURL builds the per-room dial target (the server routes on
// /ws/{room_id}).
func (c Config) SocketURL(roomID string) string {
	return strings.TrimRight(c.ServerURL, "/") + "/" + roomID
}
