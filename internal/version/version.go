package version

import (
	"encoding/json"
	"log"
	"os"
)

const fallback = "0.1.0"

type Info struct {
	Version string `json:"version"`
}

// Load reads version.json next to the binary's working directory; a missing
// or unreadable file falls back to a baked-in version rather than failing
// startup.
func Load() Info {
	data, err := os.ReadFile("version.json")
	if err != nil {
		return Info{Version: fallback}
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("warning: could not parse version.json: %v", err)
		return Info{Version: fallback}
	}
	return info
}
