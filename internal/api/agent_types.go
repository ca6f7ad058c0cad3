package api

import (
	"path/filepath"
	"strings"
)

// agentTypeByExtension classifies source files into the agent type
// that would have produced them.
var agentTypeByExtension = map[string]string{
	".jpg":  "vision",
	".jpeg": "vision",
	".png":  "vision",
	".gif":  "vision",
	".webp": "vision",
	".bmp":  "vision",
	".mp3":  "audio",
	".wav":  "audio",
	".m4a":  "audio",
	".flac": "audio",
	".ogg":  "audio",
	".mp4":  "video",
	".mov":  "video",
	".avi":  "video",
	".mkv":  "video",
	".webm": "video",
}

// AgentTypeForFile infers an agent type from a file name. Anything
// not recognized as image, audio, or video media is treated as text.
func AgentTypeForFile(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if agentType, ok := agentTypeByExtension[ext]; ok {
		return agentType
	}
	return "text"
}
