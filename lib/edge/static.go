package edge

import (
	"path"
	"strings"

	"portfolio/lib/constants"
)

var staticExtensions = map[string]struct{}{
	".js": {}, ".mjs": {}, ".css": {}, ".map": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".avif": {}, ".ico": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".otf": {}, ".eot": {},
	".txt": {}, ".xml": {}, ".json": {},
}

// IsStaticAsset reports whether uri is a build artifact that never needs a session.
// It runs before anything else on the request phase and does no I/O.
func IsStaticAsset(uri string) bool {
	if strings.HasPrefix(uri, constants.STATIC_ASSET_PREFIX) {
		return true
	}
	ext := path.Ext(uri)
	if ext == "" {
		return false
	}
	if _, ok := staticExtensions[ext]; ok {
		return true
	}
	_, ok := staticExtensions[strings.ToLower(ext)]
	return ok
}
