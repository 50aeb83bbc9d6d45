package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Versioned static assets, relative to the static directory
const (
	AssetSiteCSS    = "css/site.css"
	AssetHeaderJS   = "js/header.js"
	AssetLeadFormJS = "js/lead-form.js"
	AssetFavicon    = "images/favicon.svg"
)

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticDir string) {
	assetVersionsOnce.Do(func() {
		assetVersions = make(map[string]string)
		for _, name := range []string{AssetSiteCSS, AssetHeaderJS, AssetLeadFormJS, AssetFavicon} {
			version := computeFileHash(filepath.Join(staticDir, name))
			if version == "" {
				version = "1"
			}
			assetVersions[name] = version
		}
		log.Printf("[INFO] Asset versions initialized: %d files", len(assetVersions))
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	// Return first 8 chars of the hash for brevity
	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash of a static asset, "1" when unknown.
// The ctx parameter keeps the signature in line with the other template helpers.
func GetAssetVersion(ctx context.Context, name string) string {
	if version, ok := assetVersions[name]; ok {
		return version
	}
	return "1"
}

// AssetURL returns the public URL of a static asset with its cache-busting query
func AssetURL(ctx context.Context, name string) string {
	return "/static/" + name + "?v=" + GetAssetVersion(ctx, name)
}
