// Package web holds the page served by the monitor.
package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DevModeEnv names the environment variable that makes the monitor serve the
// page from the source tree, so that edits show up without rebuilding.
const DevModeEnv = "VMSIM_MONITOR_DEV"

//go:embed dist
var dist embed.FS

// Assets returns the files of the monitor page.
func Assets() http.FileSystem {
	if devMode() {
		dir := sourceDir()
		log.Printf("monitor page served from %s", dir)

		return http.Dir(dir)
	}

	page, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(page)
}

func sourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot locate the monitor page sources")
	}

	return filepath.Join(filepath.Dir(file), "dist")
}

// devMode accepts the values of strconv.ParseBool. Anything else is off.
func devMode() bool {
	on, err := strconv.ParseBool(os.Getenv(DevModeEnv))
	return err == nil && on
}
