package configwatcher

import (
	"campus_backend/internal/config"
	"campus_backend/pkg/logger"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const settleDelay = 1 * time.Second

// WatchConfig watches configDir/config.yaml and calls onReload with the
// freshly parsed config once edits settle. Editors often write a file twice
// per save, so write events only arm a timer; the reload happens when no
// further write lands within settleDelay. Blocks until the watcher dies.
func WatchConfig(configDir string, onReload func(*config.Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	file, err := filepath.Abs(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		return err
	}
	if err := watcher.Add(file); err != nil {
		return err
	}

	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if !settle.Stop() {
					select {
					case <-settle.C:
					default:
					}
				}
				settle.Reset(settleDelay)
			}
		case <-settle.C:
			newCfg, err := config.LoadConfig(configDir)
			if err != nil {
				// A half-written or invalid file keeps the running config.
				logger.Log.Error("config reload failed, keeping current values", zap.Error(err))
				continue
			}
			onReload(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("config watcher error", zap.Error(err))
		}
	}
}
