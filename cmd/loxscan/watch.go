package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchFile scans path once and again after every write until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are still seen.
func (s *scanner) watchFile(ctx context.Context, path string, logger *log.Logger) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Printf("%s: %v", path, err)
		return exitIOErr
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Printf("starting watcher: %v", err)
		return exitIOErr
	}
	defer w.Close()

	err = w.Add(filepath.Dir(abs))
	if err != nil {
		logger.Printf("watching %s: %v", path, err)
		return exitIOErr
	}

	s.rescan(ctx, path, logger)

	for {
		select {
		case <-ctx.Done():
			return exitOK
		case ev, ok := <-w.Events:
			if !ok {
				return exitOK
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.rescan(ctx, path, logger)
		case err, ok := <-w.Errors:
			if !ok {
				return exitOK
			}
			logger.Printf("watch: %v", err)
		}
	}
}

func (s *scanner) rescan(ctx context.Context, path string, logger *log.Logger) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("reading %s: %v", path, err)
		return
	}

	logger.Printf("scanning %s", path)
	_, err = s.scanSource(ctx, path, string(bytes))
	if err != nil {
		logger.Printf("%s: %v", path, err)
	}
}
