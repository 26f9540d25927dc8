//go:build js

package main

import (
	"context"
	"log"
	"time"

	"codeberg.org/anaseto/gruid"
	jsd "codeberg.org/anaseto/gruid-js"
)

var driver gruid.Driver

func initDriver() {
	driver = jsd.NewDriver(jsd.Config{
		TileManager: &glyphTileManager{},
		AppCanvasId: "gamecanvas",
		AppDivId:    "gamediv",
	})
}

func main() {
	initDriver()
	log.SetPrefix("siheyuan ")
	cfg := Config{
		Seed:   uint64(time.Now().UnixNano()),
		Levels: MaxLevels,
		Loot:   100,
	}
	for {
		g, err := NewGame(cfg)
		if err != nil {
			log.Fatal(err)
		}
		app := gruid.NewApp(gruid.AppConfig{
			Driver: driver,
			Model:  newModel(g),
		})
		if err := app.Start(context.Background()); err != nil {
			log.Fatal(err)
		}
		cfg.Seed++
	}
}

// subSig is defined here for build compatibility purposes, it is not used
// for the browser.
func subSig(ctx context.Context, msgs chan<- gruid.Msg) {
}
