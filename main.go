//go:build !js

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"codeberg.org/anaseto/gruid"
)

func main() {
	optSeed := flag.Uint64("seed", 0, "random seed (0 means time-based)")
	optLevel := flag.Int("level", 0, "starting level, from 0")
	optLevels := flag.Int("levels", MaxLevels, "number of levels")
	optLoot := flag.Int("loot", 100, "total loot over all levels")
	optDump := flag.Bool("dump", false, "print the starting level as text and exit")
	optLog := flag.String("log", "", "write logs to file")
	optVersion := flag.Bool("version", false, "print build info")
	opt256colors := new(bool)
	optTrueColor := new(bool)
	optFullscreen := new(bool)
	if Tiles {
		optFullscreen = flag.Bool("F", false, "fullscreen")
	} else {
		opt256colors = flag.Bool("x", false, "use xterm 256-color palette (solarized approximation)")
		optTrueColor = flag.Bool("t", false, "use true color selenized palette (not supported by all terminals)")
	}
	flag.Parse()

	if *optVersion {
		fmt.Printf("siheyuan\t%v\n", Version)
		if bi, ok := debug.ReadBuildInfo(); ok {
			fmt.Print(bi)
		}
		os.Exit(0)
	}
	if runtime.GOOS == "windows" {
		ColorMode = ColorMode8
	}
	switch {
	case *opt256colors:
		ColorMode = ColorMode256
	case *optTrueColor:
		ColorMode = ColorMode24bit
	}
	log.SetPrefix("siheyuan ")
	cfg := Config{
		Seed:   *optSeed,
		Level:  *optLevel,
		Levels: *optLevels,
		Loot:   *optLoot,
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	g, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if *optDump {
		fmt.Printf("seed %d level %d\n", cfg.Seed, g.Level)
		fmt.Print(g.Map.Dump())
		return
	}
	if f := setLogOutput(*optLog); f != nil {
		defer f.Close()
	}
	initDriver(*optFullscreen)
	if err := RunGame(g); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

// RunGame runs the game until the player quits.
func RunGame(g *Game) error {
	app := gruid.NewApp(gruid.AppConfig{
		Driver: driver,
		Model:  newModel(g),
	})
	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("running game: %v", err)
	}
	return nil
}

// setLogOutput sets standard log output to the given file. Without a file,
// logs are discarded in terminal mode, as the screen is in use.
func setLogOutput(file string) *os.File {
	if file == "" {
		if !Tiles {
			log.SetOutput(io.Discard)
		}
		return nil
	}
	f, err := os.Create(file)
	if err != nil {
		log.Print(err)
		return nil
	}
	if Tiles {
		log.SetOutput(io.MultiWriter(f, os.Stderr))
	} else {
		log.SetOutput(f)
	}
	return f
}

// subSig is a subscription that intercepts SIGTERM for closing the game
// gracefully.
func subSig(ctx context.Context, msgs chan<- gruid.Msg) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	select {
	case <-ctx.Done():
	case <-sig:
		msgs <- gruid.MsgQuit{}
	}
}
