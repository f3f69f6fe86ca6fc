package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tuboc/chip8vm/chip8"
	"github.com/tuboc/chip8vm/emulator"
	"github.com/tuboc/chip8vm/logger"
)

var (
	frontendName = flag.String("frontend", "sdl", "display frontend: sdl or term")
	scale        = flag.Int("scale", emulator.DefaultScale, "sdl window pixels per chip8 pixel")
	strict       = flag.Bool("strict", true, "halt on unknown opcodes instead of skipping them")
	stackLimit   = flag.Int("stack", chip8.DefaultStackLimit, "call stack depth, 0 for unbounded")
	logPath      = flag.String("log", "", "log file path (default: stderr, discarded for -frontend term)")
	debug        = flag.Bool("debug", false, "log every executed opcode")
	stats        = flag.Bool("stats", false, "serve runtime statistics on "+emulator.StatsAddress)
)

// sdl must run on the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] <rom file>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romPath string) error {
	path := *logPath
	if path == "" && *frontendName == "term" {
		path = os.DevNull
	}
	log, closer, err := logger.New(path, *debug)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(log)

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	log.Info("rom read", "path", romPath, "size", len(rom))

	opts := []chip8.Option{
		chip8.WithStackLimit(*stackLimit),
		chip8.WithLogger(log),
	}
	if !*strict {
		opts = append(opts, chip8.WithLenientOpcodes())
	}

	fe, err := newFrontend(*frontendName)
	if err != nil {
		return err
	}
	defer func() {
		if err := fe.Close(); err != nil {
			log.Error("closing frontend", "error", err)
		}
	}()

	emu, err := emulator.New(rom, fe, log, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", romPath, err)
	}

	if *stats {
		emulator.LaunchStats(log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return emu.Run(ctx)
}

func newFrontend(name string) (emulator.Frontend, error) {
	switch name {
	case "sdl":
		return emulator.NewSDL(*scale)
	case "term":
		return emulator.NewTerminal()
	}
	return nil, fmt.Errorf("unknown frontend %q", name)
}
