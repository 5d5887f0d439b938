// Command forage runs a foraging simulation headless and prints the final
// scoreboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"forage/internal/app"
	"forage/internal/render"
	"forage/internal/sims/forage"
	"forage/internal/trace"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "[forage] ", log.LstdFlags|log.Lmicroseconds)

	w, err := app.BuildWorld(cfg)
	if err != nil {
		logger.Fatalf("build world: %v", err)
	}

	var rec *trace.Recorder
	if cfg.Trace != "" {
		tw, err := trace.Create(cfg.Trace)
		if err != nil {
			logger.Fatalf("open trace: %v", err)
		}
		rec = trace.NewRecorder(tw)
		if err := rec.Start(w, cfg.Seed); err != nil {
			logger.Fatalf("write trace: %v", err)
		}
	}

	if cfg.Verbose {
		_ = render.WriteTurn(os.Stdout, w.State())
	}
	err = app.Play(w, cfg.MaxTurns, func(report forage.TurnReport) error {
		for _, c := range report.Collections {
			logger.Printf("turn %d: apple %d worth %d collected at %v by %v", report.Turn, c.ResourceID, c.Value, c.Pos, c.Credited)
		}
		if cfg.Verbose {
			if err := render.WriteTurn(os.Stdout, w.State()); err != nil {
				return err
			}
		}
		if rec != nil {
			return rec.Turn(w, report)
		}
		return nil
	})
	if err != nil {
		logger.Fatalf("run: %v", err)
	}

	if rec != nil {
		if err := rec.End(w); err != nil {
			logger.Fatalf("write trace: %v", err)
		}
		if err := rec.Close(); err != nil {
			logger.Fatalf("close trace: %v", err)
		}
	}

	st := w.State()
	if st.Status != forage.StatusFinished {
		logger.Printf("stopped after %d turns with %d apples left", st.Turn, len(st.Resources))
	}
	fmt.Print(render.Scoreboard(st))
}
