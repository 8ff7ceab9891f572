// Command boardview renders a scenario to SVG from the command line and
// prints the previous turn's combat log.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/gravitas-games/hexboard/internal/board"
	"github.com/gravitas-games/hexboard/internal/combatlog"
	"github.com/gravitas-games/hexboard/internal/game"
	"github.com/gravitas-games/hexboard/internal/intent"
	"github.com/gravitas-games/hexboard/internal/scene"
	"github.com/gravitas-games/hexboard/internal/stats"
	"github.com/gravitas-games/hexboard/pkg/hexgrid"
	"github.com/leonelquinteros/gotext"
)

// pointList collects repeated -click flags.
type pointList []hexgrid.Point

func (l *pointList) String() string {
	parts := make([]string, len(*l))
	for i, p := range *l {
		parts[i] = p.String()
	}
	return strings.Join(parts, ";")
}

func (l *pointList) Set(v string) error {
	p, err := hexgrid.ParsePoint(v)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func main() {
	var clicks pointList
	scenarioPath := flag.String("scenario", "", "scenario YAML file (default: built-in position)")
	statsPath := flag.String("stats", "", "stat override YAML file")
	out := flag.String("out", "board.svg", "where to write the SVG")
	panelsOut := flag.String("panels", "", "optionally write the side panels HTML here")
	hexSize := flag.Float64("size", 32, "hex radius in pixels")
	copySVG := flag.Bool("copy", false, "copy the SVG to the clipboard")
	locales := flag.String("locales", "./locales", "gettext catalogue directory")
	lang := flag.String("lang", "en_US", "combat log language")
	flag.Var(&clicks, "click", "click on q,r before rendering (repeatable)")
	flag.Parse()

	gotext.Configure(*locales, *lang, "default")

	st := stats.Default()
	if *statsPath != "" {
		var err error
		if st, err = stats.Load(*statsPath); err != nil {
			log.Fatalf("Failed to load stats: %v", err)
		}
	}

	var store *game.Store
	var err error
	if *scenarioPath != "" {
		store, err = game.LoadScenario(*scenarioPath, st)
	} else {
		store, err = game.DefaultScenario("local").Build(st)
	}
	if err != nil {
		log.Fatalf("Failed to load game: %v", err)
	}

	composer := scene.NewComposer(hexgrid.Layout{Size: *hexSize}, st)
	for _, p := range clicks {
		in := board.Click(p, composer.Resolve(store.Snapshot()))
		if err := store.Apply(in); err != nil {
			color.Yellow("click %s: %v", p, err)
			continue
		}
		fmt.Printf("click %s -> %s\n", p, intent.Describe(in))
	}

	sc := composer.Compose(store.Snapshot())
	svg, panels, err := scene.Markup(sc)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := os.WriteFile(*out, []byte(svg), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Turn %d board written to %s (%d tiles)\n", sc.Turn, *out, len(sc.Tiles))
	if *panelsOut != "" {
		if err := os.WriteFile(*panelsOut, []byte(panels), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *panelsOut, err)
		}
	}

	if banner := sc.Banner(); banner != "" {
		color.New(color.FgMagenta, color.Bold).Println(banner)
	}
	printLog(sc)

	if *copySVG {
		if err := clipboard.WriteAll(svg); err != nil {
			log.Printf("Failed to copy to clipboard: %v", err)
		} else {
			fmt.Println("SVG copied to clipboard")
		}
	}
}

func printLog(sc scene.Scene) {
	if len(sc.Log) == 0 {
		color.New(color.Faint).Println("No battle reports from last turn.")
		return
	}
	title := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	for _, e := range sc.Log {
		title.Println(e.Title)
		for _, line := range e.Lines {
			switch line.Tone {
			case combatlog.Kill:
				good.Println("  " + line.Text)
			case combatlog.Loss:
				bad.Println("  " + line.Text)
			default:
				fmt.Println("  " + line.Text)
			}
		}
	}
}
