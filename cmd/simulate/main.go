package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/models"
	"github.com/jstittsworth/courtsim/internal/providers"
	"github.com/jstittsworth/courtsim/internal/rotation"
	"github.com/jstittsworth/courtsim/internal/sim"
)

// simulate runs one match from the command line against the built-in rosters
// and prints the quarter summary, substitution log, and box score.
func main() {
	home := flag.String("home", "harbor", "home team key")
	away := flag.String("away", "summit", "away team key")
	seed := flag.Int64("seed", 1, "simulation seed")
	pace := flag.String("pace", "standard", "pace: slow, standard, fast")
	verbose := flag.Bool("v", false, "log rotation warnings")
	flag.Parse()

	if !*verbose {
		logrus.SetLevel(logrus.ErrorLevel)
	}

	provider := providers.NewStaticRosterProvider()
	homeRoster, err := provider.Roster(context.Background(), *home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown home team %q\n", *home)
		os.Exit(1)
	}
	awayRoster, err := provider.Roster(context.Background(), *away)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown away team %q\n", *away)
		os.Exit(1)
	}

	match, err := sim.NewMatch(
		sim.TeamConfig{Key: *home, Name: *home, Roster: homeRoster, Tactics: tactics(*pace, homeRoster)},
		sim.TeamConfig{Key: *away, Name: *away, Roster: awayRoster, Tactics: tactics(*pace, awayRoster)},
		sim.Options{Seed: *seed},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}

	result, err := match.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(1)
	}

	printResult(result)
}

// tactics marks the two best players as scoring options and closers.
func tactics(pace string, roster []models.Player) rotation.Tactics {
	sorted := make([]models.Player, len(roster))
	copy(sorted, roster)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].ID < sorted[j].ID
	})
	options := []uint{sorted[0].ID, sorted[1].ID}
	return rotation.Tactics{
		Pace:           rotation.Pace(pace),
		ScoringOptions: options,
		Closers:        options,
	}
}

func printResult(r *sim.Result) {
	fmt.Printf("%s %d - %d %s (seed %d)\n\n", r.Home.Name, r.Home.Score, r.Away.Score, r.Away.Name, r.Seed)

	fmt.Println("Quarters:")
	for _, q := range r.Quarters {
		fmt.Printf("  Q%d  %3d - %-3d\n", q.Quarter, q.Home, q.Away)
	}

	fmt.Printf("\nSubstitutions (%d):\n", len(r.Events))
	for _, ev := range r.Events {
		fmt.Printf("  %s\n", ev.Describe())
	}

	for _, t := range []sim.TeamResult{r.Home, r.Away} {
		fmt.Printf("\n%s box score:\n", t.Name)
		fmt.Printf("  %-22s %-3s %6s %4s %4s\n", "PLAYER", "POS", "MIN", "PTS", "PF")
		for _, line := range t.Box {
			mark := " "
			if line.Starter {
				mark = "*"
			}
			fmt.Printf("  %s%-21s %-3s %6.1f %4d %4d\n", mark, line.Name, line.Position, line.Minutes, line.Points, line.Fouls)
		}
	}

	if len(r.Shorthanded) > 0 {
		fmt.Printf("\nFinished shorthanded: %v\n", r.Shorthanded)
	}
}
