package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/atelier-ops/content-engine/internal/config"
	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
	"github.com/atelier-ops/content-engine/internal/repository"
	"github.com/atelier-ops/content-engine/internal/service"
	"github.com/atelier-ops/content-engine/pkg/logger"
)

// Options are the global flags shared by every command
type Options struct {
	Snapshot string `long:"snapshot" env:"SNAPSHOT_PATH" description:"Path to the exported state document"`
	Config   string `long:"config" env:"ENGINE_TUNING_FILE" description:"Optional YAML tuning file"`
	Today    string `long:"today" description:"Override today's date (YYYY-MM-DD)"`

	Suggest   SuggestCommand   `command:"suggest" description:"Propose assets for open slots"`
	CheckCopy CheckCopyCommand `command:"check-copy" description:"Compare copy against existing posts"`
	Balance   BalanceCommand   `command:"balance" description:"Report channel concentration of recent posts"`
	Validate  ValidateCommand  `command:"validate" description:"Detect calendar conflicts"`
	Expand    ExpandCommand    `command:"expand" description:"Expand an asset into a core post and derivatives"`
	Move      MoveCommand      `command:"move" description:"Change a post's status through the approval gate"`
}

type SuggestCommand struct {
	Weeks int `long:"weeks" description:"Weeks ahead to plan (0 uses the configured default)"`
}

type CheckCopyCommand struct {
	Text      string  `long:"text" required:"true" description:"Copy to check"`
	Threshold float64 `long:"threshold" description:"Override the similarity threshold"`
}

type BalanceCommand struct{}

type ValidateCommand struct {
	Days int `long:"days" default:"14" description:"Days ahead to scan (0 scans every date)"`
}

type ExpandCommand struct {
	Asset string `long:"asset" required:"true" description:"Asset id"`
}

type MoveCommand struct {
	Post string `long:"post" required:"true" description:"Post id"`
	To   string `long:"to" required:"true" description:"Target status"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			// go-flags has already printed it
			if flagsErr.Type == flags.ErrHelp {
				return
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.LoadWithTuning(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.Snapshot != "" {
		cfg.Snapshot.Path = opts.Snapshot
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	clock, err := newClock(cfg, opts.Today)
	if err != nil {
		return err
	}

	var src repository.SnapshotSource = repository.NewJSONFileSource(cfg.Snapshot.Path)
	snap, err := src.Load(context.Background())
	if err != nil {
		return err
	}
	log.Debug().
		Str("path", cfg.Snapshot.Path).
		Int("assets", len(snap.Assets)).
		Int("slots", len(snap.Slots)).
		Int("posts", len(snap.Posts)).
		Msg("Snapshot loaded")

	engine := service.NewEngine(cfg, clock, platform.UUIDGenerator{}, log)

	out, err := dispatch(parser.Active, &opts, engine, snap, log)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dispatch(active *flags.Command, opts *Options, engine *service.Engine, snap *models.Snapshot, log zerolog.Logger) (any, error) {
	if active == nil {
		return nil, errors.New("no command given")
	}

	switch active.Name {
	case "suggest":
		return engine.PlanCalendar(snap, opts.Suggest.Weeks), nil
	case "check-copy":
		if opts.CheckCopy.Threshold > 0 {
			return engine.CheckCopyWithThreshold(opts.CheckCopy.Text, snap.Posts, opts.CheckCopy.Threshold), nil
		}
		return engine.CheckCopy(opts.CheckCopy.Text, snap.Posts), nil
	case "balance":
		return engine.CheckBalance(snap.Posts), nil
	case "validate":
		return engine.ValidateCalendar(snap.Posts, opts.Validate.Days), nil
	case "expand":
		return engine.ExpandAsset(snap, opts.Expand.Asset)
	case "move":
		post, ok := snap.Post(opts.Move.Post)
		if !ok {
			return nil, fmt.Errorf("post %s not found", opts.Move.Post)
		}
		others := make([]models.ContentPost, 0, len(snap.Posts))
		for _, p := range snap.Posts {
			if p.ID != post.ID {
				others = append(others, p)
			}
		}
		return engine.MovePost(post, models.PostStatus(opts.Move.To), others)
	}

	log.Error().Str("command", active.Name).Msg("Unhandled command")
	return nil, fmt.Errorf("unknown command %q", active.Name)
}

func newClock(cfg *config.Config, today string) (platform.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if today == "" {
		return platform.ZonedClock{Base: platform.SystemClock{}, Loc: loc}, nil
	}
	t, err := time.ParseInLocation(models.DateLayout, today, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q: %w", today, err)
	}
	return platform.FixedClock{T: t}, nil
}
