package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fourai/internal/pool"
	"fourai/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "train":
		return runTrain(ctx, args[1:])
	case "play":
		return runPlay(ctx, args[1:])
	case "local":
		return runLocal(ctx, args[1:])
	case "checkpoints":
		return runCheckpoints(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: fouraictl <train|play|local|checkpoints> [flags]", msg)
}

func openStore(ctx context.Context, kind, savePath, dbPath string) (storage.Store, error) {
	store, err := storage.NewStore(kind, savePath, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	return store, nil
}

func runTrain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	profilePath := fs.String("profile", "", "ini profile path (optional)")
	profileName := fs.String("profile-name", "default", "ini profile section")
	storeKind := fs.String("store", "", "store backend: scan|sqlite|memory")
	dbPath := fs.String("db-path", "", "sqlite index path (store=sqlite)")
	savePath := fs.String("save-path", "", "checkpoint path prefix")
	population := fs.Int("pop", 0, "population size")
	survivors := fs.Int("survivors", 0, "survivor count per generation")
	crossovers := fs.Int("crossovers", 0, "max bred children per generation")
	mutationProbability := fs.Float64("mutation-probability", 0, "per-weight mutation chance")
	mutationMagnitude := fs.Float64("mutation-magnitude", 0, "mutation perturbation bound")
	winScore := fs.Int("win-score", 0, "fitness delta per decided game")
	structure := fs.String("structure", "", "comma-separated layer widths, e.g. 42,25,7")
	activations := fs.String("activations", "", "comma-separated activation names")
	generations := fs.Int("gens", 0, "generation count (negative trains until interrupted)")
	saveInterval := fs.Int("save-interval", 0, "checkpoint cadence (negative disables)")
	compareInterval := fs.Int("compare-interval", 0, "random-baseline cadence (negative disables)")
	workers := fs.Int("workers", 0, "tournament worker count (0 uses GOMAXPROCS)")
	seed := fs.Int64("seed", 0, "rng seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := defaultTrainConfig()
	if *profilePath != "" {
		if err := cfg.applyProfile(*profilePath, *profileName); err != nil {
			return err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return err
	}
	if set["store"] {
		cfg.Store = *storeKind
	}
	if set["db-path"] {
		cfg.DBPath = *dbPath
	}
	if set["save-path"] {
		cfg.SavePath = *savePath
	}
	if set["pop"] {
		cfg.Population = *population
	}
	if set["survivors"] {
		cfg.Survivors = *survivors
	}
	if set["crossovers"] {
		cfg.Crossovers = *crossovers
	}
	if set["mutation-probability"] {
		cfg.MutationProbability = *mutationProbability
	}
	if set["mutation-magnitude"] {
		cfg.MutationMagnitude = *mutationMagnitude
	}
	if set["win-score"] {
		cfg.WinScore = *winScore
	}
	if set["structure"] {
		widths, err := parseStructure(*structure)
		if err != nil {
			return err
		}
		cfg.Structure = widths
	}
	if set["activations"] {
		cfg.Activations = parseList(*activations)
	}
	if set["gens"] {
		cfg.Generations = *generations
	}
	if set["save-interval"] {
		cfg.SaveInterval = *saveInterval
	}
	if set["compare-interval"] {
		cfg.CompareInterval = *compareInterval
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if set["seed"] {
		cfg.Seed = *seed
	}

	store, err := openStore(ctx, cfg.Store, cfg.SavePath, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	trainer, err := pool.New(cfg.properties(), store, logger)
	if err != nil {
		return err
	}

	if err := trainer.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Printf("interrupted at generation %d; progress up to the last checkpoint is kept", trainer.Generation())
			return nil
		}
		return err
	}
	return nil
}

func runCheckpoints(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkpoints", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: scan|sqlite|memory")
	dbPath := fs.String("db-path", "fourai.db", "sqlite index path (store=sqlite)")
	savePath := fs.String("save-path", "saves/gen", "checkpoint path prefix")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *savePath, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	generations, err := store.Generations(ctx)
	if err != nil {
		return err
	}
	if len(generations) == 0 {
		fmt.Println("no checkpoints found")
		return nil
	}
	for _, generation := range generations {
		fmt.Printf("generation=%d\n", generation)
	}
	return nil
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: scan|sqlite|memory")
	dbPath := fs.String("db-path", "fourai.db", "sqlite index path (store=sqlite)")
	savePath := fs.String("save-path", "saves/gen", "checkpoint path prefix")
	generation := fs.Int("generation", -1, "checkpoint generation to load (-1 for latest)")
	aiFirst := fs.Bool("ai-first", false, "let the network open the game")
	noColor := fs.Bool("no-color", false, "disable ANSI colors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *savePath, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	var checkpoint storage.Checkpoint
	var ok bool
	if *generation < 0 {
		checkpoint, ok, err = store.Latest(ctx)
	} else {
		checkpoint, ok, err = store.Load(ctx, *generation)
	}
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no checkpoint available; train first")
	}
	if len(checkpoint.Agents) == 0 {
		return errors.New("checkpoint holds no agents")
	}

	fmt.Printf("playing against the best agent of generation %d\n", checkpoint.Generation)
	return playInteractive(os.Stdin, os.Stdout, checkpoint.Agents[0].Player, *aiFirst, !*noColor)
}

func runLocal(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("local", flag.ContinueOnError)
	noColor := fs.Bool("no-color", false, "disable ANSI colors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return playLocal(os.Stdin, os.Stdout, !*noColor)
}
