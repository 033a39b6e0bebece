// This program performs administrative tasks against the tip jar storage
// while the node is offline.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/tipjar/app/tooling/admin/commands"
	"github.com/ardanlabs/tipjar/business/sys/store"
	"github.com/ardanlabs/tipjar/foundation/logger"
	"github.com/ardanlabs/tipjar/foundation/tipjar/database"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args    conf.Args
		Storage struct {
			Kind string `conf:"default:disk"`
			Path string `conf:"default:zdata/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "tip jar admin",
		},
	}

	const prefix = "TIPJAR"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	s, err := store.Open(cfg.Storage.Kind, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	db := database.New(database.Config{
		Storage:   s,
		EvHandler: ev,
	})
	defer db.Close()

	return processCommands(cfg.Args, db)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, db *database.Database) error {
	switch args.Num(0) {
	case "tips":
		if err := commands.Tips(args.Num(1), db); err != nil {
			return fmt.Errorf("listing tips: %w", err)
		}

	case "leaderboard":
		if err := commands.Leaderboard(db); err != nil {
			return fmt.Errorf("building leaderboard: %w", err)
		}

	case "profile":
		if err := commands.Profile(args.Num(1), db); err != nil {
			return fmt.Errorf("querying profile: %w", err)
		}

	case "seed":
		if err := commands.Seed(args.Num(1), db); err != nil {
			return fmt.Errorf("seeding profiles: %w", err)
		}

	default:
		fmt.Println("tips [sender|global]: list the stored tips")
		fmt.Println("leaderboard:          print the leaderboard from the global list")
		fmt.Println("profile <address>:    print a creator profile")
		fmt.Println("seed <file>:          save the profiles in a yaml seed file")
	}

	return nil
}
