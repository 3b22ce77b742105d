// Command campaignctl inspects and maintains a campaign store without the server.
//
// Commands:
//   - show: summary of settlements, survivors and ongoing activities
//   - export: write the campaign backup to a file or stdout
//   - import: replace the campaign with a backup
//   - validate: check backup files without importing them
//   - select: change the selected settlement, survivor, hunt, showdown or tab
//   - monsters: list the reference monsters
//
// The store is configured like the server (CAMPAIGN_DATA_DIR, CAMPAIGN_STORE,
// CAMPAIGN_FILE, REFERENCE_DIR) or with the matching flags. A running server
// with the file store picks up edits made here.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/campaign-keeper/game/config"
	"github.com/wricardo/campaign-keeper/game/engine"
	"github.com/wricardo/campaign-keeper/game/reference"
	"github.com/wricardo/campaign-keeper/game/schema"
	"github.com/wricardo/campaign-keeper/game/service"
	"github.com/wricardo/campaign-keeper/game/session"
)

func main() {
	godotenv.Load()

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "campaignctl: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "campaignctl",
		Usage: "inspect and maintain the campaign store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Value:   "data",
				Usage:   "directory holding the campaign store",
				Sources: cli.EnvVars("CAMPAIGN_DATA_DIR"),
			},
			&cli.StringFlag{
				Name:    "store",
				Value:   config.StoreFile,
				Usage:   "campaign store: file or badger",
				Sources: cli.EnvVars("CAMPAIGN_STORE"),
			},
			&cli.StringFlag{
				Name:    "file",
				Value:   "campaign.json",
				Usage:   "campaign file name for the file store",
				Sources: cli.EnvVars("CAMPAIGN_FILE"),
			},
			&cli.StringFlag{
				Name:    "reference-dir",
				Usage:   "directory of monster datasets overriding the embedded ones",
				Sources: cli.EnvVars("REFERENCE_DIR"),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log store activity to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "print a campaign summary",
				Action: withService(showAction),
			},
			{
				Name:      "export",
				Usage:     "write the campaign backup",
				ArgsUsage: "[file]",
				Action:    withService(exportAction),
			},
			{
				Name:      "import",
				Usage:     "replace the campaign with a backup",
				ArgsUsage: "<file>",
				Action:    withService(importAction),
			},
			{
				Name:      "validate",
				Usage:     "check backup files without importing them",
				ArgsUsage: "<file>...",
				Action:    validateAction,
			},
			{
				Name:  "select",
				Usage: "change the current selection",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "settlement", Usage: "settlement id"},
					&cli.StringFlag{Name: "survivor", Usage: "survivor id"},
					&cli.StringFlag{Name: "hunt", Usage: "hunt id"},
					&cli.StringFlag{Name: "showdown", Usage: "showdown id"},
					&cli.StringFlag{Name: "tab", Usage: "selected tab"},
				},
				Action: withService(selectAction),
			},
			{
				Name:   "monsters",
				Usage:  "list the reference monsters",
				Action: monstersAction,
			},
		},
	}
}

// settingsFrom builds store settings from the root flags
func settingsFrom(cmd *cli.Command) (*config.Settings, error) {
	s := &config.Settings{
		Port:         8080,
		DataDir:      cmd.String("data-dir"),
		Store:        cmd.String("store"),
		CampaignFile: cmd.String("file"),
		ReferenceDir: cmd.String("reference-dir"),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func loggerFor(cmd *cli.Command) *slog.Logger {
	if cmd.Bool("verbose") {
		return slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceAction func(ctx context.Context, cmd *cli.Command, svc service.CampaignService) error

// withService opens the store for the duration of one command
func withService(fn serviceAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		settings, err := settingsFrom(cmd)
		if err != nil {
			return err
		}
		logger := loggerFor(cmd)

		catalog, err := reference.NewManager(settings.ReferenceDir, logger)
		if err != nil {
			return err
		}
		store, err := session.Open(settings, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := service.NewCampaignService(store, service.WithMonsters(catalog), service.WithLogger(logger))
		return fn(ctx, cmd, svc)
	}
}

// resultError turns a failed pipeline result into an error carrying its kind
func resultError(res *service.Result) error {
	if res.Success {
		return nil
	}
	if res.Err != nil {
		return res.Err
	}
	return errors.New(res.Error)
}

func showAction(ctx context.Context, cmd *cli.Command, svc service.CampaignService) error {
	c, err := svc.GetCampaign(ctx)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer

	fmt.Fprintf(w, "Settlements: %d\n", len(c.Settlements))
	for _, s := range c.Settlements {
		marker := " "
		if s.ID == c.SelectedSettlementID {
			marker = "*"
		}
		living := 0
		for _, v := range c.Survivors {
			if v.SettlementID == s.ID && !v.Dead {
				living++
			}
		}
		fmt.Fprintf(w, "%s %s  %s  year %d, %d living survivors\n", marker, s.ID, s.Name, s.LanternYear, living)
	}

	for _, h := range c.Hunts {
		if h.Status == engine.StatusActive {
			fmt.Fprintf(w, "Hunt %s: %s level %d, survivors at %d, quarry at %d\n",
				h.ID, h.QuarryName, h.QuarryLevel, h.SurvivorPosition, h.QuarryPosition)
		}
	}
	for _, sd := range c.Showdowns {
		if sd.Status == engine.StatusActive {
			fmt.Fprintf(w, "Showdown %s: %s level %d, round %d, %s turn\n",
				sd.ID, sd.MonsterName, sd.MonsterLevel, sd.Turn.Round, sd.Turn.CurrentTurn)
		}
	}
	if c.SelectedTab != "" {
		fmt.Fprintf(w, "Tab: %s\n", c.SelectedTab)
	}
	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command, svc service.CampaignService) error {
	data, err := svc.Export(ctx)
	if err != nil {
		return err
	}
	if path := cmd.Args().First(); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Fprintf(cmd.Root().Writer, "Exported to %s\n", path)
		return nil
	}
	_, err = cmd.Root().Writer.Write(append(data, '\n'))
	return err
}

func importAction(ctx context.Context, cmd *cli.Command, svc service.CampaignService) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("import needs a backup file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	res := svc.Import(ctx, data)
	if err := resultError(res); err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, res.Message)
	return nil
}

func selectAction(ctx context.Context, cmd *cli.Command, svc service.CampaignService) error {
	var sel service.Selection
	set := func(name string) *string {
		if !cmd.IsSet(name) {
			return nil
		}
		v := cmd.String(name)
		return &v
	}
	sel.SettlementID = set("settlement")
	sel.SurvivorID = set("survivor")
	sel.HuntID = set("hunt")
	sel.ShowdownID = set("showdown")
	sel.Tab = set("tab")
	if sel == (service.Selection{}) {
		return errors.New("select needs at least one of --settlement, --survivor, --hunt, --showdown, --tab")
	}

	res := svc.Select(ctx, sel)
	if err := resultError(res); err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, "Selection updated.")
	return nil
}

// validateAction checks each backup the way import does, without committing
func validateAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errors.New("validate needs at least one backup file")
	}
	w := cmd.Root().Writer

	invalid := 0
	for _, path := range cmd.Args().Slice() {
		if err := validateBackup(path); err != nil {
			invalid++
			kind := engine.KindOf(err)
			if kind == "" {
				kind = "Error"
			}
			fmt.Fprintf(w, "INVALID %s: %s: %v\n", path, kind, err)
			continue
		}
		fmt.Fprintf(w, "VALID   %s\n", path)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d backups are invalid", invalid, cmd.Args().Len())
	}
	return nil
}

func validateBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c, err := service.DecodeCampaign(data)
	if err != nil {
		return err
	}
	return schema.ValidateCampaign(c)
}

func monstersAction(ctx context.Context, cmd *cli.Command) error {
	catalog, err := reference.NewManager(cmd.String("reference-dir"), loggerFor(cmd))
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	for _, m := range catalog.List() {
		levels := make([]string, 0, len(m.Levels))
		for level := engine.MinMonsterLevel; level <= engine.MaxMonsterLevel; level++ {
			if _, ok := m.Levels[level]; ok {
				levels = append(levels, fmt.Sprint(level))
			}
		}
		fmt.Fprintf(w, "%-20s %-8s levels %s\n", m.Name, m.Type, strings.Join(levels, ","))
	}
	return nil
}
