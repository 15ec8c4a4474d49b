package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"rostermem/internal/catalog"
	"rostermem/internal/engine"
	"rostermem/internal/memproc"
	"rostermem/internal/offsets"
)

// config carries the environment-driven settings. Flags override these.
type config struct {
	OffsetsDir string `env:"ROSTERMEM_OFFSETS_DIR" envDefault:"Offsets"`
	TargetExe  string `env:"ROSTERMEM_TARGET_EXE" envDefault:"NBA2K26.exe"`
	Aliases    string `env:"ROSTERMEM_ALIASES"`
}

// options is the resolved command configuration shared by all subcommands.
type options struct {
	cfg       config
	image     string
	imageBase uint64
	verbose   bool

	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "rostermem",
		Short:         "inspect and edit roster records through an offset schema",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Parse(&opts.cfg); err != nil {
				return fmt.Errorf("failed to parse environment: %w", err)
			}

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}

			opts.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.image, "image", "", "process snapshot image file to operate on")
	pf.Uint64Var(&opts.imageBase, "image-base", 0x140000000, "load address of the snapshot's main module")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newFieldsCmd(opts),
		newDumpCmd(opts),
		newResolveCmd(opts),
		newScanCmd(opts),
		newGetCmd(opts),
		newSetCmd(opts),
	)

	return root
}

// loadDocument locates and normalizes the offset schema per configuration.
func (o *options) loadDocument() (*offsets.Document, error) {
	doc, err := offsets.Load([]string{o.cfg.OffsetsDir}, o.cfg.TargetExe)
	if err != nil {
		return nil, err
	}

	if s := doc.Diags.Summary(); s != "" {
		o.log.Warn("schema normalization produced warnings", "path", doc.Path, "summary", s)
	}

	o.log.Info("schema loaded",
		"path", doc.Path, "version", doc.Version, "fields", len(doc.Fields))

	return doc, nil
}

// loadCatalog builds the organized catalog, honoring an alias override file.
func (o *options) loadCatalog(doc *offsets.Document) (*catalog.Catalog, error) {
	aliases := catalog.DefaultAliases()

	if o.cfg.Aliases != "" {
		var err error

		aliases, err = catalog.LoadAliases(o.cfg.Aliases)
		if err != nil {
			return nil, err
		}
	}

	return catalog.New(doc, aliases, o.log), nil
}

// openProcess loads the snapshot image into an in-memory process.
func (o *options) openProcess() (memproc.Process, error) {
	proc := memproc.NewBufferProcess(o.imageBase)

	if o.image == "" {
		return proc, nil
	}

	data, err := os.ReadFile(o.image)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot image %s: %w", o.image, err)
	}

	if err := proc.WriteBytes(o.imageBase, data); err != nil {
		return nil, err
	}

	o.log.Debug("snapshot image loaded", "path", o.image, "bytes", len(data))

	return proc, nil
}

// newEditor wires the full stack for commands that touch record memory.
func (o *options) newEditor() (*engine.Editor, error) {
	doc, err := o.loadDocument()
	if err != nil {
		return nil, err
	}

	cat, err := o.loadCatalog(doc)
	if err != nil {
		return nil, err
	}

	proc, err := o.openProcess()
	if err != nil {
		return nil, err
	}

	return engine.New(proc, doc, cat, o.log), nil
}

// parseTableArg maps a CLI table label onto a Table.
func parseTableArg(label string) (offsets.Table, error) {
	t, ok := offsets.ParseTable(label)
	if !ok {
		return 0, fmt.Errorf("unknown table %q (one of: player, team, staff, stadium, draft)", label)
	}

	return t, nil
}
