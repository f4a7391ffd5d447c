package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/dicejourney/internal/codec"
	"github.com/aretw0/dicejourney/pkg/domain"
)

// ExportOptions controls the 'export' command.
type ExportOptions struct {
	Format string
	// Path writes to a file instead of Out. Its extension picks the format when Format is empty.
	Path string
	All  bool
}

// Export writes the current journey (or every journey) as a Config document.
func (a *App) Export(opts ExportOptions) error {
	format := codec.JSON
	switch {
	case opts.Format != "":
		f, err := codec.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		format = f
	case opts.Path != "":
		format = codec.FormatForPath(opts.Path)
	}

	var cfg *domain.Config
	if opts.All {
		cfg = a.Engine.Journeys().ExportAll()
	} else {
		exported, ok := a.Engine.Journeys().Export()
		if !ok {
			return fmt.Errorf("no current journey to export")
		}
		cfg = exported
	}

	data, err := codec.Encode(cfg, format)
	if err != nil {
		return err
	}
	if opts.Path == "" {
		_, err = a.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.Path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.Path, err)
	}
	printSystemMessage(a.Out, "Exported %d journey(s) to %s.", cfg.Len(), opts.Path)
	return nil
}

// Import reads a Config document from path and merges it into the store.
func (a *App) Import(ctx context.Context, path string, x, y float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := codec.Decode(data, codec.FormatForPath(path))
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	if err := a.Engine.Journeys().Import(ctx, cfg, x, y); err != nil {
		return err
	}
	printSystemMessage(a.Out, "Imported %d journey(s) from %s.", cfg.Len(), path)
	return nil
}
