package app

import (
	"context"
	"fmt"
)

// Run loads the configured scripts, binds them into the target's object
// graph and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	target, err := a.target()
	if err != nil {
		return err
	}

	root, err := a.load(ctx, target)
	if err != nil {
		return err
	}
	a.logger.Debug("Scripts loaded.", "root", root.Name(), "children", len(root.Children()))

	value, err := target.Registry.Build(ctx, root, target.Type)
	if err != nil {
		return fmt.Errorf("failed to bind %q: %w", root.Name(), err)
	}
	a.logger.Info("Object graph bound.", "target", target.Name, "type", fmt.Sprintf("%T", value))

	if err := a.report(root, value); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
