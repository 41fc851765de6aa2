package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phanxgames/plexus"
	dark "github.com/thiagokokada/dark-mode-go"
)

// resolveTheme turns the --theme flag into an initial theme. For "auto" it
// also follows the OS appearance, delivering changes on the returned channel
// until stop is called. Detection failures fall back to dark.
func resolveTheme(name string) (plexus.Theme, <-chan plexus.Theme, func(), error) {
	noop := func() {}
	if name != "auto" {
		t, err := plexus.ParseTheme(name)
		return t, nil, noop, err
	}

	initial := plexus.ThemeDark
	darkMode, err := dark.IsDarkMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[plexus] dark mode detection: %v\n", err)
		return initial, nil, noop, nil
	}
	if !darkMode {
		initial = plexus.ThemeLight
	}

	ctx, cancel := context.WithCancel(context.Background())
	events, errs, err := dark.WatchDarkMode(ctx)
	if err != nil {
		cancel()
		return initial, nil, noop, nil
	}
	themes := make(chan plexus.Theme, 1)
	go func() {
		defer close(themes)
		for {
			select {
			case isDark, ok := <-events:
				if !ok {
					return
				}
				select {
				case themes <- themeFor(isDark):
				case <-ctx.Done():
					return
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if err != nil {
					fmt.Fprintf(os.Stderr, "[plexus] dark mode watch: %v\n", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return initial, themes, cancel, nil
}

func themeFor(isDark bool) plexus.Theme {
	if isDark {
		return plexus.ThemeDark
	}
	return plexus.ThemeLight
}
