package main

import (
	"fmt"
	"io"
	"strings"

	"routesync/internal/presenter"
)

// terminalView prints notifications and navigation targets as they
// happen. The list itself is printed once loading settles.
type terminalView struct {
	out io.Writer
}

func (v *terminalView) Render(presenter.State) {}

func (v *terminalView) Notify(n presenter.Notification) {
	fmt.Fprintf(v.out, "[%s] %s\n", n.Title, n.Message)
}

func (v *terminalView) Navigate(path string) {
	fmt.Fprintln(v.out, "open", path)
}

func printState(w io.Writer, s presenter.State) {
	switch {
	case s.Status == presenter.StatusFailed && s.CanSignIn:
		fmt.Fprintln(w, s.Message)
		fmt.Fprintln(w, "Set ROUTES_TOKEN or pass --token to sign in.")
	case s.Status == presenter.StatusFailed:
		fmt.Fprintln(w, "Could not load saved routes:", s.Message)
	case s.Empty:
		fmt.Fprintln(w, "No saved routes yet. Create one with `routes save`.")
	default:
		for _, c := range s.Cards {
			printCard(w, c)
		}
	}
}

func printCard(w io.Writer, c presenter.Card) {
	fmt.Fprintf(w, "%s  %s\n", c.ID, c.Title)
	fmt.Fprintf(w, "    %s\n", c.Description)
	fmt.Fprintf(w, "    %s -> %s\n", c.Start, c.Goal)
	var facts []string
	if len(c.Modes) > 0 {
		modes := make([]string, 0, len(c.Modes))
		for _, m := range c.Modes {
			modes = append(modes, string(m))
		}
		facts = append(facts, strings.Join(modes, ", "))
	}
	if c.Time != "" {
		facts = append(facts, c.Time)
	}
	if c.Price != "" {
		facts = append(facts, c.Price)
	}
	facts = append(facts, c.SavedOn)
	fmt.Fprintf(w, "    %s\n", strings.Join(facts, " | "))
}
