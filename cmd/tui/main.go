package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/nomoresql/server/internal/tui"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	app := tui.NewApp(env, os.Getenv("NOMORESQL_API_ENDPOINT"))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running nomoresql: %v\n", err)
		os.Exit(1)
	}
}
