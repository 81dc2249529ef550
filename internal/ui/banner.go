package ui

import "github.com/charmbracelet/lipgloss"

const logo = ` ______ ____  _____   _____ ______
|  ____/ __ \|  __ \ / ____|  ____|
| |__ | |  | | |__) | |  __| |__
|  __|| |  | |  _  /| | |_ |  __|
| |   | |__| | | \ \| |__| | |____
|_|    \____/|_|  \_\\_____|______|`

// Banner renders the forge logo with the version tagline.
func Banner(version string) string {
	art := lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Render(logo)
	tag := MutedStyle.Render("A modern FastAPI project scaffolding tool") +
		" " + ValueStyle.Render("v"+version)
	return art + "\n\n" + tag + "\n"
}
