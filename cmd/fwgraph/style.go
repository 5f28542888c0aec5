package main

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#FF5F00")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	failure = lipgloss.Color("#FF0000")
	white   = lipgloss.Color("#FFFFFF")
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(failure).Bold(true)
)

func heading(s string) string { return headingStyle.Render("▸ " + s) }

func rule() string { return mutedStyle.Render("  ─────────────────────────────────────") }
