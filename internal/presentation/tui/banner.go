package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the maitred greeting banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("                  _ _                _ ").Foreground(p.Color("#f59e0b"))
	s2 := termenv.String("  _ __ ___   __ _(_) |_ _ __ ___  __| |").Foreground(p.Color("#f97316"))
	s3 := termenv.String(" | '_ ` _ \\ / _` | | __| '__/ _ \\/ _` |").Foreground(p.Color("#fb7185"))
	s4 := termenv.String(" | | | | | | (_| | | |_| | |  __/ (_| |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" |_| |_| |_|\\__,_|_|\\__|_|  \\___|\\__,_|").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
