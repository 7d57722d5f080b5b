package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-delivery/internal/games/santa"
	"github.com/vovakirdan/santa-delivery/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game variants",
	Long:  `Shows the registered game variants and how each ascends.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No game variants registered.")
		return
	}

	width := len("ID")
	for _, g := range games {
		width = max(width, len(g.ID))
	}

	fmt.Printf("  %-*s  %-9s  %s\n", width, "ID", "Ascend", "Title")
	fmt.Printf("  %-*s  %-9s  %s\n", width, "--", "------", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-9s  %s\n", width, g.ID, santa.AscendForGame(g.ID), g.Title)
	}
	fmt.Println()
	fmt.Println("The classic variant is played with 'santa play --classic'.")
}
