package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/watchword/watchword/config"
	"github.com/watchword/watchword/database"
	"github.com/watchword/watchword/pkg/keyword"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Width(4).Align(lipgloss.Right)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

var errNoPersist = errors.New("keyword persistence is disabled (db.persist=false)")

var keywordsCmd = &cobra.Command{
	Use:     "keywords",
	Aliases: []string{"kw"},
	Short:   "manage the stored keyword list without logging in",
}

var keywordsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "print the stored keywords",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editKeywords(cmd, nil)
	},
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <words>",
	Short: "add keywords, separated by , ، ; or ؛",
	Args:  cobra.MinimumNArgs(1),
}

var keywordsRemoveCmd = &cobra.Command{
	Use:     "remove <words>",
	Aliases: []string{"rm"},
	Short:   "remove keywords",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		words, err := keyword.Parse(strings.Join(args, ","))
		if err != nil {
			return err
		}
		return editKeywords(cmd, func(s *keyword.Set) (changed, unchanged []string) {
			return s.Remove(words...)
		})
	},
}

func init() {
	// RunE is assigned here rather than in the literal to avoid an
	// initialization cycle through printChange.
	keywordsAddCmd.RunE = func(cmd *cobra.Command, args []string) error {
		words, err := keyword.Parse(strings.Join(args, ","))
		if err != nil {
			return err
		}
		return editKeywords(cmd, func(s *keyword.Set) (changed, unchanged []string) {
			return s.Add(words...)
		})
	}
	keywordsCmd.AddCommand(keywordsListCmd, keywordsAddCmd, keywordsRemoveCmd)
	rootCmd.AddCommand(keywordsCmd)
}

// editKeywords loads the stored list, applies edit when not nil, saves it if
// anything changed and prints the result.
func editKeywords(cmd *cobra.Command, edit func(*keyword.Set) (changed, unchanged []string)) error {
	ctx, cleanup, err := setup(cmd)
	defer cleanup()
	if err != nil {
		return err
	}
	if !config.C().DB.Persist {
		return errNoPersist
	}
	store, err := database.Open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.LoadKeywords(ctx)
	if err != nil {
		return err
	}
	set := keyword.NewSet(stored...)
	out := cmd.OutOrStdout()
	if edit != nil {
		changed, unchanged := edit(set)
		if len(changed) > 0 {
			if err := store.SaveKeywords(ctx, set.List()); err != nil {
				return err
			}
		}
		printChange(out, cmd.Name(), changed, unchanged)
	}
	printKeywords(out, set.List())
	return nil
}

func printChange(w io.Writer, op string, changed, unchanged []string) {
	style := addedStyle
	if op != keywordsAddCmd.Name() {
		style = removedStyle
	}
	for _, word := range changed {
		fmt.Fprintln(w, style.Render(op+" "+word))
	}
	for _, word := range unchanged {
		fmt.Fprintln(w, mutedStyle.Render("skip "+word))
	}
}

func printKeywords(w io.Writer, words []string) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Keywords (%d)", len(words))))
	for i, word := range words {
		fmt.Fprintln(w, indexStyle.Render(fmt.Sprintf("%d.", i+1)), word)
	}
}
