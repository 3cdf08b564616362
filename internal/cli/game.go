package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Single-player game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameSuggestCmd())
	cmd.AddCommand(newGameSolutionCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameColorsCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var slots int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game with a random secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if slots > 0 {
				body["slot_count"] = slots
			}

			var result Game
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&slots, "slots", 0, "Number of secret slots (default 4)")

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show a game's state and guess history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <game-id> <color>...",
		Short: "Submit a guess",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"guess": args[1:]}

			var result Game
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/guesses", args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <game-id>",
		Short: "Ask the solver for a consistent next guess",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Suggestion
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/suggest", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSolutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solution <game-id>",
		Short: "Reveal the secret (spoiler)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Solution
			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/solution", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <game-id>",
		Short: "Restart a game with a fresh random secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/reset", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}

func newGameColorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the guessable colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ColorList
			if err := client.Get("/api/v1/games/colors", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
