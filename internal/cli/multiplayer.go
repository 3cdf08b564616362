package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newMultiplayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "multiplayer",
		Aliases: []string{"mp"},
		Short:   "Multiplayer lobby and match commands",
	}

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newPlayersCmd())
	cmd.AddCommand(newCheckNicknameCmd())
	cmd.AddCommand(newInviteCmd())
	cmd.AddCommand(newInvitationsCmd())
	cmd.AddCommand(newAcceptCmd())
	cmd.AddCommand(newDeclineCmd())
	cmd.AddCommand(newCancelInviteCmd())
	cmd.AddCommand(newSetSecretCmd())
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newOpponentGameCmd())
	cmd.AddCommand(newMatchGuessCmd())
	cmd.AddCommand(newCancelMatchCmd())

	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <nickname>",
		Short: "Join the lobby under a nickname",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"nickname": args[0]}

			var result Session
			if err := client.Post("/api/v1/multiplayer/login", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(result.SessionID); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Leave the lobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/multiplayer/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearSession(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List connected players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player
			if err := client.Get("/api/v1/multiplayer/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCheckNicknameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-nickname <nickname>",
		Short: "Check whether a nickname is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result NicknameCheck
			path := "/api/v1/multiplayer/check-nickname?nickname=" + url.QueryEscape(args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite <nickname>",
		Short: "Challenge another player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"to_nickname": args[0]}

			var result Invitation
			if err := client.Post("/api/v1/multiplayer/invite", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newInvitationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invitations",
		Short: "List invitations awaiting your response",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Invitation
			if err := client.Get("/api/v1/multiplayer/invitations", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if len(result) == 0 {
				out.PrintMessage("No pending invitations")
				return nil
			}
			out.Print(result)
			return nil
		},
	}
}

func respondInvitation(invitationID string, accept bool) error {
	body := map[string]any{"invitation_id": invitationID, "accept": accept}

	var result Invitation
	if err := client.Post("/api/v1/multiplayer/invitation/respond", body, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <invitation-id>",
		Short: "Accept an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondInvitation(args[0], true)
		},
	}
}

func newDeclineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decline <invitation-id>",
		Short: "Decline an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondInvitation(args[0], false)
		},
	}
}

func newCancelInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-invite <invitation-id>",
		Short: "Withdraw an invitation you sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"invitation_id": args[0]}

			if err := client.Post("/api/v1/multiplayer/invitation/cancel", body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Invitation cancelled")
			return nil
		},
	}
}

func newSetSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-secret <opponent> <color>...",
		Short: "Set your secret for a match against the opponent",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"opponent": args[0],
				"secret":   args[1:],
			}

			var result Match
			if err := client.Post("/api/v1/multiplayer/game/set-secret", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Show your current match",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match
			if err := client.Get("/api/v1/multiplayer/match", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOpponentGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the game you are guessing against",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get("/api/v1/multiplayer/match/opponent-game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <color>...",
		Short: "Guess your opponent's secret",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"guess": args}

			var result Game
			if err := client.Post("/api/v1/multiplayer/match/guess", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCancelMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-match",
		Short: "Abandon your current match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/multiplayer/match/cancel", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Match cancelled")
			return nil
		},
	}
}
