package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmoraisb/maitred"
	"github.com/dmoraisb/maitred/internal/logging"
	"github.com/dmoraisb/maitred/internal/presentation/tui"
	"github.com/dmoraisb/maitred/pkg/adapters/memory"
	"github.com/dmoraisb/maitred/pkg/kb"
	"github.com/dmoraisb/maitred/pkg/recognizer"
	"github.com/dmoraisb/maitred/pkg/speech"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// chatCmd runs an interactive conversation on the terminal.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the reservation bot interactively",
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		locale, _ := cmd.Flags().GetString("locale")

		bot, err := buildLocalBot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing bot: %v\n", err)
			os.Exit(1)
		}

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		if interactive && !plain {
			tui.PrintBanner()
		}

		runner := maitred.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		runner.Locale = locale
		if interactive && !plain {
			runner.Renderer = tui.NewRenderer()
		}

		conversationID := uuid.NewString()
		if err := runner.Run(context.Background(), bot, conversationID); err != nil {
			fmt.Fprintf(os.Stderr, "Error running chat: %v\n", err)
			os.Exit(1)
		}
	},
}

// buildLocalBot wires the offline collaborators: in-memory store,
// pattern recognizer, embedded knowledge base, SSML speech.
func buildLocalBot() (*maitred.Bot, error) {
	answerer, err := kb.NewDefault()
	if err != nil {
		return nil, err
	}

	return maitred.New(memory.NewStore(),
		maitred.WithRecognizer(recognizer.New()),
		maitred.WithKnowledgeBase(answerer),
		maitred.WithSpeech(speech.New()),
		maitred.WithLogger(logging.New(slog.LevelWarn)),
	)
}

func init() {
	chatCmd.Flags().Bool("plain", false, "disable markdown rendering and the banner")
	chatCmd.Flags().String("locale", "", "BCP 47 language tag for speech markup")
	rootCmd.AddCommand(chatCmd)
}
