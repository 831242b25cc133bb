package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventoryManagement/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the stock assistant from the terminal",
	Long: `Start an interactive session with the rule-based stock assistant.
Type 'help' for the available commands and 'exit' to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	_, d, products, _, err := openRepos()
	if err != nil {
		return err
	}
	defer d.Close()

	dispatcher := chat.NewDispatcher(products)
	session := &chat.Session{}
	ctx := cmd.Context()

	fmt.Println(chat.Greeting)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}
		fmt.Println(dispatcher.Handle(ctx, session, line))
	}
	return scanner.Err()
}
