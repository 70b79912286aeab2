package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var name string
	var room string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play duels interactively over the game connection",
		Long: `Connect to the server, create or join a room, and play duels.

Commands read from stdin:
  challenge <playerId>          challenge a room member
  accept <playerId>             accept a challenge
  code <playerId> <4 digits>    set your secret code against an opponent
  guess <playerId> <4 digits>   guess the opponent's code
  rematch <playerId>            offer a rematch
  rematch-accept <playerId>     accept a rematch offer
  quit                          abandon your duels (stay in the room)
  exit                          disconnect and leave

Press Ctrl+D or type exit to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(name, room)
		},
	}

	cmd.Flags().StringVar(&name, "name", "player", "Display name")
	cmd.Flags().StringVar(&room, "room", "", "Room code to join (omit to create a new room)")

	return cmd
}

func runPlay(name, room string) error {
	conn, err := client.DialGame()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if room == "" {
		err = conn.WriteJSON(map[string]any{"type": "create_room", "playerName": name})
	} else {
		err = conn.WriteJSON(map[string]any{"type": "join_room", "roomId": room, "playerName": name})
	}
	if err != nil {
		return err
	}

	// Server events print as they arrive; stdin drives outbound messages
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			printEvent(data)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}

		msg, err := parseCommand(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			return err
		}

		select {
		case <-done:
			return nil
		default:
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

// parseCommand turns one stdin line into a protocol message
func parseCommand(line string) (map[string]any, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "challenge", "accept", "rematch", "rematch-accept":
		if len(fields) != 2 {
			return nil, fmt.Errorf("usage: %s <playerId>", fields[0])
		}
		types := map[string]string{
			"challenge":      "challenge_player",
			"accept":         "accept_challenge",
			"rematch":        "request_rematch",
			"rematch-accept": "accept_rematch",
		}
		return map[string]any{"type": types[fields[0]], "opponentId": fields[1]}, nil

	case "code", "guess":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: %s <playerId> <4 digits>", fields[0])
		}
		digits, err := parseDigits(fields[2])
		if err != nil {
			return nil, err
		}
		if fields[0] == "code" {
			return map[string]any{"type": "set_secret_code", "opponentId": fields[1], "code": digits}, nil
		}
		return map[string]any{"type": "submit_guess", "opponentId": fields[1], "guess": digits}, nil

	case "quit":
		return map[string]any{"type": "opponent_quit"}, nil

	default:
		return nil, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseDigits(s string) ([]int, error) {
	if len(s) != 4 {
		return nil, fmt.Errorf("need exactly 4 digits, got %q", s)
	}
	digits := make([]int, 0, 4)
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("need exactly 4 digits, got %q", s)
		}
		digits = append(digits, int(r-'0'))
	}
	return digits, nil
}

// printEvent renders one server message for the terminal
func printEvent(data []byte) {
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		fmt.Printf("<< %s\n", data)
		return
	}

	switch msg["type"] {
	case "room_created":
		fmt.Printf("Room created: %v (you are %v)\n", msg["roomId"], msg["playerId"])
	case "room_joined":
		fmt.Printf("Joined room %v (you are %v)\n", msg["roomId"], msg["playerId"])
		printRoster(msg["players"])
	case "players_updated":
		fmt.Println("Room members changed:")
		printRoster(msg["players"])
	case "challenge_received":
		fmt.Printf("Challenge from %v (%v); accept with: accept %v\n",
			msg["fromPlayerName"], msg["fromPlayerId"], msg["fromPlayerId"])
	case "challenge_accepted":
		fmt.Println("Challenge accepted; set your secret code")
	case "game_started":
		fmt.Printf("Game on. First turn: %v\n", msg["firstPlayerId"])
	case "guess_result":
		fmt.Printf("%v guessed %v: %v matched, %v in position",
			msg["playerId"], formatDigits(msg["guess"]), msg["correctCount"], msg["correctPositionCount"])
		if won, _ := msg["won"].(bool); won {
			fmt.Print("  EXACT MATCH")
		}
		fmt.Printf("  (next turn: %v)\n", msg["nextTurn"])
	case "first_winner_pending":
		fmt.Printf("You matched, but your opponent still gets %v vs %v attempts; hold on\n",
			msg["yourAttempts"], msg["opponentAttempts"])
	case "opponent_won_first":
		fmt.Printf("Opponent matched in %v attempts; you have %v turns left to equalize\n",
			msg["opponentAttempts"], msg["turnsLeft"])
	case "game_result":
		fmt.Printf("Game over: %v", msg["result"])
		if byForfeit, _ := msg["byForfeit"].(bool); byForfeit {
			fmt.Print(" (by forfeit)")
		}
		if secret := formatDigits(msg["opponentSecret"]); secret != "" {
			fmt.Printf("; opponent's code was %s", secret)
		}
		fmt.Println()
	case "rematch_requested":
		fmt.Printf("%v wants a rematch; accept with: rematch-accept %v\n",
			msg["fromPlayerName"], msg["fromPlayerId"])
	case "rematch_accepted":
		fmt.Println("Rematch on; set your secret code")
	case "opponent_quit":
		fmt.Printf("%v quit the game\n", msg["playerName"])
	case "error":
		fmt.Printf("Server rejected request: %v (%v)\n", msg["message"], msg["code"])
	default:
		fmt.Printf("<< %s\n", data)
	}
}

func printRoster(players any) {
	list, ok := players.([]any)
	if !ok {
		return
	}
	for _, p := range list {
		if m, ok := p.(map[string]any); ok {
			fmt.Printf("  - %v (%v)\n", m["name"], m["id"])
		}
	}
}

func formatDigits(v any) string {
	list, ok := v.([]any)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, d := range list {
		if f, ok := d.(float64); ok {
			fmt.Fprintf(&b, "%d", int(f))
		}
	}
	return b.String()
}
