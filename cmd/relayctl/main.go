package main

import (
	"chatrelay/backend/internal/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

const timeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	addr := os.Getenv("RELAY_ADDR")
	if addr == "" {
		addr = "localhost:8080"
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: relayctl <roster|history|send> [args]")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "roster":
		err = printRoster(addr)
	case "history":
		if len(os.Args) != 4 {
			fmt.Println("Usage: relayctl history <identity_a> <identity_b>")
			os.Exit(1)
		}
		err = printHistory(addr, os.Args[2], os.Args[3])
	case "send":
		if len(os.Args) != 5 {
			fmt.Println("Usage: relayctl send <from_identity> <to_identity> <text>")
			os.Exit(1)
		}
		err = sendMessage(addr, os.Args[2], os.Args[3], os.Args[4])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printRoster(addr string) error {
	var users []models.RosterUser
	if err := getJSON("http://"+addr+"/api/roster", &users); err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%-16s %s\n", u.Identity, u.DisplayName)
	}
	fmt.Printf("%d online\n", len(users))
	return nil
}

func printHistory(addr, a, b string) error {
	q := url.Values{"a": {a}, "b": {b}}
	var thread []models.Message
	if err := getJSON("http://"+addr+"/api/history?"+q.Encode(), &thread); err != nil {
		return err
	}
	printThread(thread)
	return nil
}

// sendMessage logs in as from, sends text to to and prints the thread that
// comes back.
func sendMessage(addr, from, to, text string) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}
	defer conn.Close()

	name := "relayctl-" + uuid.NewString()[:8]
	if err := emit(conn, models.EventLogin, models.Login{Identity: from, DisplayName: name}); err != nil {
		return err
	}
	msg := models.ServerMessage{SenderIdentity: from, SenderDisplayName: name, RecipientIdentity: to, Body: text}
	if err := emit(conn, models.EventServerMessage, msg); err != nil {
		return err
	}

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	for {
		var env models.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return fmt.Errorf("waiting for reply: %w", err)
		}
		if env.Event != models.EventClientMessage {
			continue
		}
		var thread []models.Message
		if err := json.Unmarshal(env.Data, &thread); err != nil {
			return err
		}
		printThread(thread)
		return conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

// emit writes one {"event","data"} frame.
func emit(conn *websocket.Conn, event string, data any) error {
	return conn.WriteJSON(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{Event: event, Data: data})
}

func getJSON(target string, dst any) error {
	client := http.Client{Timeout: timeout}
	resp, err := client.Get(target)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s: %s", target, resp.Status, body)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func printThread(thread []models.Message) {
	for _, m := range thread {
		at := time.UnixMilli(m.SentAt).Format(time.DateTime)
		fmt.Printf("[%s] %s -> %s: %s\n", at, m.SenderIdentity, m.RecipientIdentity, m.Body)
	}
}
