// Package main provides a command-line viewer for the match snapshot feed
package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/tower-defense/internal/handlers/feed"
)

var (
	feedAddr string
	timeout  time.Duration
	every    int
	stat     string
)

var rootCmd = &cobra.Command{
	Use:   "tower-client",
	Short: "Watch and steer matches over the snapshot feed",
}

var watchCmd = &cobra.Command{
	Use:   "watch [match_id]",
	Short: "Print a status line for every Nth snapshot until the match ends",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if every < 1 {
			every = 1
		}
		conn, err := dial(args[0])
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Close(); err != nil {
				log.Printf("Failed to close connection: %v", err)
			}
		}()

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		go func() {
			<-interrupt
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
		}()

		for n := 0; ; n++ {
			var msg feed.ServerMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					return nil
				}
				return fmt.Errorf("feed closed: %w", err)
			}

			switch msg.Type {
			case feed.TypeEnded:
				fmt.Println("match ended")
				return nil
			case feed.TypeSnapshot:
				if msg.Snapshot == nil || n%every != 0 {
					continue
				}
				s := msg.Snapshot
				fmt.Printf("t=%7.1fs wave=%3d lives=%2d gold=%5d kills=%5d enemies=%3d speed=%.0fx paused=%v over=%v\n",
					s.Elapsed, s.Wave, s.Lives, s.Gold, s.Kills, len(s.Enemies), s.Speed, msg.Paused, s.GameOver)
			}
		}
	},
}

var sendCmd = &cobra.Command{
	Use:   "send [match_id] [pause|resume|restart|upgrade|speed]",
	Short: "Send one command over the feed and print the reply",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		conn, err := dial(args[0])
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Close(); err != nil {
				log.Printf("Failed to close connection: %v", err)
			}
		}()

		if err := conn.WriteJSON(feed.ClientMessage{Type: args[1], Stat: stat}); err != nil {
			return fmt.Errorf("failed to send command: %w", err)
		}

		_ = conn.SetReadDeadline(time.Now().Add(timeout))
		for {
			var msg feed.ServerMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return fmt.Errorf("no reply: %w", err)
			}
			switch msg.Type {
			case feed.TypeAck:
				fmt.Printf("%s ok\n", msg.Command)
				return nil
			case feed.TypeError:
				return fmt.Errorf("%s rejected: %s (%s)", msg.Command, msg.Message, msg.Code)
			case feed.TypeEnded:
				return fmt.Errorf("match ended")
			}
		}
	},
}

func dial(matchID string) (*websocket.Conn, error) {
	u := url.URL{Scheme: "ws", Host: feedAddr, Path: "/matches/" + url.PathEscape(matchID) + "/feed"}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = timeout

	conn, resp, err := dialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to %s: %s", u.String(), resp.Status)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", u.String(), err)
	}
	return conn, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&feedAddr, "feed", "localhost:8080", "snapshot feed address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "connect and reply timeout")

	watchCmd.Flags().IntVar(&every, "every", 20, "print every Nth snapshot")
	sendCmd.Flags().StringVar(&stat, "stat", "damage", "stat for the upgrade command")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
