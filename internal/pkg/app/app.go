// Package app wires the pieces together: config, logging, the REST
// session, the login flow and the interactive chat loop.
package app

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gotwitcher/internal/app/adapters/chat"
	router "gotwitcher/internal/app/adapters/http"
	"gotwitcher/internal/app/adapters/platform/twitch/api"
	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/pkg/logger"
)

const configPath = "config.json"

func New() error {
	_ = godotenv.Load()

	log := logger.New("")

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("error loading config", err)
	}
	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)

	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: http.DefaultTransport,
	}
	session := api.NewSession(log, cfg, client)

	r, err := router.NewRouter(log, manager, session)
	if err != nil {
		return err
	}
	go func() {
		if err := r.RunOps(); err != nil {
			log.Error("operational endpoints stopped", err)
		}
	}()

	if err := authorize(log, r, session); err != nil {
		return err
	}

	channel := os.Getenv("TWITCH_CHANNEL")
	if channel == "" {
		channel = prompt("Type in the channel to join: ")
	}

	chatLog := logger.NewPrefixedLogger(log, channel)
	chatClient, err := chat.New(chatLog, session, channel, cfg.Chat)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		chatClient.ProcessForever()
		close(done)
	}()

	go printMessages(chatClient)

	user, err := session.CurrentUser()
	if err != nil {
		return err
	}

	fmt.Println("Type your message and hit ENTER to send. An empty line exits.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			break
		}
		if err := chatClient.SendMessage(text); err != nil {
			log.Error("failed to send message", err)
			continue
		}
		fmt.Printf("%s: %s\n", user.Name, text)
	}

	chatClient.Shutdown()
	<-done
	return scanner.Err()
}

// authorize obtains an OAuth token: from the environment when
// provided, otherwise via the implicit grant login flow.
func authorize(log logger.Logger, r *router.Router, session *api.Session) error {
	if token := os.Getenv("TWITCH_TOKEN"); token != "" {
		session.SetToken(token)
		return nil
	}

	go func() {
		if err := r.StartLoginServer(); err != nil {
			log.Error("login server stopped", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = r.ShutdownLoginServer(ctx)
	}()

	fmt.Println("Please authorize the application in your browser:")
	fmt.Println("  " + r.AuthURL())

	select {
	case <-r.TokenReceived():
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("no authorization within 5 minutes")
	}

	if _, err := session.FetchLoginUser(); err != nil {
		return err
	}
	return nil
}

func printMessages(c *chat.Client) {
	for {
		m, err := c.NextMessage(context.Background())
		if err != nil {
			return
		}
		fmt.Printf("%s: %s\n", m.Source.Nickname, m.Text)
	}
}

func prompt(question string) string {
	fmt.Print(question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
