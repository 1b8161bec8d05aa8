package cli

import (
	"fmt"
	"net/http"

	"github.com/keiki-saito/habit100-app/internal/coach"
	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/logger"
	"github.com/keiki-saito/habit100-app/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:":8080"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}

	// Coaching is optional; the chat endpoint reports unavailability when
	// no API key is configured.
	coachClient, err := coach.NewClient()
	if err != nil {
		logger.Warn("Coaching disabled", "reason", err)
		coachClient = nil
	}

	srv := server.New(ctx.Repo, coachClient)

	logger.Info("Starting HTTP server", "addr", addr)
	fmt.Printf("Listening on %s\n", addr)
	return http.ListenAndServe(addr, srv.Router())
}
