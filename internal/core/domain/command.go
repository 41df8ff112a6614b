package domain

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type CommandResponder interface {
	Respond(ctx context.Context, timeout time.Duration, message *Message) error
	GetCommand() string
}

type CommandRegistry struct {
	commands map[string]CommandResponder
}

func (c *CommandRegistry) Register(handler CommandResponder) {
	if c.commands == nil {
		c.commands = make(map[string]CommandResponder)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	c.commands[handler.GetCommand()] = handler
}

func (c *CommandRegistry) Get(command string) (CommandResponder, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if c.commands == nil {
		return nil, errors.New("can't fetch command, registry not initialized")
	}

	handler, ok := c.commands[command]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

// ListCommands returns the registered command names in lexical order.
func (c *CommandRegistry) ListCommands() []string {
	keys := make([]string, 0, len(c.commands))
	for k := range c.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ParseCommandFields splits the arguments following the command on whitespace.
func ParseCommandFields(args string) []string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil
	}

	return fields[1:]
}

// ParseCommand returns the lower-cased command word, stripping a trailing @botname mention.
func ParseCommand(args string) string {
	command := strings.Split(args, " ")
	name, _, _ := strings.Cut(command[0], "@")
	return strings.ToLower(name)
}
