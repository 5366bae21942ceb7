// Package bridge exposes the shell's named operations to the GUI layer.
// Every operation takes a JSON argument object and returns a JSON payload;
// lifecycle operations return human-readable message strings rather than
// raising into the UI, which is expected to re-query agent_status for
// ground truth.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/inkforge/inkforge/internal/storage"
	"github.com/inkforge/inkforge/internal/supervisor"
)

// ErrUnknownOperation is returned for operation names with no handler.
var ErrUnknownOperation = errors.New("unknown operation")

// Handler executes one named operation.
type Handler func(args json.RawMessage) (any, error)

// Bridge dispatches named operations against one supervisor and store.
type Bridge struct {
	handlers map[string]Handler
}

// New builds the operation registry.
func New(sup *supervisor.Supervisor, store *storage.Store) *Bridge {
	b := &Bridge{handlers: make(map[string]Handler)}

	b.register("agent_status", func(json.RawMessage) (any, error) {
		return sup.Status(), nil
	})
	b.register("start_agent", func(json.RawMessage) (any, error) {
		return message(sup.Start())
	})
	b.register("stop_agent", func(json.RawMessage) (any, error) {
		return message(sup.Stop())
	})
	b.register("restart_agent", func(json.RawMessage) (any, error) {
		return message(sup.Restart())
	})
	b.register("get_data_dir", func(json.RawMessage) (any, error) {
		return sup.DataDir(), nil
	})
	b.register("list_projects", func(json.RawMessage) (any, error) {
		projects, err := store.ListProjects()
		if err != nil {
			return nil, err
		}
		if projects == nil {
			projects = []storage.Project{}
		}
		return projects, nil
	})
	b.register("create_project", func(args json.RawMessage) (any, error) {
		var req struct {
			Name  string `json:"name"`
			Genre string `json:"genre"`
		}
		if len(args) > 0 {
			if err := json.Unmarshal(args, &req); err != nil {
				return nil, fmt.Errorf("parsing arguments: %w", err)
			}
		}
		return store.CreateProject(req.Name, req.Genre)
	})

	return b
}

func (b *Bridge) register(name string, h Handler) {
	b.handlers[name] = h
}

// Call runs a named operation and returns its JSON-encoded result.
func (b *Bridge) Call(name string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := b.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}

	result, err := h(args)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return data, nil
}

// Operations lists the registered operation names, sorted.
func (b *Bridge) Operations() []string {
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// message adapts the supervisor's (string, error) lifecycle results.
func message(msg string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return msg, nil
}
