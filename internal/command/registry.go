package command

import (
	"fmt"

	"github.com/kass/spatio/internal/resp"
	"github.com/kass/spatio/internal/store"
)

// handlerFunc implements one command. It receives the command's arguments
// (the RESP array elements after the command name).
type handlerFunc func(s *store.Store, a *args) resp.Value

// Registry dispatches a command name to its handler, case-insensitively.
// Unknown commands produce the conventional RESP error frame rather than a
// Go error, mirroring how the wire protocol reports the failure.
type Registry struct {
	store    *store.Store
	commands map[string]handlerFunc
}

// NewRegistry builds a Registry bound to store, with every built-in command
// registered.
func NewRegistry(s *store.Store) *Registry {
	r := &Registry{store: s, commands: make(map[string]handlerFunc)}
	r.register("PING", handlePing)
	r.register("HELLO", handleHello)
	r.register("QUIT", handleQuit)
	r.register("SET", handleSet)
	r.register("GET", handleGet)
	r.register("DELETE", handleDelete)
	r.register("DROP", handleDrop)
	r.register("KEYS", handleKeys)
	r.register("INTERSECTS", handleIntersects)
	r.register("NEARBY", handleNearby)
	r.register("SNAPSHOT", handleSnapshot)
	return r
}

func (r *Registry) register(name string, h handlerFunc) {
	r.commands[upper(name)] = h
}

// HasCommand reports whether name (case-insensitively) is registered.
func (r *Registry) HasCommand(name string) bool {
	_, ok := r.commands[upper(name)]
	return ok
}

// CommandNames returns every registered command name, upper-cased.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Execute dispatches name with cmdArgs (the RESP array elements after the
// command name itself). The second return value is true iff the connection
// should close after the response is written (QUIT).
func (r *Registry) Execute(name string, cmdArgs []resp.Value) (resp.Value, bool) {
	key := upper(name)
	h, ok := r.commands[key]
	if !ok {
		return resp.NewError(fmt.Sprintf("ERR unknown command '%s'", name)), false
	}
	a := newArgs(key, cmdArgs)
	response := h(r.store, a)
	return response, key == "QUIT"
}

// dispatchError converts an argError (or any error) from an argument
// parser into the conventional Error frame.
func dispatchError(err error) resp.Value {
	return resp.NewError("ERR " + err.Error())
}
