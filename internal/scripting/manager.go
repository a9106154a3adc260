package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns one sandboxed LState per script key (a fighter id) and
// exposes hook dispatch.
//
// Manager is safe for concurrent use; calls are serialized because an
// LState is single-threaded.
type Manager struct {
	mu        sync.Mutex
	states    map[string]*lua.LState
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager whose loads and hook calls are each limited
// to instLimit Lua opcodes (<= 0 uses DefaultInstructionLimit).
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	return &Manager{
		states:    make(map[string]*lua.LState),
		instLimit: instLimit,
		logger:    logger,
	}
}

// Load creates a sandboxed VM for key and executes the script at path in it,
// replacing any VM previously loaded under key.
//
// Precondition: key must be non-empty; path must be a readable Lua file.
// Postcondition: the VM is registered under key, or an error is returned and
// no state changes.
func (m *Manager) Load(key, path string) error {
	if key == "" {
		return fmt.Errorf("scripting: empty script key for %q", path)
	}
	L := NewSandboxedState()
	m.RegisterModules(L, key)

	if err := withBudget(L, m.instLimit, func() error { return L.DoFile(path) }); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		old.Close()
	}
	m.states[key] = L
	m.mu.Unlock()
	return nil
}

// LoadDir loads every *.lua file in dir under the key given by its base name
// without extension, in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the loaded keys, or an error on the first failure.
func (m *Manager) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	keys := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.TrimSuffix(name, ".lua")
		if err := m.Load(key, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Has reports whether a VM is loaded under key.
func (m *Manager) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.states[key]
	return ok
}

// CallHook calls the named Lua global function in key's VM. Returns
// (LNil, nil) if no VM exists or the hook is not defined. Lua runtime errors,
// including an exhausted instruction budget, are logged at Warn level and
// never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(key, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[key]
	if !ok {
		return lua.LNil, nil
	}
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}

	err := withBudget(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", key),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, L := range m.states {
		L.Close()
		delete(m.states, key)
	}
}
