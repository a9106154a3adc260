package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.* Lua table into L for script key.
//
// engine.log(msg) writes msg to the debug log.
// engine.clamp(v, lo, hi) clamps a number into [lo, hi].
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState, key string) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("script log",
			zap.String("script", key),
			zap.String("msg", L.CheckString(1)),
		)
		return 0
	}))
	L.SetField(engine, "clamp", L.NewFunction(func(L *lua.LState) int {
		v, lo, hi := L.CheckNumber(1), L.CheckNumber(2), L.CheckNumber(3)
		switch {
		case v < lo:
			v = lo
		case v > hi:
			v = hi
		}
		L.Push(v)
		return 1
	}))
	L.SetGlobal("engine", engine)
}
