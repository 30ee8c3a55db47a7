package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// stdLibs are the standard libraries opened in a sandboxed state. The
// package and base libraries must come first for the others to register;
// the dangerous parts of base are stripped afterwards. os and io are
// never opened.
var stdLibs = []struct {
	name string
	fn   lua.LGFunction
}{
	{lua.LoadLibName, lua.OpenPackage},
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals are removed after the libraries are opened. Each of
// these would let a config script execute code it did not ship with, or
// write to the process's output streams.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"print",
}

// NewSandboxedState creates a Lua state restricted to safe operations:
// no module loading, no file access, only the table, string, and math
// libraries beyond the stripped-down base. The caller owns the state and
// must Close it.
func NewSandboxedState() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range stdLibs {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("opening lua library %s: %w", lib.name, err)
		}
	}

	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	// Clear the module search paths so nothing can be resolved from disk
	// even if a loader function survives somewhere.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	return L, nil
}
