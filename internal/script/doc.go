// Package script provides the Lua plumbing shared by the settings system:
// restricted-literal validation of settings scripts, a sandboxed Lua state
// for running the master config script, and Lua-to-Go value conversion.
//
// Settings scripts are not general-purpose programs. A settings file may
// contain only flat top-level assignments of literal values; anything else
// (function calls, control flow, expressions over variables) is rejected
// before any code runs. The master config script is the one place where
// execution happens, and it runs in a state with module loading disabled
// and no base library.
package script
