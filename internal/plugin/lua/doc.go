// Package lua runs user rule scripts in a sandboxed Lua state.
//
// A rules script returns a list of tables, one per extra highlighting rule:
//
//	return {
//	  { name = "todo", pattern = [[\bTODO\b]], effect = "bold" },
//	  { name = "warn", pattern = [[^WARN: (.*)$]], group = 1,
//	    effect = "foreground", color = "#EE6677" },
//	  { name = "big", pattern = [[^!.*$]], effect = "scale", scale = 1.3,
//	    requires = { "biggerHeadings" } },
//	}
//
// Patterns use the same dialect as the built-in rules. Only the base,
// table, string and math libraries are available; there is no file,
// process or module access.
package lua
